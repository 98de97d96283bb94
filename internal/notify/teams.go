package notify

import (
	"encoding/json"
	"fmt"
)

// TeamsFormatter formats messages for Microsoft Teams webhooks.
type TeamsFormatter struct{}

// teamsThemeColor matches the report accent color.
const teamsThemeColor = "3B82F6"

// teamsPayload represents a Teams webhook payload (MessageCard format).
type teamsPayload struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Summary    string         `json:"summary"`
	Sections   []teamsSection `json:"sections,omitempty"`
}

// teamsSection represents a section in a Teams message.
type teamsSection struct {
	ActivityTitle    string `json:"activityTitle,omitempty"`
	ActivitySubtitle string `json:"activitySubtitle,omitempty"`
	ActivityImage    string `json:"activityImage,omitempty"`
	Text             string `json:"text,omitempty"`
	Markdown         bool   `json:"markdown"`
}

// Format converts a message to a Teams MessageCard.
func (f *TeamsFormatter) Format(m *Message) ([]byte, error) {
	summary := m.Title
	if summary == "" {
		summary = "Progress report"
	}

	payload := teamsPayload{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: teamsThemeColor,
		Summary:    summary,
		Sections: []teamsSection{{
			ActivityTitle:    summary,
			ActivitySubtitle: fmt.Sprintf("%s | %s", m.Username, m.Timestamp.Format("Jan 2, 3:04 PM")),
			ActivityImage:    m.AvatarURL,
			Text:             m.Text,
			Markdown:         true,
		}},
	}

	return json.Marshal(payload)
}

// ContentType returns the content type for Teams webhooks.
func (f *TeamsFormatter) ContentType() string {
	return "application/json"
}
