// Package notify posts rendered reports to webhook endpoints.
package notify

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav03panchal/crewboard/internal/config"
	"github.com/manav03panchal/crewboard/internal/model"
)

// Message is the report as it goes out over a webhook.
type Message struct {
	Title     string
	Text      string
	Username  string
	AvatarURL string
	Timestamp time.Time
}

// NewMessage builds a message from report text. The text is cut to the
// configured content limit and the first line becomes the title.
func NewMessage(text string, cfg config.WebhookConfig, now time.Time) *Message {
	limit := cfg.ContentLimit
	if limit <= 0 {
		limit = config.DefaultContentLimit
	}
	return &Message{
		Title:     title(text),
		Text:      Truncate(text, limit),
		Username:  cfg.Username,
		AvatarURL: cfg.AvatarURL,
		Timestamp: now,
	}
}

// Truncate returns the first limit characters of s. It never splits a
// multi-byte character.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

func title(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(strings.TrimLeft(line, "# "))
}

// Formatter formats a message for a specific webhook type.
type Formatter interface {
	// Format converts a message into the webhook-specific payload.
	Format(m *Message) ([]byte, error)

	// ContentType returns the HTTP Content-Type for the payload.
	ContentType() string
}

// GetFormatter returns the appropriate formatter for a webhook.
func GetFormatter(wh *model.Webhook) Formatter {
	switch wh.Type {
	case model.WebhookTypeDiscord:
		return &DiscordFormatter{}
	case model.WebhookTypeSlack:
		return &SlackFormatter{}
	case model.WebhookTypeTeams:
		return &TeamsFormatter{}
	default:
		return NewGenericFormatter(wh.Template)
	}
}
