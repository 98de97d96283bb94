package notify

import (
	"encoding/json"

	"github.com/bwmarrin/discordgo"
)

// DiscordFormatter formats messages for Discord webhooks.
type DiscordFormatter struct{}

// Format builds a Discord execute-webhook body. Mentions in the report
// text never ping anyone.
func (f *DiscordFormatter) Format(m *Message) ([]byte, error) {
	params := discordgo.WebhookParams{
		Content:   m.Text,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}
	return json.Marshal(params)
}

// ContentType returns the content type for Discord webhooks.
func (f *DiscordFormatter) ContentType() string {
	return "application/json"
}
