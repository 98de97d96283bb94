package notify

import (
	"encoding/json"
	"strings"

	slackapi "github.com/slack-go/slack"
)

// SlackFormatter formats messages for Slack incoming webhooks.
type SlackFormatter struct{}

// Format builds a Slack webhook message with a header and the report body.
func (f *SlackFormatter) Format(m *Message) ([]byte, error) {
	body := slackEscape(m.Text)
	msg := slackapi.WebhookMessage{
		Username: m.Username,
		IconURL:  m.AvatarURL,
		Text:     body, // Fallback text
	}

	var blocks []slackapi.Block
	if m.Title != "" {
		blocks = append(blocks, slackapi.NewHeaderBlock(
			slackapi.NewTextBlockObject(slackapi.PlainTextType, Truncate(m.Title, 150), false, false),
		))
	}
	blocks = append(blocks, slackapi.NewSectionBlock(
		slackapi.NewTextBlockObject(slackapi.MarkdownType, Truncate(body, 3000), false, false),
		nil, nil,
	))
	msg.Blocks = &slackapi.Blocks{BlockSet: blocks}

	return json.Marshal(msg)
}

// ContentType returns the content type for Slack webhooks.
func (f *SlackFormatter) ContentType() string {
	return "application/json"
}

// slackEscape escapes special characters for Slack mrkdwn.
func slackEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
