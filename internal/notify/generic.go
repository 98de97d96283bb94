package notify

import (
	"bytes"
	"encoding/json"
	"text/template"
)

// GenericFormatter formats messages for generic JSON webhooks.
type GenericFormatter struct {
	// Template is an optional custom template for the payload.
	Template string
}

// genericPayload is the default payload for generic webhooks.
type genericPayload struct {
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NewGenericFormatter creates a new generic formatter with an optional template.
func NewGenericFormatter(template string) *GenericFormatter {
	return &GenericFormatter{Template: template}
}

// Format converts a message to a generic webhook body.
func (f *GenericFormatter) Format(m *Message) ([]byte, error) {
	if f.Template != "" {
		return f.formatWithTemplate(m)
	}

	return json.Marshal(genericPayload{
		Text:      m.Text,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
	})
}

// formatWithTemplate renders the custom template. The json function quotes
// a value so templates can build valid JSON around free text.
func (f *GenericFormatter) formatWithTemplate(m *Message) ([]byte, error) {
	tmpl, err := template.New("webhook").Funcs(template.FuncMap{
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}).Parse(f.Template)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the content type for generic webhooks.
func (f *GenericFormatter) ContentType() string {
	return "application/json"
}
