package main

import (
	"fmt"

	"github.com/slack-go/slack"
)

// SlackMirror optionally copies every posted embed to a Slack incoming
// webhook as an attachment. It is a best-effort secondary sink: failures are
// reported to the caller for logging but must never fail the primary send.
type SlackMirror struct {
	URL      string
	Username string
}

func NewSlackMirror(cfg Config) *SlackMirror {
	return &SlackMirror{URL: cfg.SlackWebhookURL, Username: cfg.BotName}
}

func (m *SlackMirror) Enabled() bool {
	return m != nil && m.URL != ""
}

func (m *SlackMirror) Mirror(embeds ...*Embed) error {
	if !m.Enabled() {
		return nil
	}
	attachments := make([]slack.Attachment, 0, len(embeds))
	for _, e := range embeds {
		attachments = append(attachments, toAttachment(e))
	}
	msg := &slack.WebhookMessage{
		Username:    m.Username,
		Attachments: attachments,
	}
	if err := slack.PostWebhook(m.URL, msg); err != nil {
		return fmt.Errorf("slack mirror: %w", err)
	}
	return nil
}

func toAttachment(e *Embed) slack.Attachment {
	fields := make([]slack.AttachmentField, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, slack.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: f.Inline,
		})
	}
	return slack.Attachment{
		Color:  fmt.Sprintf("#%06x", e.Color),
		Title:  e.Title,
		Text:   e.Description,
		Fields: fields,
		Footer: e.Footer.Text,
	}
}
