package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DiscordWebhook delivers embed payloads to the channel webhook.
type DiscordWebhook struct {
	URL      string
	Username string

	client *http.Client
}

func NewDiscordWebhook(cfg Config) *DiscordWebhook {
	return &DiscordWebhook{
		URL:      cfg.DiscordWebhookURL,
		Username: cfg.BotName,
		client:   externalHTTPClient,
	}
}

func (d *DiscordWebhook) Configured() bool {
	return d.URL != ""
}

// Post sends {embeds, username} to the webhook. Non-2xx responses are
// delivery errors; silent notification loss is worse than a visible failure.
func (d *DiscordWebhook) Post(embeds ...*Embed) error {
	if d.URL == "" {
		return fmt.Errorf("%w: discord_webhook_url", ErrNotConfigured)
	}
	payload := struct {
		Embeds   []*Embed `json:"embeds"`
		Username string   `json:"username"`
	}{Embeds: embeds, Username: d.Username}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}
	resp, err := d.client.Post(d.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrDelivery, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
