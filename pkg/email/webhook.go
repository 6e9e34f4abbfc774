package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// WebhookNotifier posts reset codes to an external email webhook as JSON.
type WebhookNotifier struct {
	client *http.Client
	config *Config
}

type webhookPayload struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// NewWebhookNotifier creates a webhook-backed notifier.
func NewWebhookNotifier(config *Config) (*WebhookNotifier, error) {
	if config.WebhookURL == "" || config.From == "" {
		return nil, ErrNotConfigured
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebhookNotifier{
		client: &http.Client{Timeout: timeout},
		config: config,
	}, nil
}

// SendPasswordResetCode delivers the one-time code to the user's email.
func (n *WebhookNotifier) SendPasswordResetCode(ctx context.Context, to, code string) error {
	payload := webhookPayload{
		To:      to,
		From:    n.config.From,
		Subject: "Código de recuperación de contraseña",
		Text:    fmt.Sprintf("Tu código de verificación es: %s. Este código vence en pocos minutos.", code),
		HTML:    fmt.Sprintf("<p>Tu código de verificación es: <strong>%s</strong>.</p><p>Este código vence en pocos minutos.</p>", code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.config.APIKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Email webhook rejected reset code for %s: %s", to, resp.Status)
		return fmt.Errorf("email webhook returned %s", resp.Status)
	}

	return nil
}
