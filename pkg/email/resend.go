package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier implements Notifier using Resend.
type ResendNotifier struct {
	client *resend.Client
	config *Config
}

// NewResendNotifier creates a Resend-backed notifier.
func NewResendNotifier(config *Config) (*ResendNotifier, error) {
	if config.APIKey == "" || config.From == "" {
		return nil, ErrNotConfigured
	}

	return &ResendNotifier{
		client: resend.NewClient(config.APIKey),
		config: config,
	}, nil
}

// SendPasswordResetCode delivers the one-time code to the user's email.
func (n *ResendNotifier) SendPasswordResetCode(ctx context.Context, to, code string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.config.FromName, n.config.From),
		To:      []string{to},
		Subject: "Código de recuperación de contraseña",
		Text:    fmt.Sprintf("Tu código de verificación es: %s. Este código vence en pocos minutos.", code),
		Html:    fmt.Sprintf("<p>Tu código de verificación es: <strong>%s</strong>.</p><p>Este código vence en pocos minutos.</p>", code),
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send reset code to %s: %v", to, err)
		return fmt.Errorf("failed to send reset code: %w", err)
	}

	log.Printf("Reset code sent to %s (ID: %s)", to, sent.Id)
	return nil
}
