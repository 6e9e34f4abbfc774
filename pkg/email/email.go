package email

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned when the notifier has no delivery backend.
var ErrNotConfigured = errors.New("email service is not configured")

// Notifier delivers one-time password-reset codes to users. The auth core
// treats delivery as a black box; any failure here surfaces to the caller as
// service-unavailable.
type Notifier interface {
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

// DisabledNotifier stands in when delivery is turned off; every send fails
// with ErrNotConfigured so reset requests surface as service-unavailable.
type DisabledNotifier struct{}

func (DisabledNotifier) SendPasswordResetCode(ctx context.Context, to, code string) error {
	return ErrNotConfigured
}

// Config holds notifier configuration shared by the implementations.
type Config struct {
	WebhookURL string        // URL of the email webhook endpoint
	APIKey     string        // bearer key for the webhook, or Resend API key
	From       string        // sender address
	FromName   string        // display name for the sender
	Timeout    time.Duration // HTTP request timeout
}
