package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWebhookNotifierSendsCode(t *testing.T) {
	var got webhookPayload
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n, err := NewWebhookNotifier(&Config{
		WebhookURL: srv.URL,
		APIKey:     "wh-key",
		From:       "no-reply@gastometro.app",
		Timeout:    2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewWebhookNotifier: %v", err)
	}

	if err := n.SendPasswordResetCode(context.Background(), "ana@x.com", "123456"); err != nil {
		t.Fatalf("SendPasswordResetCode: %v", err)
	}

	if got.To != "ana@x.com" {
		t.Errorf("to = %q", got.To)
	}
	if !strings.Contains(got.Text, "123456") {
		t.Errorf("text does not carry the code: %q", got.Text)
	}
	if auth != "Bearer wh-key" {
		t.Errorf("authorization = %q", auth)
	}
}

func TestWebhookNotifierFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n, err := NewWebhookNotifier(&Config{WebhookURL: srv.URL, From: "no-reply@gastometro.app"})
	if err != nil {
		t.Fatalf("NewWebhookNotifier: %v", err)
	}

	if err := n.SendPasswordResetCode(context.Background(), "ana@x.com", "123456"); err == nil {
		t.Error("expected delivery failure")
	}
}

func TestWebhookNotifierRequiresConfig(t *testing.T) {
	if _, err := NewWebhookNotifier(&Config{}); err != ErrNotConfigured {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
