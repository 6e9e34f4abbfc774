package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/pkg/jwt"
)

func newTestApp(t *testing.T) (*fiber.App, *jwt.TokenService) {
	t.Helper()

	tokens, err := jwt.NewTokenService("test-secret-at-least-32-bytes!!", time.Hour, "gastometro-test")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"rol":     c.Locals("rol"),
		})
	})
	app.Get("/admin", AuthMiddleware(tokens), RequireRoles(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, tokens
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	app, tokens := newTestApp(t)

	signed, _, err := tokens.Issue(1, "ana", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, header := range []string{"Basic abc", "Bearer", "Bearer ", signed} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, resp.StatusCode, http.StatusUnauthorized)
		}
	}
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	app, _ := newTestApp(t)

	other, err := jwt.NewTokenService("another-secret-that-is-32-bytes!", time.Hour, "gastometro-test")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	forged, _, err := other.Issue(1, "ana", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	app, tokens := newTestApp(t)

	signed, _, err := tokens.Issue(7, "ana", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestRequireRolesForbidsOtherRoles(t *testing.T) {
	app, tokens := newTestApp(t)

	tests := []struct {
		rol  string
		want int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleUser, http.StatusForbidden},
		{domain.RoleAnalystBalance, http.StatusForbidden},
	}

	for _, tt := range tests {
		signed, _, err := tokens.Issue(1, "ana", tt.rol)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != tt.want {
			t.Errorf("rol %s: status = %d, want %d", tt.rol, resp.StatusCode, tt.want)
		}
	}
}
