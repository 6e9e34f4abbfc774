package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/ariasbenraq/gastometro-backend/pkg/jwt"
)

type authFixture struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	tokens   *jwt.TokenService
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserRepo()
	users.addRole(3, "USER")
	sessions := newFakeSessionRepo()
	refresh := newTestRefreshService(sessions)
	tokens, err := jwt.NewTokenService("test-secret-at-least-32-bytes!!", time.Hour, "gastometro-test")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	svc := NewAuthService(users, refresh, tokens, testBcryptCost, "admin")
	return &authFixture{users: users, sessions: sessions, tokens: tokens, svc: svc}
}

func signUpAna(t *testing.T, f *authFixture) *AuthResponse {
	t.Helper()
	resp, err := f.svc.SignUp(context.Background(), SignUpRequest{
		NombreApellido: "Ana Torres",
		Usuario:        "ana",
		Email:          "ana@x.com",
		Password:       "Str0ng!pw",
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	return resp
}

func TestSignUpIssuesSanitizedPair(t *testing.T) {
	f := newAuthFixture(t)
	resp := signUpAna(t, f)

	if resp.AccessToken == "" {
		t.Error("empty access token")
	}
	claims, err := f.tokens.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued access token does not verify: %v", err)
	}
	if claims.Usuario != "ana" || claims.Rol != "USER" {
		t.Errorf("claims usuario=%q rol=%q, want ana/USER", claims.Usuario, claims.Rol)
	}

	if !regexp.MustCompile(`^\d+\.`).MatchString(resp.RefreshToken) {
		t.Errorf("refresh token %q does not match ^\\d+\\.", resp.RefreshToken)
	}

	if resp.User == nil || resp.User.Usuario == nil || *resp.User.Usuario != "ana" {
		t.Error("response user handle is not ana")
	}
	if resp.User.PasswordHash != nil {
		t.Error("password hash leaked in response")
	}
}

func TestSignUpRejectsReservedHandle(t *testing.T) {
	f := newAuthFixture(t)

	for _, handle := range []string{"admin", "Admin", "ADMIN"} {
		_, err := f.svc.SignUp(context.Background(), SignUpRequest{
			NombreApellido: "X",
			Usuario:        handle,
			Email:          "x@x.com",
			Password:       "Str0ng!pw",
		})
		if !errors.Is(err, ErrReservedHandle) {
			t.Errorf("SignUp(%q) = %v, want ErrReservedHandle", handle, err)
		}
	}
}

func TestSignUpConflicts(t *testing.T) {
	f := newAuthFixture(t)
	signUpAna(t, f)

	cases := []struct {
		name   string
		handle string
		email  string
	}{
		{"duplicate handle", "ana", "other@x.com"},
		{"duplicate email", "otra", "ana@x.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.SignUp(context.Background(), SignUpRequest{
				NombreApellido: "X",
				Usuario:        tc.handle,
				Email:          tc.email,
				Password:       "Str0ng!pw",
			})
			if !errors.Is(err, ErrUserConflict) {
				t.Errorf("SignUp = %v, want ErrUserConflict", err)
			}
		})
	}
}

func TestSignIn(t *testing.T) {
	f := newAuthFixture(t)
	signUpAna(t, f)
	ctx := context.Background()

	resp, err := f.svc.SignIn(ctx, SignInRequest{Usuario: "ana", Password: "Str0ng!pw"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if resp.User.PasswordHash != nil {
		t.Error("password hash leaked in sign-in response")
	}

	if _, err := f.svc.SignIn(ctx, SignInRequest{Usuario: "ana", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := f.svc.SignIn(ctx, SignInRequest{Usuario: "nadie", Password: "Str0ng!pw"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	f := newAuthFixture(t)
	first := signUpAna(t, f)
	ctx := context.Background()

	second, err := f.svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh did not rotate the token")
	}
	if second.User == nil || second.User.ID != first.User.ID {
		t.Error("refresh changed the user")
	}

	if _, err := f.svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("replayed refresh token = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestRefreshMalformedToken(t *testing.T) {
	f := newAuthFixture(t)

	if _, err := f.svc.Refresh(context.Background(), "not-a-composite"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("Refresh malformed = %v, want ErrInvalidRefreshToken", err)
	}
	if f.sessions.count() != 0 {
		t.Errorf("malformed refresh created %d sessions", f.sessions.count())
	}
}
