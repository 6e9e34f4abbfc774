package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/pkg/hash"
)

type resetFixture struct {
	users    *fakeUserRepo
	tokens   *fakeResetRepo
	sessions *fakeSessionRepo
	refresh  *RefreshSessionService
	notifier *fakeNotifier
	svc      *PasswordResetService
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeResetRepo()
	sessions := newFakeSessionRepo()
	refresh := newTestRefreshService(sessions)
	notifier := &fakeNotifier{}
	svc := NewPasswordResetService(users, tokens, refresh, notifier, testBcryptCost, 15*time.Minute)
	return &resetFixture{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		refresh:  refresh,
		notifier: notifier,
		svc:      svc,
	}
}

func (f *resetFixture) addUser(t *testing.T, handle, email, password string) *domain.Usuario {
	t.Helper()
	digest, err := hash.Hash(password, testBcryptCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.Usuario{
		NombreApellido: "Test User",
		Usuario:        &handle,
		Email:          email,
		PasswordHash:   &digest,
		Activo:         true,
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRequestUnknownEmailSucceedsSilently(t *testing.T) {
	f := newResetFixture(t)

	if err := f.svc.Request(context.Background(), "nobody@x.com"); err != nil {
		t.Fatalf("Request for unknown email: %v", err)
	}
	if f.notifier.deliveries() != 0 {
		t.Error("notifier called for a nonexistent account")
	}
}

func TestRequestDeliversSixDigitCode(t *testing.T) {
	f := newResetFixture(t)
	f.addUser(t, "ana", "ana@x.com", "Str0ng!pw")

	if err := f.svc.Request(context.Background(), "ana@x.com"); err != nil {
		t.Fatalf("Request: %v", err)
	}

	code := f.notifier.lastCode()
	if !regexp.MustCompile(`^[1-9]\d{5}$`).MatchString(code) {
		t.Errorf("code %q is not a 6-digit number in [100000,999999]", code)
	}
}

func TestSecondRequestLeavesOneOutstandingToken(t *testing.T) {
	f := newResetFixture(t)
	user := f.addUser(t, "ana", "ana@x.com", "Str0ng!pw")
	ctx := context.Background()

	if err := f.svc.Request(ctx, "ana@x.com"); err != nil {
		t.Fatalf("first Request: %v", err)
	}
	firstCode := f.notifier.lastCode()

	if err := f.svc.Request(ctx, "ana@x.com"); err != nil {
		t.Fatalf("second Request: %v", err)
	}
	secondCode := f.notifier.lastCode()

	if n := f.tokens.outstanding(user.ID); n != 1 {
		t.Fatalf("outstanding tokens = %d, want 1", n)
	}

	if err := f.svc.Verify(ctx, "ana@x.com", firstCode); !errors.Is(err, ErrInvalidResetCode) && firstCode != secondCode {
		t.Errorf("stale code still verifies: %v", err)
	}
	if err := f.svc.Verify(ctx, "ana@x.com", secondCode); err != nil {
		t.Errorf("fresh code rejected: %v", err)
	}
}

func TestVerifyIsReadOnly(t *testing.T) {
	f := newResetFixture(t)
	f.addUser(t, "ana", "ana@x.com", "Str0ng!pw")
	ctx := context.Background()

	if err := f.svc.Request(ctx, "ana@x.com"); err != nil {
		t.Fatalf("Request: %v", err)
	}
	code := f.notifier.lastCode()

	for i := 0; i < 2; i++ {
		if err := f.svc.Verify(ctx, "ana@x.com", code); err != nil {
			t.Fatalf("Verify attempt %d: %v", i+1, err)
		}
	}
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	f := newResetFixture(t)
	f.addUser(t, "ana", "ana@x.com", "Str0ng!pw")
	ctx := context.Background()

	if err := f.svc.Verify(ctx, "ana@x.com", "123456"); !errors.Is(err, ErrInvalidResetCode) {
		t.Errorf("Verify with no outstanding token = %v, want ErrInvalidResetCode", err)
	}

	if err := f.svc.Request(ctx, "ana@x.com"); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if err := f.svc.Verify(ctx, "ana@x.com", "000000"); !errors.Is(err, ErrInvalidResetCode) {
		t.Errorf("Verify with wrong code = %v, want ErrInvalidResetCode", err)
	}
}

func TestConfirmRotatesPasswordAndRevokesSessions(t *testing.T) {
	f := newResetFixture(t)
	user := f.addUser(t, "ana", "ana@x.com", "Str0ng!pw")
	ctx := context.Background()

	refreshToken, err := f.refresh.Issue(ctx, user.ID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := f.svc.Request(ctx, "ana@x.com"); err != nil {
		t.Fatalf("Request: %v", err)
	}
	code := f.notifier.lastCode()

	if err := f.svc.Confirm(ctx, "ana@x.com", code, "N3w!password"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	stored, err := f.users.GetByHandleWithPassword(ctx, "ana")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.PasswordHash == nil || !hash.Compare("N3w!password", *stored.PasswordHash) {
		t.Error("new password does not verify against the stored hash")
	}
	if hash.Compare("Str0ng!pw", *stored.PasswordHash) {
		t.Error("old password still verifies")
	}

	// Every pre-reset session must be dead.
	if _, _, err := f.refresh.Redeem(ctx, refreshToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("pre-reset refresh token still redeems: %v", err)
	}

	// The code is consumed.
	if err := f.svc.Verify(ctx, "ana@x.com", code); !errors.Is(err, ErrInvalidResetCode) {
		t.Errorf("consumed code still verifies: %v", err)
	}
}

func TestRequestNotifierFailure(t *testing.T) {
	f := newResetFixture(t)
	f.addUser(t, "ana", "ana@x.com", "Str0ng!pw")
	f.notifier.fail = true

	err := f.svc.Request(context.Background(), "ana@x.com")
	if !errors.Is(err, ErrNotifierUnavailable) {
		t.Errorf("Request with failing notifier = %v, want ErrNotifierUnavailable", err)
	}
}
