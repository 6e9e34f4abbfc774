package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/email"
	"github.com/ariasbenraq/gastometro-backend/pkg/hash"
)

var (
	ErrInvalidResetCode    = errors.New("invalid or expired reset code")
	ErrNotifierUnavailable = errors.New("notifier unavailable")
)

// PasswordResetService issues short-lived one-time reset codes and rotates
// passwords. Codes are 6-digit, bcrypt-hashed at rest, and at most one is
// outstanding per user.
type PasswordResetService struct {
	users      repository.UsuarioRepository
	tokens     repository.PasswordResetRepository
	refresh    *RefreshSessionService
	notifier   email.Notifier
	bcryptCost int
	codeTTL    time.Duration
}

func NewPasswordResetService(
	users repository.UsuarioRepository,
	tokens repository.PasswordResetRepository,
	refresh *RefreshSessionService,
	notifier email.Notifier,
	bcryptCost int,
	codeTTL time.Duration,
) *PasswordResetService {
	return &PasswordResetService{
		users:      users,
		tokens:     tokens,
		refresh:    refresh,
		notifier:   notifier,
		bcryptCost: bcryptCost,
		codeTTL:    codeTTL,
	}
}

// Request issues a new reset code for the email's owner and delivers it via
// the notifier. An unknown email succeeds silently so callers cannot probe
// which accounts exist; notifier failures are still surfaced.
func (s *PasswordResetService) Request(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	digest, err := hash.Hash(code, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash reset code: %w", err)
	}

	token := &domain.PasswordResetToken{
		UsuarioID: user.ID,
		TokenHash: digest,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}

	if err := s.tokens.InvalidateAndCreate(ctx, token); err != nil {
		return err
	}

	if err := s.notifier.SendPasswordResetCode(ctx, user.Email, code); err != nil {
		log.Printf("[PASSWORD_RESET] failed to deliver code to usuario %d: %v", user.ID, err)
		return ErrNotifierUnavailable
	}

	return nil
}

// Verify checks a code against the newest outstanding token. Read-only: the
// token stays redeemable afterwards.
func (s *PasswordResetService) Verify(ctx context.Context, emailAddr, code string) error {
	_, _, err := s.lookup(ctx, emailAddr, code)
	return err
}

// Confirm re-validates the code, rotates the password, consumes the token
// and revokes every refresh session of the user so all devices must log in
// again.
func (s *PasswordResetService) Confirm(ctx context.Context, emailAddr, code, newPassword string) error {
	user, token, err := s.lookup(ctx, emailAddr, code)
	if err != nil {
		return err
	}

	digest, err := hash.Hash(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, digest); err != nil {
		return err
	}

	now := time.Now()
	if err := s.tokens.MarkUsed(ctx, token.ID, now); err != nil {
		// The password already changed; a consumed-token race here is benign.
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}

	return s.refresh.RevokeAllForUser(ctx, user.ID)
}

// lookup resolves the user and their newest outstanding token, comparing the
// presented code. Every failure collapses into ErrInvalidResetCode.
func (s *PasswordResetService) lookup(ctx context.Context, emailAddr, code string) (*domain.Usuario, *domain.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidResetCode
		}
		return nil, nil, err
	}

	token, err := s.tokens.GetNewestOutstanding(ctx, user.ID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidResetCode
		}
		return nil, nil, err
	}

	if !hash.Compare(code, token.TokenHash) {
		return nil, nil, ErrInvalidResetCode
	}

	return user, token, nil
}

// generateResetCode returns a uniform 6-digit code in [100000, 999999].
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
