package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/hash"
)

// ErrInvalidRefreshToken covers every redemption failure: malformed token,
// unknown session, revoked, expired, idle, secret mismatch, lost race. The
// caller always sees the same error even when revocation side effects fire.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// refreshSecretLen is the raw secret size before base64url encoding. 48
// bytes encode to 64 characters, under bcrypt's 72-byte input limit.
const refreshSecretLen = 48

// RefreshSessionService issues and redeems single-use refresh tokens. A
// token is the composite "<sessionId>.<base64url-secret>"; only the bcrypt
// hash of the secret is stored.
type RefreshSessionService struct {
	sessions    repository.RefreshSessionRepository
	bcryptCost  int
	ttl         time.Duration
	idleTimeout time.Duration
}

func NewRefreshSessionService(
	sessions repository.RefreshSessionRepository,
	bcryptCost int,
	ttlDays int,
	idleTimeout time.Duration,
) *RefreshSessionService {
	return &RefreshSessionService{
		sessions:    sessions,
		bcryptCost:  bcryptCost,
		ttl:         time.Duration(ttlDays) * 24 * time.Hour,
		idleTimeout: idleTimeout,
	}
}

// Issue creates a new session for the user and returns the composite token.
// The raw secret is never persisted.
func (s *RefreshSessionService) Issue(ctx context.Context, usuarioID int64) (string, error) {
	raw := make([]byte, refreshSecretLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	digest, err := hash.Hash(secret, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash refresh secret: %w", err)
	}

	now := time.Now()
	session := &domain.RefreshSession{
		UsuarioID:  usuarioID,
		TokenHash:  digest,
		ExpiresAt:  now.Add(s.ttl),
		LastUsedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	return fmt.Sprintf("%d.%s", session.ID, secret), nil
}

// Redeem exchanges a composite token for a fresh one, enforcing single use.
// Expired, idle and mismatched presentations revoke the session before
// failing: an invalid secret for a known session id is treated as a replay
// signal.
func (s *RefreshSessionService) Redeem(ctx context.Context, composite string) (int64, string, error) {
	id, secret, ok := parseComposite(composite)
	if !ok {
		return 0, "", ErrInvalidRefreshToken
	}

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, "", ErrInvalidRefreshToken
		}
		return 0, "", err
	}

	if session.RevokedAt != nil {
		return 0, "", ErrInvalidRefreshToken
	}

	now := time.Now()

	if now.After(session.ExpiresAt) {
		_, _ = s.sessions.RevokeIfActive(ctx, session.ID, now)
		return 0, "", ErrInvalidRefreshToken
	}

	if now.After(session.LastUsedAt.Add(s.idleTimeout)) {
		_, _ = s.sessions.RevokeIfActive(ctx, session.ID, now)
		return 0, "", ErrInvalidRefreshToken
	}

	if !hash.Compare(secret, session.TokenHash) {
		_, _ = s.sessions.RevokeIfActive(ctx, session.ID, now)
		return 0, "", ErrInvalidRefreshToken
	}

	// Single-use rotation: claiming the row decides concurrent redemptions
	// of the same token, at most one caller proceeds past this point.
	claimed, err := s.sessions.RevokeIfActive(ctx, session.ID, now)
	if err != nil {
		return 0, "", err
	}
	if !claimed {
		return 0, "", ErrInvalidRefreshToken
	}

	newComposite, err := s.Issue(ctx, session.UsuarioID)
	if err != nil {
		return 0, "", err
	}

	return session.UsuarioID, newComposite, nil
}

// RevokeAllForUser closes every active session of the user.
func (s *RefreshSessionService) RevokeAllForUser(ctx context.Context, usuarioID int64) error {
	return s.sessions.RevokeAllForUser(ctx, usuarioID, time.Now())
}

// parseComposite splits "<sessionId>.<secret>". The id must be a positive
// integer and the secret non-empty; anything else is rejected before any
// database access.
func parseComposite(composite string) (int64, string, bool) {
	idPart, secret, found := strings.Cut(composite, ".")
	if !found || idPart == "" || secret == "" {
		return 0, "", false
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}

	return id, secret, true
}
