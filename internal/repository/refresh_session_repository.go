package repository

import (
	"context"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
)

type RefreshSessionRepository interface {
	// Create persists a new session and fills in its generated id.
	Create(ctx context.Context, session *domain.RefreshSession) error
	GetByID(ctx context.Context, id int64) (*domain.RefreshSession, error)
	// RevokeIfActive sets revoked_at on the session only if it is not
	// already revoked, and reports whether this call claimed it. Concurrent
	// redemptions of the same session race on this conditional update; at
	// most one wins.
	RevokeIfActive(ctx context.Context, id int64, at time.Time) (bool, error)
	RevokeAllForUser(ctx context.Context, usuarioID int64, at time.Time) error
}
