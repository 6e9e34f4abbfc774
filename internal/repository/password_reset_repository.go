package repository

import (
	"context"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
)

type PasswordResetRepository interface {
	// InvalidateAndCreate marks every outstanding token of the user as used
	// and inserts the new one in a single transaction, so concurrent reset
	// requests cannot leave two outstanding codes.
	InvalidateAndCreate(ctx context.Context, token *domain.PasswordResetToken) error
	// GetNewestOutstanding returns the most recent unused, unexpired token
	// for the user, or ErrNotFound.
	GetNewestOutstanding(ctx context.Context, usuarioID int64, now time.Time) (*domain.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64, at time.Time) error
}
