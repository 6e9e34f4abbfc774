package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

type refreshSessionRepository struct {
	db *sqlx.DB
}

// NewRefreshSessionRepository creates a new PostgreSQL refresh-session repository
func NewRefreshSessionRepository(db *sqlx.DB) repository.RefreshSessionRepository {
	return &refreshSessionRepository{db: db}
}

// Create inserts a new session row and fills in the generated id, which
// doubles as the public token identifier.
func (r *refreshSessionRepository) Create(ctx context.Context, session *domain.RefreshSession) error {
	query := `
		INSERT INTO refresh_tokens (usuario_id, token_hash, expires_at, last_used_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		session.UsuarioID, session.TokenHash, session.ExpiresAt, session.LastUsedAt,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create refresh session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by id regardless of its state.
func (r *refreshSessionRepository) GetByID(ctx context.Context, id int64) (*domain.RefreshSession, error) {
	query := `
		SELECT id, usuario_id, token_hash, expires_at, last_used_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE id = $1`

	var session domain.RefreshSession
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get refresh session by id: %w", err)
	}

	return &session, nil
}

// RevokeIfActive claims the session via a conditional update. Under
// concurrent redemption of the same token at most one caller sees true; the
// loser observes the already-revoked row. Rows are never deleted so revoked
// sessions remain as an audit trail.
func (r *refreshSessionRepository) RevokeIfActive(ctx context.Context, id int64, at time.Time) (bool, error) {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE id = $2 AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return false, fmt.Errorf("failed to revoke refresh session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows == 1, nil
}

// RevokeAllForUser revokes every active session of the user, forcing
// re-login everywhere.
func (r *refreshSessionRepository) RevokeAllForUser(ctx context.Context, usuarioID int64, at time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = $1
		WHERE usuario_id = $2 AND revoked_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, at, usuarioID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions for usuario: %w", err)
	}

	return nil
}
