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

type passwordResetRepository struct {
	db *sqlx.DB
}

// NewPasswordResetRepository creates a new PostgreSQL password-reset repository
func NewPasswordResetRepository(db *sqlx.DB) repository.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// InvalidateAndCreate marks every outstanding token of the user as used and
// inserts the new one inside a single transaction, keeping the at-most-one
// outstanding-token invariant under concurrent requests.
func (r *passwordResetRepository) InvalidateAndCreate(ctx context.Context, token *domain.PasswordResetToken) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	invalidate := `
		UPDATE password_reset_tokens
		SET used_at = $1
		WHERE usuario_id = $2 AND used_at IS NULL AND expires_at > $1`

	if _, err := tx.ExecContext(ctx, invalidate, now, token.UsuarioID); err != nil {
		return fmt.Errorf("failed to invalidate outstanding reset tokens: %w", err)
	}

	insert := `
		INSERT INTO password_reset_tokens (usuario_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = tx.QueryRowxContext(ctx, insert,
		token.UsuarioID, token.TokenHash, token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset token transaction: %w", err)
	}

	return nil
}

// GetNewestOutstanding returns the most recent unused, unexpired token for
// the user. Only one should exist, but ordering by creation time tolerates
// races by picking the newest.
func (r *passwordResetRepository) GetNewestOutstanding(ctx context.Context, usuarioID int64, now time.Time) (*domain.PasswordResetToken, error) {
	query := `
		SELECT id, usuario_id, token_hash, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE usuario_id = $1 AND used_at IS NULL AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`

	var token domain.PasswordResetToken
	err := r.db.GetContext(ctx, &token, query, usuarioID, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get outstanding reset token: %w", err)
	}

	return &token, nil
}

// MarkUsed consumes the token.
func (r *passwordResetRepository) MarkUsed(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE password_reset_tokens SET used_at = $1 WHERE id = $2 AND used_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
