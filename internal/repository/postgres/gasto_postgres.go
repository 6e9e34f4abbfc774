package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

type gastoRepository struct {
	db *sqlx.DB
}

// NewGastoRepository creates a new PostgreSQL gasto repository
func NewGastoRepository(db *sqlx.DB) repository.GastoRepository {
	return &gastoRepository{db: db}
}

const gastoColumns = `
	g.id, g.fecha::text AS fecha, g.item, g.motivo, g.monto, g.usuario_id,
	g.aprobado_por, p.nombre AS aprobado_por_nombre, g.created_at`

// Create inserts a new expense entry.
func (r *gastoRepository) Create(ctx context.Context, gasto *domain.Gasto) error {
	query := `
		INSERT INTO gastos (fecha, item, motivo, monto, usuario_id, aprobado_por)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		gasto.Fecha, gasto.Item, gasto.Motivo, gasto.Monto, gasto.UsuarioID, gasto.AprobadoPorID,
	).Scan(&gasto.ID, &gasto.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gasto: %w", err)
	}

	return nil
}

// GetByID retrieves an expense; when scopeUserID is set the row must belong
// to that user.
func (r *gastoRepository) GetByID(ctx context.Context, id int64, scopeUserID *int64) (*domain.Gasto, error) {
	query := `
		SELECT ` + gastoColumns + `
		FROM gastos g
		LEFT JOIN personal_administrativo p ON p.id = g.aprobado_por
		WHERE g.id = $1`
	args := []interface{}{id}

	if scopeUserID != nil {
		query += ` AND g.usuario_id = $2`
		args = append(args, *scopeUserID)
	}

	var gasto domain.Gasto
	err := r.db.GetContext(ctx, &gasto, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gasto by id: %w", err)
	}

	return &gasto, nil
}

// List retrieves expenses matching the filter, newest ledger date first,
// together with the unpaginated total.
func (r *gastoRepository) List(ctx context.Context, filter repository.LedgerFilter) ([]*domain.Gasto, int, error) {
	var conditions []string
	var args []interface{}

	if filter.UsuarioID != nil {
		args = append(args, *filter.UsuarioID)
		conditions = append(conditions, fmt.Sprintf("g.usuario_id = $%d", len(args)))
	}
	if filter.StartDate != "" && filter.EndDate != "" {
		args = append(args, filter.StartDate, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("g.fecha BETWEEN $%d AND $%d", len(args)-1, len(args)))
	} else if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("g.fecha >= $%d", len(args)))
	} else if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("g.fecha <= $%d", len(args)))
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, "%"+keyword+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(g.item ILIKE $%d OR g.motivo ILIKE $%d OR p.nombre ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	from := `
		FROM gastos g
		LEFT JOIN personal_administrativo p ON p.id = g.aprobado_por`

	var total int
	countQuery := `SELECT COUNT(*)` + from + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count gastos: %w", err)
	}

	listQuery := `SELECT ` + gastoColumns + from + where + ` ORDER BY g.fecha DESC, g.id DESC`
	if filter.Paginated {
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
		listQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	var gastos []*domain.Gasto
	if err := r.db.SelectContext(ctx, &gastos, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list gastos: %w", err)
	}

	return gastos, total, nil
}

// Update writes the mutable fields, including the optional approver
// reference.
func (r *gastoRepository) Update(ctx context.Context, gasto *domain.Gasto) error {
	query := `
		UPDATE gastos
		SET fecha = :fecha,
			item = :item,
			motivo = :motivo,
			monto = :monto,
			aprobado_por = :aprobado_por
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, gasto)
	if err != nil {
		return fmt.Errorf("failed to update gasto: %w", err)
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

// Delete removes the expense entry.
func (r *gastoRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM gastos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete gasto: %w", err)
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
