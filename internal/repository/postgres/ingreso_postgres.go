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

type ingresoRepository struct {
	db *sqlx.DB
}

// NewIngresoRepository creates a new PostgreSQL ingreso repository
func NewIngresoRepository(db *sqlx.DB) repository.IngresoRepository {
	return &ingresoRepository{db: db}
}

const ingresoColumns = `
	i.id, i.fecha::text AS fecha, i.monto, i.usuario_id,
	i.depositado_por, p.nombre AS depositado_por_nombre, i.created_at`

// Create inserts a new income deposit.
func (r *ingresoRepository) Create(ctx context.Context, ingreso *domain.Ingreso) error {
	query := `
		INSERT INTO ingresos (fecha, monto, usuario_id, depositado_por)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		ingreso.Fecha, ingreso.Monto, ingreso.UsuarioID, ingreso.DepositadoPorID,
	).Scan(&ingreso.ID, &ingreso.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ingreso: %w", err)
	}

	return nil
}

// GetByID retrieves a deposit; when scopeUserID is set the row must belong to
// that user.
func (r *ingresoRepository) GetByID(ctx context.Context, id int64, scopeUserID *int64) (*domain.Ingreso, error) {
	query := `
		SELECT ` + ingresoColumns + `
		FROM ingresos i
		LEFT JOIN personal_administrativo p ON p.id = i.depositado_por
		WHERE i.id = $1`
	args := []interface{}{id}

	if scopeUserID != nil {
		query += ` AND i.usuario_id = $2`
		args = append(args, *scopeUserID)
	}

	var ingreso domain.Ingreso
	err := r.db.GetContext(ctx, &ingreso, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ingreso by id: %w", err)
	}

	return &ingreso, nil
}

// List retrieves deposits matching the filter plus the unpaginated total.
// The only free-text column is the depositor name from the join.
func (r *ingresoRepository) List(ctx context.Context, filter repository.LedgerFilter) ([]*domain.Ingreso, int, error) {
	var conditions []string
	var args []interface{}

	if filter.UsuarioID != nil {
		args = append(args, *filter.UsuarioID)
		conditions = append(conditions, fmt.Sprintf("i.usuario_id = $%d", len(args)))
	}
	if filter.StartDate != "" && filter.EndDate != "" {
		args = append(args, filter.StartDate, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("i.fecha BETWEEN $%d AND $%d", len(args)-1, len(args)))
	} else if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("i.fecha >= $%d", len(args)))
	} else if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("i.fecha <= $%d", len(args)))
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, "%"+keyword+"%")
		conditions = append(conditions, fmt.Sprintf("p.nombre ILIKE $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	from := `
		FROM ingresos i
		LEFT JOIN personal_administrativo p ON p.id = i.depositado_por`

	var total int
	countQuery := `SELECT COUNT(*)` + from + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count ingresos: %w", err)
	}

	listQuery := `SELECT ` + ingresoColumns + from + where + ` ORDER BY i.fecha DESC, i.id DESC`
	if filter.Paginated {
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
		listQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	var ingresos []*domain.Ingreso
	if err := r.db.SelectContext(ctx, &ingresos, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list ingresos: %w", err)
	}

	return ingresos, total, nil
}

// Update writes the mutable fields, including the optional depositor
// reference.
func (r *ingresoRepository) Update(ctx context.Context, ingreso *domain.Ingreso) error {
	query := `
		UPDATE ingresos
		SET fecha = :fecha,
			monto = :monto,
			depositado_por = :depositado_por
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, ingreso)
	if err != nil {
		return fmt.Errorf("failed to update ingreso: %w", err)
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

// Delete removes the deposit entry.
func (r *ingresoRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ingresos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingreso: %w", err)
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
