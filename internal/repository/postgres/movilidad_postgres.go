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

type movilidadRepository struct {
	db *sqlx.DB
}

// NewMovilidadRepository creates a new PostgreSQL registro-movilidad repository
func NewMovilidadRepository(db *sqlx.DB) repository.MovilidadRepository {
	return &movilidadRepository{db: db}
}

const movilidadColumns = `
	m.id, m.fecha::text AS fecha, m.inicio, m.fin, m.motivo, m.detalle,
	m.monto, m.usuario_id, m.tienda_id, t.nombre_tienda AS tienda_nombre,
	m.ticket, m.created_at`

// Create inserts a new trip claim.
func (r *movilidadRepository) Create(ctx context.Context, registro *domain.RegistroMovilidad) error {
	query := `
		INSERT INTO registro_movilidades (fecha, inicio, fin, motivo, detalle, monto, usuario_id, tienda_id, ticket)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		registro.Fecha, registro.Inicio, registro.Fin, registro.Motivo, registro.Detalle,
		registro.Monto, registro.UsuarioID, registro.TiendaID, registro.Ticket,
	).Scan(&registro.ID, &registro.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create registro movilidad: %w", err)
	}

	return nil
}

// GetByID retrieves a trip claim; when scopeUserID is set the row must belong
// to that user.
func (r *movilidadRepository) GetByID(ctx context.Context, id int64, scopeUserID *int64) (*domain.RegistroMovilidad, error) {
	query := `
		SELECT ` + movilidadColumns + `
		FROM registro_movilidades m
		LEFT JOIN tiendas_ibk t ON t.id = m.tienda_id
		WHERE m.id = $1`
	args := []interface{}{id}

	if scopeUserID != nil {
		query += ` AND m.usuario_id = $2`
		args = append(args, *scopeUserID)
	}

	var registro domain.RegistroMovilidad
	err := r.db.GetContext(ctx, &registro, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registro movilidad by id: %w", err)
	}

	return &registro, nil
}

// List retrieves trip claims matching the filter plus the unpaginated total.
func (r *movilidadRepository) List(ctx context.Context, filter repository.LedgerFilter) ([]*domain.RegistroMovilidad, int, error) {
	var conditions []string
	var args []interface{}

	if filter.UsuarioID != nil {
		args = append(args, *filter.UsuarioID)
		conditions = append(conditions, fmt.Sprintf("m.usuario_id = $%d", len(args)))
	}
	if filter.StartDate != "" && filter.EndDate != "" {
		args = append(args, filter.StartDate, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("m.fecha BETWEEN $%d AND $%d", len(args)-1, len(args)))
	} else if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("m.fecha >= $%d", len(args)))
	} else if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("m.fecha <= $%d", len(args)))
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		args = append(args, "%"+keyword+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(m.inicio ILIKE $%d OR m.fin ILIKE $%d OR m.motivo ILIKE $%d OR m.detalle ILIKE $%d OR t.nombre_tienda ILIKE $%d)",
			len(args), len(args), len(args), len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	from := `
		FROM registro_movilidades m
		LEFT JOIN tiendas_ibk t ON t.id = m.tienda_id`

	var total int
	countQuery := `SELECT COUNT(*)` + from + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count registros movilidad: %w", err)
	}

	listQuery := `SELECT ` + movilidadColumns + from + where + ` ORDER BY m.fecha DESC, m.id DESC`
	if filter.Paginated {
		args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
		listQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	var registros []*domain.RegistroMovilidad
	if err := r.db.SelectContext(ctx, &registros, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list registros movilidad: %w", err)
	}

	return registros, total, nil
}

// Update writes the mutable fields, including the optional store reference.
func (r *movilidadRepository) Update(ctx context.Context, registro *domain.RegistroMovilidad) error {
	query := `
		UPDATE registro_movilidades
		SET fecha = :fecha,
			inicio = :inicio,
			fin = :fin,
			motivo = :motivo,
			detalle = :detalle,
			monto = :monto,
			tienda_id = :tienda_id,
			ticket = :ticket
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, registro)
	if err != nil {
		return fmt.Errorf("failed to update registro movilidad: %w", err)
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

// Delete removes the trip claim.
func (r *movilidadRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM registro_movilidades WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete registro movilidad: %w", err)
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
