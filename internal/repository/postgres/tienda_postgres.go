package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

type tiendaRepository struct {
	db *sqlx.DB
}

// NewTiendaRepository creates a new PostgreSQL tiendas-ibk repository
func NewTiendaRepository(db *sqlx.DB) repository.TiendaRepository {
	return &tiendaRepository{db: db}
}

const tiendaColumns = `
	t.id, t.codigo_tienda, t.nombre_tienda, t.distrito, t.provincia,
	t.departamento, t.direccion, t.estado_servicio_id, e.estado AS estado_servicio`

// Create inserts a new store.
func (r *tiendaRepository) Create(ctx context.Context, tienda *domain.TiendaIbk) error {
	query := `
		INSERT INTO tiendas_ibk (codigo_tienda, nombre_tienda, distrito, provincia, departamento, direccion, estado_servicio_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		tienda.CodigoTienda, tienda.NombreTienda, tienda.Distrito, tienda.Provincia,
		tienda.Departamento, tienda.Direccion, tienda.EstadoServicioID,
	).Scan(&tienda.ID)
	if err != nil {
		return fmt.Errorf("failed to create tienda: %w", err)
	}

	return nil
}

// GetByID retrieves a store with its service-state label.
func (r *tiendaRepository) GetByID(ctx context.Context, id int64) (*domain.TiendaIbk, error) {
	query := `
		SELECT ` + tiendaColumns + `
		FROM tiendas_ibk t
		LEFT JOIN estado_servicio e ON e.id = t.estado_servicio_id
		WHERE t.id = $1`

	var tienda domain.TiendaIbk
	err := r.db.GetContext(ctx, &tienda, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tienda by id: %w", err)
	}

	return &tienda, nil
}

// List retrieves all stores ordered by code.
func (r *tiendaRepository) List(ctx context.Context) ([]*domain.TiendaIbk, error) {
	query := `
		SELECT ` + tiendaColumns + `
		FROM tiendas_ibk t
		LEFT JOIN estado_servicio e ON e.id = t.estado_servicio_id
		ORDER BY t.codigo_tienda ASC`

	var tiendas []*domain.TiendaIbk
	if err := r.db.SelectContext(ctx, &tiendas, query); err != nil {
		return nil, fmt.Errorf("failed to list tiendas: %w", err)
	}

	return tiendas, nil
}

// Update writes the mutable fields, including the optional service-state
// reference.
func (r *tiendaRepository) Update(ctx context.Context, tienda *domain.TiendaIbk) error {
	query := `
		UPDATE tiendas_ibk
		SET codigo_tienda = :codigo_tienda,
			nombre_tienda = :nombre_tienda,
			distrito = :distrito,
			provincia = :provincia,
			departamento = :departamento,
			direccion = :direccion,
			estado_servicio_id = :estado_servicio_id
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, tienda)
	if err != nil {
		return fmt.Errorf("failed to update tienda: %w", err)
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

// Delete removes the store.
func (r *tiendaRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tiendas_ibk WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tienda: %w", err)
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

// GetEstadoServicioByID looks up a service-state row, for validating store
// updates that point at one.
func (r *tiendaRepository) GetEstadoServicioByID(ctx context.Context, id int64) (*domain.EstadoServicio, error) {
	query := `SELECT id, estado FROM estado_servicio WHERE id = $1`

	var estado domain.EstadoServicio
	err := r.db.GetContext(ctx, &estado, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estado servicio by id: %w", err)
	}

	return &estado, nil
}
