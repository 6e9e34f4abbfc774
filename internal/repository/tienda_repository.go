package repository

import (
	"context"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
)

type TiendaRepository interface {
	Create(ctx context.Context, tienda *domain.TiendaIbk) error
	GetByID(ctx context.Context, id int64) (*domain.TiendaIbk, error)
	List(ctx context.Context) ([]*domain.TiendaIbk, error)
	Update(ctx context.Context, tienda *domain.TiendaIbk) error
	Delete(ctx context.Context, id int64) error
	GetEstadoServicioByID(ctx context.Context, id int64) (*domain.EstadoServicio, error)
}
