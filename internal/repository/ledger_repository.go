package repository

import (
	"context"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
)

// LedgerFilter narrows list queries over the ledger tables. Dates are
// inclusive YYYY-MM-DD bounds; Keyword matches case-insensitively against the
// entity's text columns. When Paginated is false the whole result set is
// returned.
type LedgerFilter struct {
	UsuarioID *int64
	StartDate string
	EndDate   string
	Keyword   string
	Page      int
	Limit     int
	Paginated bool
}

type GastoRepository interface {
	Create(ctx context.Context, gasto *domain.Gasto) error
	// GetByID scopes the lookup to scopeUserID when non-nil (ownership).
	GetByID(ctx context.Context, id int64, scopeUserID *int64) (*domain.Gasto, error)
	List(ctx context.Context, filter LedgerFilter) ([]*domain.Gasto, int, error)
	Update(ctx context.Context, gasto *domain.Gasto) error
	Delete(ctx context.Context, id int64) error
}

type IngresoRepository interface {
	Create(ctx context.Context, ingreso *domain.Ingreso) error
	GetByID(ctx context.Context, id int64, scopeUserID *int64) (*domain.Ingreso, error)
	List(ctx context.Context, filter LedgerFilter) ([]*domain.Ingreso, int, error)
	Update(ctx context.Context, ingreso *domain.Ingreso) error
	Delete(ctx context.Context, id int64) error
}

type MovilidadRepository interface {
	Create(ctx context.Context, registro *domain.RegistroMovilidad) error
	GetByID(ctx context.Context, id int64, scopeUserID *int64) (*domain.RegistroMovilidad, error)
	List(ctx context.Context, filter LedgerFilter) ([]*domain.RegistroMovilidad, int, error)
	Update(ctx context.Context, registro *domain.RegistroMovilidad) error
	Delete(ctx context.Context, id int64) error
}

// BalanceQuery scopes the aggregate sums. DateField selects which timestamp
// the range applies to: "fecha" (ledger date) or "created_at".
type BalanceQuery struct {
	UsuarioID *int64
	DateField string
	StartDate string
	EndDate   string
}

type BalanceRepository interface {
	SumIngresos(ctx context.Context, q BalanceQuery) (float64, error)
	SumGastos(ctx context.Context, q BalanceQuery) (float64, error)
	SumMovilidades(ctx context.Context, q BalanceQuery) (float64, error)
}
