package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

type balanceRepository struct {
	db *sqlx.DB
}

// NewBalanceRepository creates a new PostgreSQL balance repository
func NewBalanceRepository(db *sqlx.DB) repository.BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) SumIngresos(ctx context.Context, q repository.BalanceQuery) (float64, error) {
	return r.sum(ctx, "ingresos", q)
}

func (r *balanceRepository) SumGastos(ctx context.Context, q repository.BalanceQuery) (float64, error) {
	return r.sum(ctx, "gastos", q)
}

func (r *balanceRepository) SumMovilidades(ctx context.Context, q repository.BalanceQuery) (float64, error) {
	return r.sum(ctx, "registro_movilidades", q)
}

// sum aggregates monto over one ledger table. The date column is taken from
// a whitelist, never from caller input, since it is spliced into the query.
func (r *balanceRepository) sum(ctx context.Context, table string, q repository.BalanceQuery) (float64, error) {
	dateColumn, err := balanceDateColumn(q.DateField)
	if err != nil {
		return 0, err
	}

	var conditions []string
	var args []interface{}

	if q.UsuarioID != nil {
		args = append(args, *q.UsuarioID)
		conditions = append(conditions, fmt.Sprintf("usuario_id = $%d", len(args)))
	}
	if q.StartDate != "" && q.EndDate != "" {
		args = append(args, q.StartDate, q.EndDate)
		conditions = append(conditions, fmt.Sprintf("%s BETWEEN $%d AND $%d", dateColumn, len(args)-1, len(args)))
	} else if q.StartDate != "" {
		args = append(args, q.StartDate)
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", dateColumn, len(args)))
	} else if q.EndDate != "" {
		args = append(args, q.EndDate)
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", dateColumn, len(args)))
	}

	query := fmt.Sprintf("SELECT COALESCE(SUM(monto), 0) FROM %s", table)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total float64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to sum monto over %s: %w", table, err)
	}

	return total, nil
}

// balanceDateColumn maps the query's date field onto a real column. The
// created_at timestamp is truncated to a date so inclusive YYYY-MM-DD bounds
// behave the same as on fecha.
func balanceDateColumn(field string) (string, error) {
	switch field {
	case "", "fecha":
		return "fecha", nil
	case "created_at":
		return "created_at::date", nil
	default:
		return "", fmt.Errorf("unsupported balance date field %q", field)
	}
}
