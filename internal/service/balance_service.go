package service

import (
	"context"
	"fmt"

	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/cache"
)

// BalanceService aggregates the three ledgers into a net balance.
type BalanceService struct {
	balances repository.BalanceRepository
	cache    *cache.Cache
}

func NewBalanceService(balances repository.BalanceRepository, cacheService *cache.Cache) *BalanceService {
	return &BalanceService{
		balances: balances,
		cache:    cacheService,
	}
}

// BalanceRequest scopes a balance query. DateField picks which timestamp the
// period applies to: "fecha" (default) or "created_at".
type BalanceRequest struct {
	UsuarioID *int64 `query:"userId"`
	DateField string `query:"dateField" validate:"omitempty,oneof=fecha created_at"`
}

// BalanceReport is the aggregate over the three ledgers.
// Balance = Ingresos - Gastos - Movilidades.
type BalanceReport struct {
	Ingresos    float64 `json:"ingresos"`
	Gastos      float64 `json:"gastos"`
	Movilidades float64 `json:"movilidades"`
	Balance     float64 `json:"balance"`
}

// Get computes the all-time balance.
func (s *BalanceService) Get(ctx context.Context, actor Actor, req BalanceRequest) (*BalanceReport, error) {
	return s.report(ctx, actor, req, "", "")
}

// GetMonthly computes the balance for one calendar month.
func (s *BalanceService) GetMonthly(ctx context.Context, actor Actor, req BalanceRequest, year, month int) (*BalanceReport, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: year and month (1-12) are required", ErrInvalidPeriod)
	}
	start, end, err := resolveDateRange("", "", month, year)
	if err != nil {
		return nil, err
	}
	return s.report(ctx, actor, req, start, end)
}

// GetAnnual computes the balance for one calendar year.
func (s *BalanceService) GetAnnual(ctx context.Context, actor Actor, req BalanceRequest, year int) (*BalanceReport, error) {
	if year < 1 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidPeriod)
	}
	start, end, err := resolveDateRange("", "", 0, year)
	if err != nil {
		return nil, err
	}
	return s.report(ctx, actor, req, start, end)
}

func (s *BalanceService) report(ctx context.Context, actor Actor, req BalanceRequest, start, end string) (*BalanceReport, error) {
	query := repository.BalanceQuery{
		UsuarioID: scopeUser(actor, req.UsuarioID),
		DateField: req.DateField,
		StartDate: start,
		EndDate:   end,
	}

	key := balanceCacheKey(query)
	var cached BalanceReport
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	ingresos, err := s.balances.SumIngresos(ctx, query)
	if err != nil {
		return nil, err
	}
	gastos, err := s.balances.SumGastos(ctx, query)
	if err != nil {
		return nil, err
	}
	movilidades, err := s.balances.SumMovilidades(ctx, query)
	if err != nil {
		return nil, err
	}

	report := &BalanceReport{
		Ingresos:    ingresos,
		Gastos:      gastos,
		Movilidades: movilidades,
		Balance:     ingresos - gastos - movilidades,
	}

	s.cache.SetJSON(ctx, key, report, balanceCacheTTL)
	return report, nil
}

func balanceCacheKey(q repository.BalanceQuery) string {
	user := "-"
	if q.UsuarioID != nil {
		user = fmt.Sprintf("%d", *q.UsuarioID)
	}
	return fmt.Sprintf("balance:u=%s:f=%s:s=%s:e=%s", user, q.DateField, q.StartDate, q.EndDate)
}
