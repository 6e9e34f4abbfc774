package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

type fakeBalanceRepo struct {
	ingresos    float64
	gastos      float64
	movilidades float64
	lastQuery   repository.BalanceQuery
}

func (f *fakeBalanceRepo) SumIngresos(ctx context.Context, q repository.BalanceQuery) (float64, error) {
	f.lastQuery = q
	return f.ingresos, nil
}

func (f *fakeBalanceRepo) SumGastos(ctx context.Context, q repository.BalanceQuery) (float64, error) {
	f.lastQuery = q
	return f.gastos, nil
}

func (f *fakeBalanceRepo) SumMovilidades(ctx context.Context, q repository.BalanceQuery) (float64, error) {
	f.lastQuery = q
	return f.movilidades, nil
}

func TestBalanceComputesNet(t *testing.T) {
	repo := &fakeBalanceRepo{ingresos: 1000, gastos: 250.5, movilidades: 100}
	svc := NewBalanceService(repo, nil)

	report, err := svc.Get(context.Background(), adminActor, BalanceRequest{})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want := 1000 - 250.5 - 100.0
	if report.Balance != want {
		t.Errorf("balance = %v, want %v", report.Balance, want)
	}
	if report.Ingresos != 1000 || report.Gastos != 250.5 || report.Movilidades != 100 {
		t.Errorf("component sums wrong: %+v", report)
	}
}

func TestBalanceScopesUserRole(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewBalanceService(repo, nil)
	actor := Actor{ID: 33, Rol: domain.RoleUser}

	foreign := int64(99)
	if _, err := svc.Get(context.Background(), actor, BalanceRequest{UsuarioID: &foreign}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if repo.lastQuery.UsuarioID == nil || *repo.lastQuery.UsuarioID != actor.ID {
		t.Errorf("USER query not pinned to self: %+v", repo.lastQuery.UsuarioID)
	}
}

func TestBalanceAnalystMayFilterByUser(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewBalanceService(repo, nil)
	actor := Actor{ID: 2, Rol: domain.RoleAnalystBalance}

	target := int64(7)
	if _, err := svc.Get(context.Background(), actor, BalanceRequest{UsuarioID: &target}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if repo.lastQuery.UsuarioID == nil || *repo.lastQuery.UsuarioID != target {
		t.Errorf("analyst filter dropped: %+v", repo.lastQuery.UsuarioID)
	}
}

func TestBalanceMonthlyBounds(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewBalanceService(repo, nil)
	ctx := context.Background()

	if _, err := svc.GetMonthly(ctx, adminActor, BalanceRequest{}, 2026, 2); err != nil {
		t.Fatalf("GetMonthly: %v", err)
	}
	if repo.lastQuery.StartDate != "2026-02-01" || repo.lastQuery.EndDate != "2026-02-28" {
		t.Errorf("february range = %s..%s", repo.lastQuery.StartDate, repo.lastQuery.EndDate)
	}

	for _, tc := range []struct{ year, month int }{
		{2026, 0}, {2026, 13}, {0, 5},
	} {
		if _, err := svc.GetMonthly(ctx, adminActor, BalanceRequest{}, tc.year, tc.month); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("GetMonthly(%d, %d) = %v, want ErrInvalidPeriod", tc.year, tc.month, err)
		}
	}
}

func TestBalanceAnnualBounds(t *testing.T) {
	repo := &fakeBalanceRepo{}
	svc := NewBalanceService(repo, nil)
	ctx := context.Background()

	if _, err := svc.GetAnnual(ctx, adminActor, BalanceRequest{}, 2025); err != nil {
		t.Fatalf("GetAnnual: %v", err)
	}
	if repo.lastQuery.StartDate != "2025-01-01" || repo.lastQuery.EndDate != "2025-12-31" {
		t.Errorf("annual range = %s..%s", repo.lastQuery.StartDate, repo.lastQuery.EndDate)
	}

	if _, err := svc.GetAnnual(ctx, adminActor, BalanceRequest{}, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("GetAnnual(0) = %v, want ErrInvalidPeriod", err)
	}
}
