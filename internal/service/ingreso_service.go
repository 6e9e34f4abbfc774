package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/cache"
)

// IngresoService manages income deposits.
type IngresoService struct {
	ingresos repository.IngresoRepository
	personal repository.PersonalRepository
	cache    *cache.Cache
}

func NewIngresoService(
	ingresos repository.IngresoRepository,
	personal repository.PersonalRepository,
	cacheService *cache.Cache,
) *IngresoService {
	return &IngresoService{
		ingresos: ingresos,
		personal: personal,
		cache:    cacheService,
	}
}

type CreateIngresoRequest struct {
	Fecha         string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	Monto         float64 `json:"monto" validate:"required,gte=0"`
	DepositadoPor *int64  `json:"depositado_por_id" validate:"omitempty,gte=1"`
}

type UpdateIngresoRequest struct {
	Fecha         *string           `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Monto         *float64          `json:"monto" validate:"omitempty,gte=0"`
	DepositadoPor domain.OptionalID `json:"depositado_por_id"`
}

type IngresoList struct {
	Data []*domain.Ingreso `json:"data"`
	Meta *PageMeta         `json:"meta,omitempty"`
}

// Create records a deposit owned by the caller.
func (s *IngresoService) Create(ctx context.Context, actor Actor, req CreateIngresoRequest) (*domain.Ingreso, error) {
	if req.DepositadoPor != nil {
		if err := s.checkPersonal(ctx, *req.DepositadoPor); err != nil {
			return nil, err
		}
	}

	ingreso := &domain.Ingreso{
		Fecha:           req.Fecha,
		Monto:           req.Monto,
		UsuarioID:       actor.ID,
		DepositadoPorID: req.DepositadoPor,
	}

	if err := s.ingresos.Create(ctx, ingreso); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return ingreso, nil
}

// List returns deposits matching the filters, cache-backed.
func (s *IngresoService) List(ctx context.Context, actor Actor, req ListRequest) (*IngresoList, error) {
	filter, err := buildLedgerFilter(actor, req)
	if err != nil {
		return nil, err
	}

	key := ledgerCacheKey("ingresos", filter)
	var cached IngresoList
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	ingresos, total, err := s.ingresos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if ingresos == nil {
		ingresos = []*domain.Ingreso{}
	}

	result := &IngresoList{Data: ingresos}
	if filter.Paginated {
		result.Meta = &PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}
	}

	s.cache.SetJSON(ctx, key, result, listCacheTTL)
	return result, nil
}

// Get returns one deposit, enforcing ownership for USER-role actors.
func (s *IngresoService) Get(ctx context.Context, actor Actor, id int64) (*domain.Ingreso, error) {
	ingreso, err := s.ingresos.GetByID(ctx, id, ownershipScope(actor))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ingreso, nil
}

// Update applies a partial patch with a tri-state depositor reference.
func (s *IngresoService) Update(ctx context.Context, actor Actor, id int64, req UpdateIngresoRequest) (*domain.Ingreso, error) {
	ingreso, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Fecha != nil {
		ingreso.Fecha = *req.Fecha
	}
	if req.Monto != nil {
		ingreso.Monto = *req.Monto
	}
	if req.DepositadoPor.Present {
		if req.DepositadoPor.Valid {
			if err := s.checkPersonal(ctx, req.DepositadoPor.ID); err != nil {
				return nil, err
			}
			id := req.DepositadoPor.ID
			ingreso.DepositadoPorID = &id
		} else {
			ingreso.DepositadoPorID = nil
		}
		ingreso.DepositadoPorNombre = nil
	}

	if err := s.ingresos.Update(ctx, ingreso); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidate(ctx)
	return s.Get(ctx, actor, id)
}

// Delete removes one deposit, enforcing ownership for USER-role actors.
func (s *IngresoService) Delete(ctx context.Context, actor Actor, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.ingresos.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *IngresoService) checkPersonal(ctx context.Context, id int64) error {
	if _, err := s.personal.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: personal administrativo %d", ErrInvalidReference, id)
		}
		return err
	}
	return nil
}

func (s *IngresoService) invalidate(ctx context.Context) {
	_ = s.cache.InvalidatePrefix(ctx, "ingresos:")
	_ = s.cache.InvalidatePrefix(ctx, "balance:")
}
