package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/cache"
)

const (
	listCacheTTL    = 60 * time.Second
	balanceCacheTTL = 30 * time.Second
)

// GastoService manages expense entries.
type GastoService struct {
	gastos   repository.GastoRepository
	personal repository.PersonalRepository
	cache    *cache.Cache
}

func NewGastoService(
	gastos repository.GastoRepository,
	personal repository.PersonalRepository,
	cacheService *cache.Cache,
) *GastoService {
	return &GastoService{
		gastos:   gastos,
		personal: personal,
		cache:    cacheService,
	}
}

type CreateGastoRequest struct {
	Fecha       string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	Item        string  `json:"item" validate:"required,min=1,max=200"`
	Motivo      string  `json:"motivo" validate:"required,min=1,max=500"`
	Monto       float64 `json:"monto" validate:"required,gte=0"`
	AprobadoPor *int64  `json:"aprobado_por_id" validate:"omitempty,gte=1"`
}

type UpdateGastoRequest struct {
	Fecha       *string           `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Item        *string           `json:"item" validate:"omitempty,min=1,max=200"`
	Motivo      *string           `json:"motivo" validate:"omitempty,min=1,max=500"`
	Monto       *float64          `json:"monto" validate:"omitempty,gte=0"`
	AprobadoPor domain.OptionalID `json:"aprobado_por_id"`
}

// GastoList is a list page; Meta is nil when the caller did not paginate.
type GastoList struct {
	Data []*domain.Gasto `json:"data"`
	Meta *PageMeta       `json:"meta,omitempty"`
}

// Create records an expense owned by the caller.
func (s *GastoService) Create(ctx context.Context, actor Actor, req CreateGastoRequest) (*domain.Gasto, error) {
	if req.AprobadoPor != nil {
		if err := s.checkPersonal(ctx, *req.AprobadoPor); err != nil {
			return nil, err
		}
	}

	gasto := &domain.Gasto{
		Fecha:         req.Fecha,
		Item:          req.Item,
		Motivo:        req.Motivo,
		Monto:         req.Monto,
		UsuarioID:     actor.ID,
		AprobadoPorID: req.AprobadoPor,
	}

	if err := s.gastos.Create(ctx, gasto); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return gasto, nil
}

// List returns expenses matching the filters, always scoped to the caller
// for USER-role actors. Results are served from cache when fresh.
func (s *GastoService) List(ctx context.Context, actor Actor, req ListRequest) (*GastoList, error) {
	filter, err := buildLedgerFilter(actor, req)
	if err != nil {
		return nil, err
	}

	key := ledgerCacheKey("gastos", filter)
	var cached GastoList
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	gastos, total, err := s.gastos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if gastos == nil {
		gastos = []*domain.Gasto{}
	}

	result := &GastoList{Data: gastos}
	if filter.Paginated {
		result.Meta = &PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}
	}

	s.cache.SetJSON(ctx, key, result, listCacheTTL)
	return result, nil
}

// Get returns one expense, enforcing ownership for USER-role actors.
func (s *GastoService) Get(ctx context.Context, actor Actor, id int64) (*domain.Gasto, error) {
	gasto, err := s.gastos.GetByID(ctx, id, ownershipScope(actor))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return gasto, nil
}

// Update applies a partial patch. The approver reference is tri-state:
// absent leaves it, null clears it, an id points it at personal staff.
func (s *GastoService) Update(ctx context.Context, actor Actor, id int64, req UpdateGastoRequest) (*domain.Gasto, error) {
	gasto, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Fecha != nil {
		gasto.Fecha = *req.Fecha
	}
	if req.Item != nil {
		gasto.Item = *req.Item
	}
	if req.Motivo != nil {
		gasto.Motivo = *req.Motivo
	}
	if req.Monto != nil {
		gasto.Monto = *req.Monto
	}
	if req.AprobadoPor.Present {
		if req.AprobadoPor.Valid {
			if err := s.checkPersonal(ctx, req.AprobadoPor.ID); err != nil {
				return nil, err
			}
			id := req.AprobadoPor.ID
			gasto.AprobadoPorID = &id
		} else {
			gasto.AprobadoPorID = nil
		}
		gasto.AprobadoPorNombre = nil
	}

	if err := s.gastos.Update(ctx, gasto); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidate(ctx)
	return s.Get(ctx, actor, id)
}

// Delete removes one expense, enforcing ownership for USER-role actors.
func (s *GastoService) Delete(ctx context.Context, actor Actor, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.gastos.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *GastoService) checkPersonal(ctx context.Context, id int64) error {
	if _, err := s.personal.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: personal administrativo %d", ErrInvalidReference, id)
		}
		return err
	}
	return nil
}

func (s *GastoService) invalidate(ctx context.Context) {
	_ = s.cache.InvalidatePrefix(ctx, "gastos:")
	_ = s.cache.InvalidatePrefix(ctx, "balance:")
}

// ledgerCacheKey derives a cache key from the resolved filter so every
// distinct query caches separately.
func ledgerCacheKey(namespace string, f repository.LedgerFilter) string {
	user := "-"
	if f.UsuarioID != nil {
		user = fmt.Sprintf("%d", *f.UsuarioID)
	}
	return fmt.Sprintf("%s:list:u=%s:s=%s:e=%s:q=%s:p=%d:l=%d",
		namespace, user, f.StartDate, f.EndDate, f.Keyword, f.Page, f.Limit)
}
