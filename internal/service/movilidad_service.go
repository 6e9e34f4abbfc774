package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/cache"
)

// MovilidadService manages mileage/trip reimbursement claims.
type MovilidadService struct {
	registros repository.MovilidadRepository
	tiendas   repository.TiendaRepository
	cache     *cache.Cache
}

func NewMovilidadService(
	registros repository.MovilidadRepository,
	tiendas repository.TiendaRepository,
	cacheService *cache.Cache,
) *MovilidadService {
	return &MovilidadService{
		registros: registros,
		tiendas:   tiendas,
		cache:     cacheService,
	}
}

type CreateMovilidadRequest struct {
	Fecha   string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	Inicio  string  `json:"inicio" validate:"required,min=1,max=200"`
	Fin     string  `json:"fin" validate:"required,min=1,max=200"`
	Motivo  string  `json:"motivo" validate:"required,min=1,max=500"`
	Detalle string  `json:"detalle" validate:"omitempty,max=1000"`
	Monto   float64 `json:"monto" validate:"required,gte=0"`
	Tienda  *int64  `json:"tienda_id" validate:"omitempty,gte=1"`
	Ticket  string  `json:"ticket" validate:"omitempty,max=100"`
}

type UpdateMovilidadRequest struct {
	Fecha   *string           `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Inicio  *string           `json:"inicio" validate:"omitempty,min=1,max=200"`
	Fin     *string           `json:"fin" validate:"omitempty,min=1,max=200"`
	Motivo  *string           `json:"motivo" validate:"omitempty,min=1,max=500"`
	Detalle *string           `json:"detalle" validate:"omitempty,max=1000"`
	Monto   *float64          `json:"monto" validate:"omitempty,gte=0"`
	Tienda  domain.OptionalID `json:"tienda_id"`
	Ticket  *string           `json:"ticket" validate:"omitempty,max=100"`
}

type MovilidadList struct {
	Data []*domain.RegistroMovilidad `json:"data"`
	Meta *PageMeta                   `json:"meta,omitempty"`
}

// Create records a trip claim owned by the caller.
func (s *MovilidadService) Create(ctx context.Context, actor Actor, req CreateMovilidadRequest) (*domain.RegistroMovilidad, error) {
	if req.Tienda != nil {
		if err := s.checkTienda(ctx, *req.Tienda); err != nil {
			return nil, err
		}
	}

	registro := &domain.RegistroMovilidad{
		Fecha:     req.Fecha,
		Inicio:    req.Inicio,
		Fin:       req.Fin,
		Motivo:    req.Motivo,
		Detalle:   req.Detalle,
		Monto:     req.Monto,
		UsuarioID: actor.ID,
		TiendaID:  req.Tienda,
		Ticket:    req.Ticket,
	}

	if err := s.registros.Create(ctx, registro); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return registro, nil
}

// List returns trip claims matching the filters, cache-backed.
func (s *MovilidadService) List(ctx context.Context, actor Actor, req ListRequest) (*MovilidadList, error) {
	filter, err := buildLedgerFilter(actor, req)
	if err != nil {
		return nil, err
	}

	key := ledgerCacheKey("movilidades", filter)
	var cached MovilidadList
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	registros, total, err := s.registros.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if registros == nil {
		registros = []*domain.RegistroMovilidad{}
	}

	result := &MovilidadList{Data: registros}
	if filter.Paginated {
		result.Meta = &PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}
	}

	s.cache.SetJSON(ctx, key, result, listCacheTTL)
	return result, nil
}

// Get returns one trip claim, enforcing ownership for USER-role actors.
func (s *MovilidadService) Get(ctx context.Context, actor Actor, id int64) (*domain.RegistroMovilidad, error) {
	registro, err := s.registros.GetByID(ctx, id, ownershipScope(actor))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return registro, nil
}

// Update applies a partial patch with a tri-state store reference.
func (s *MovilidadService) Update(ctx context.Context, actor Actor, id int64, req UpdateMovilidadRequest) (*domain.RegistroMovilidad, error) {
	registro, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Fecha != nil {
		registro.Fecha = *req.Fecha
	}
	if req.Inicio != nil {
		registro.Inicio = *req.Inicio
	}
	if req.Fin != nil {
		registro.Fin = *req.Fin
	}
	if req.Motivo != nil {
		registro.Motivo = *req.Motivo
	}
	if req.Detalle != nil {
		registro.Detalle = *req.Detalle
	}
	if req.Monto != nil {
		registro.Monto = *req.Monto
	}
	if req.Ticket != nil {
		registro.Ticket = *req.Ticket
	}
	if req.Tienda.Present {
		if req.Tienda.Valid {
			if err := s.checkTienda(ctx, req.Tienda.ID); err != nil {
				return nil, err
			}
			id := req.Tienda.ID
			registro.TiendaID = &id
		} else {
			registro.TiendaID = nil
		}
		registro.TiendaNombre = nil
	}

	if err := s.registros.Update(ctx, registro); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidate(ctx)
	return s.Get(ctx, actor, id)
}

// Delete removes one trip claim, enforcing ownership for USER-role actors.
func (s *MovilidadService) Delete(ctx context.Context, actor Actor, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.registros.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *MovilidadService) checkTienda(ctx context.Context, id int64) error {
	if _, err := s.tiendas.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: tienda %d", ErrInvalidReference, id)
		}
		return err
	}
	return nil
}

func (s *MovilidadService) invalidate(ctx context.Context) {
	_ = s.cache.InvalidatePrefix(ctx, "movilidades:")
	_ = s.cache.InvalidatePrefix(ctx, "balance:")
}
