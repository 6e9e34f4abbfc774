package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/cache"
)

// TiendaService manages the store catalog trips are charged against.
type TiendaService struct {
	tiendas repository.TiendaRepository
	cache   *cache.Cache
}

func NewTiendaService(tiendas repository.TiendaRepository, cacheService *cache.Cache) *TiendaService {
	return &TiendaService{
		tiendas: tiendas,
		cache:   cacheService,
	}
}

type CreateTiendaRequest struct {
	CodigoTienda   string  `json:"codigo_tienda" validate:"required,min=1,max=50"`
	NombreTienda   string  `json:"nombre_tienda" validate:"required,min=1,max=200"`
	Distrito       string  `json:"distrito" validate:"required,min=1,max=100"`
	Provincia      string  `json:"provincia" validate:"required,min=1,max=100"`
	Departamento   string  `json:"departamento" validate:"required,min=1,max=100"`
	Direccion      *string `json:"direccion" validate:"omitempty,max=300"`
	EstadoServicio *int64  `json:"estado_servicio_id" validate:"omitempty,gte=1"`
}

type UpdateTiendaRequest struct {
	CodigoTienda   *string           `json:"codigo_tienda" validate:"omitempty,min=1,max=50"`
	NombreTienda   *string           `json:"nombre_tienda" validate:"omitempty,min=1,max=200"`
	Distrito       *string           `json:"distrito" validate:"omitempty,min=1,max=100"`
	Provincia      *string           `json:"provincia" validate:"omitempty,min=1,max=100"`
	Departamento   *string           `json:"departamento" validate:"omitempty,min=1,max=100"`
	Direccion      *string           `json:"direccion" validate:"omitempty,max=300"`
	EstadoServicio domain.OptionalID `json:"estado_servicio_id"`
}

// Create registers a new store.
func (s *TiendaService) Create(ctx context.Context, req CreateTiendaRequest) (*domain.TiendaIbk, error) {
	if req.EstadoServicio != nil {
		if err := s.checkEstado(ctx, *req.EstadoServicio); err != nil {
			return nil, err
		}
	}

	tienda := &domain.TiendaIbk{
		CodigoTienda:     req.CodigoTienda,
		NombreTienda:     req.NombreTienda,
		Distrito:         req.Distrito,
		Provincia:        req.Provincia,
		Departamento:     req.Departamento,
		Direccion:        req.Direccion,
		EstadoServicioID: req.EstadoServicio,
	}

	if err := s.tiendas.Create(ctx, tienda); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return tienda, nil
}

// List returns all stores.
func (s *TiendaService) List(ctx context.Context) ([]*domain.TiendaIbk, error) {
	key := "tiendas:list"
	var cached []*domain.TiendaIbk
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	tiendas, err := s.tiendas.List(ctx)
	if err != nil {
		return nil, err
	}
	if tiendas == nil {
		tiendas = []*domain.TiendaIbk{}
	}

	s.cache.SetJSON(ctx, key, tiendas, listCacheTTL)
	return tiendas, nil
}

// Get returns one store.
func (s *TiendaService) Get(ctx context.Context, id int64) (*domain.TiendaIbk, error) {
	tienda, err := s.tiendas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tienda, nil
}

// Update applies a partial patch with a tri-state service-state reference.
func (s *TiendaService) Update(ctx context.Context, id int64, req UpdateTiendaRequest) (*domain.TiendaIbk, error) {
	tienda, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CodigoTienda != nil {
		tienda.CodigoTienda = *req.CodigoTienda
	}
	if req.NombreTienda != nil {
		tienda.NombreTienda = *req.NombreTienda
	}
	if req.Distrito != nil {
		tienda.Distrito = *req.Distrito
	}
	if req.Provincia != nil {
		tienda.Provincia = *req.Provincia
	}
	if req.Departamento != nil {
		tienda.Departamento = *req.Departamento
	}
	if req.Direccion != nil {
		tienda.Direccion = req.Direccion
	}
	if req.EstadoServicio.Present {
		if req.EstadoServicio.Valid {
			if err := s.checkEstado(ctx, req.EstadoServicio.ID); err != nil {
				return nil, err
			}
			id := req.EstadoServicio.ID
			tienda.EstadoServicioID = &id
		} else {
			tienda.EstadoServicioID = nil
		}
		tienda.EstadoServicio = nil
	}

	if err := s.tiendas.Update(ctx, tienda); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete removes one store.
func (s *TiendaService) Delete(ctx context.Context, id int64) error {
	if err := s.tiendas.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *TiendaService) checkEstado(ctx context.Context, id int64) error {
	if _, err := s.tiendas.GetEstadoServicioByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: estado servicio %d", ErrInvalidReference, id)
		}
		return err
	}
	return nil
}

func (s *TiendaService) invalidate(ctx context.Context) {
	_ = s.cache.InvalidatePrefix(ctx, "tiendas:")
	// Trip lists embed the store name through the join.
	_ = s.cache.InvalidatePrefix(ctx, "movilidades:")
}
