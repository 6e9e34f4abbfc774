package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotAnalyst = errors.New("user is not a balance analyst")
)

// UserService manages profiles and admin approval actions.
type UserService struct {
	users repository.UsuarioRepository
}

func NewUserService(users repository.UsuarioRepository) *UserService {
	return &UserService{users: users}
}

type UpdateUserRequest struct {
	NombreApellido *string           `json:"nombre_apellido" validate:"omitempty,min=2,max=120"`
	Email          *string           `json:"email" validate:"omitempty,email"`
	Telefono       *string           `json:"telefono" validate:"omitempty,min=6,max=20"`
	Activo         *bool             `json:"activo"`
	Rol            domain.OptionalID `json:"rol_id"`
}

// List returns every user, sanitized, ordered by id.
func (s *UserService) List(ctx context.Context) ([]*domain.Usuario, error) {
	usuarios, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range usuarios {
		u.PasswordHash = nil
	}
	return usuarios, nil
}

// Get returns one user, sanitized.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.Usuario, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = nil
	return user, nil
}

// ApproveAnalyst activates a user holding the balance-analyst role. Accounts
// with any other role cannot be approved through this path.
func (s *UserService) ApproveAnalyst(ctx context.Context, id int64) (*domain.Usuario, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.RolNombre == nil || *user.RolNombre != domain.RoleAnalystBalance {
		return nil, ErrNotAnalyst
	}

	user.Activo = true
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// UpdateBasic patches profile fields. Only an ADMIN or the user themselves
// may call it; the role reference is tri-state and admin-only.
func (s *UserService) UpdateBasic(ctx context.Context, actor Actor, id int64, req UpdateUserRequest) (*domain.Usuario, error) {
	if actor.Rol != domain.RoleAdmin && actor.ID != id {
		return nil, ErrForbidden
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.users.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if req.NombreApellido != nil {
		user.NombreApellido = *req.NombreApellido
	}
	if req.Telefono != nil {
		user.Telefono = req.Telefono
	}
	if req.Activo != nil {
		if actor.Rol != domain.RoleAdmin {
			return nil, ErrForbidden
		}
		user.Activo = *req.Activo
	}
	if req.Rol.Present {
		if actor.Rol != domain.RoleAdmin {
			return nil, ErrForbidden
		}
		if req.Rol.Valid {
			rol, err := s.users.GetRolByID(ctx, req.Rol.ID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, fmt.Errorf("%w: rol %d", ErrInvalidReference, req.Rol.ID)
				}
				return nil, err
			}
			user.RolID = &rol.ID
			user.RolNombre = &rol.Nombre
		} else {
			user.RolID = nil
			user.RolNombre = nil
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.Get(ctx, id)
}
