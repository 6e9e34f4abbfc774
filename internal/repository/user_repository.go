package repository

import (
	"context"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
)

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *domain.Usuario) error
	GetByID(ctx context.Context, id int64) (*domain.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*domain.Usuario, error)
	// GetByHandleWithPassword includes the normally-hidden password hash and
	// is only used by sign-in.
	GetByHandleWithPassword(ctx context.Context, handle string) (*domain.Usuario, error)
	// FindByHandleOrEmail returns any user colliding with either unique
	// field, for conflict checks at sign-up.
	FindByHandleOrEmail(ctx context.Context, handle, email string) (*domain.Usuario, error)
	List(ctx context.Context) ([]*domain.Usuario, error)
	Update(ctx context.Context, usuario *domain.Usuario) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	GetRolByNombre(ctx context.Context, nombre string) (*domain.RolUsuario, error)
	GetRolByID(ctx context.Context, id int64) (*domain.RolUsuario, error)
}

type PersonalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PersonalAdministrativo, error)
	List(ctx context.Context) ([]*domain.PersonalAdministrativo, error)
}
