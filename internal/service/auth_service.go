package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
	"github.com/ariasbenraq/gastometro-backend/pkg/hash"
	"github.com/ariasbenraq/gastometro-backend/pkg/jwt"
)

// Custom errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReservedHandle     = errors.New("handle is reserved")
	ErrUserConflict       = errors.New("handle or email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService orchestrates sign-up, sign-in and token refresh.
type AuthService struct {
	users      repository.UsuarioRepository
	refresh    *RefreshSessionService
	tokens     *jwt.TokenService
	bcryptCost int
	reserved   string
}

func NewAuthService(
	users repository.UsuarioRepository,
	refresh *RefreshSessionService,
	tokens *jwt.TokenService,
	bcryptCost int,
	reservedHandle string,
) *AuthService {
	return &AuthService{
		users:      users,
		refresh:    refresh,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		reserved:   reservedHandle,
	}
}

type SignUpRequest struct {
	NombreApellido string  `json:"nombre_apellido" validate:"required,min=2,max=120"`
	Usuario        string  `json:"usuario" validate:"required,handle,min=3,max=50"`
	Email          string  `json:"email" validate:"required,email"`
	Telefono       *string `json:"telefono" validate:"omitempty,min=6,max=20"`
	Password       string  `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse carries a fresh token pair plus the sanitized user. The
// password hash never appears: the domain struct hides it from JSON and the
// service nils it besides.
type AuthResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	User         *domain.Usuario `json:"user"`
}

// SignUp registers a new user and logs them in.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	if strings.EqualFold(req.Usuario, s.reserved) {
		return nil, ErrReservedHandle
	}

	existing, err := s.users.FindByHandleOrEmail(ctx, req.Usuario, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserConflict
	}

	digest, err := hash.Hash(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.Usuario{
		NombreApellido: req.NombreApellido,
		Usuario:        &req.Usuario,
		Email:          req.Email,
		Telefono:       req.Telefono,
		PasswordHash:   &digest,
		Activo:         true,
	}

	// Default role when the roles table carries it; a missing USER role just
	// leaves the reference null.
	rol, err := s.users.GetRolByNombre(ctx, domain.RoleUser)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if rol != nil {
		user.RolID = &rol.ID
		user.RolNombre = &rol.Nombre
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, user)
}

// SignIn authenticates by handle and password. Absent user, missing hash
// (external accounts) and mismatch all collapse into ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	user, err := s.users.GetByHandleWithPassword(ctx, req.Usuario)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil || !hash.Compare(req.Password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(ctx, user)
}

// Refresh redeems a composite refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	usuarioID, newToken, err := s.refresh.Redeem(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	access, expiresAt, err := s.tokens.Issue(user.ID, handleOf(user), roleOf(user))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = nil
	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: newToken,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.Usuario) (*AuthResponse, error) {
	access, expiresAt, err := s.tokens.Issue(user.ID, handleOf(user), roleOf(user))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.refresh.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = nil
	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func handleOf(user *domain.Usuario) string {
	if user.Usuario != nil {
		return *user.Usuario
	}
	return ""
}

func roleOf(user *domain.Usuario) string {
	if user.RolNombre != nil {
		return *user.RolNombre
	}
	return ""
}
