package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

type usuarioRepository struct {
	db *sqlx.DB
}

// NewUsuarioRepository creates a new PostgreSQL usuario repository
func NewUsuarioRepository(db *sqlx.DB) repository.UsuarioRepository {
	return &usuarioRepository{db: db}
}

// userColumns never includes password_hash: the hash is write-only and only
// GetByHandleWithPassword reads it back.
const userColumns = `
	u.id, u.nombre_apellido, u.usuario, u.email, u.telefono,
	u.rol_id, r.nombre AS rol_nombre, u.activo, u.created_at`

// Create inserts a new user and fills in the generated id.
func (r *usuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) error {
	query := `
		INSERT INTO usuarios (nombre_apellido, usuario, email, telefono, password_hash, rol_id, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		usuario.NombreApellido, usuario.Usuario, usuario.Email, usuario.Telefono,
		usuario.PasswordHash, usuario.RolID, usuario.Activo,
	).Scan(&usuario.ID, &usuario.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create usuario: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id, without the password hash.
func (r *usuarioRepository) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios u
		LEFT JOIN roles_usuario r ON r.id = u.rol_id
		WHERE u.id = $1`

	var usuario domain.Usuario
	err := r.db.GetContext(ctx, &usuario, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get usuario by id: %w", err)
	}

	return &usuario, nil
}

// GetByEmail retrieves a user by email, without the password hash.
func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios u
		LEFT JOIN roles_usuario r ON r.id = u.rol_id
		WHERE u.email = $1`

	var usuario domain.Usuario
	err := r.db.GetContext(ctx, &usuario, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get usuario by email: %w", err)
	}

	return &usuario, nil
}

// GetByHandleWithPassword retrieves a user by login handle including the
// password hash. Only sign-in uses this.
func (r *usuarioRepository) GetByHandleWithPassword(ctx context.Context, handle string) (*domain.Usuario, error) {
	query := `
		SELECT u.id, u.nombre_apellido, u.usuario, u.email, u.telefono,
			   u.password_hash, u.rol_id, r.nombre AS rol_nombre, u.activo, u.created_at
		FROM usuarios u
		LEFT JOIN roles_usuario r ON r.id = u.rol_id
		WHERE u.usuario = $1`

	var usuario domain.Usuario
	err := r.db.GetContext(ctx, &usuario, query, handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get usuario by handle: %w", err)
	}

	return &usuario, nil
}

// FindByHandleOrEmail returns any user whose handle or email collides, for
// sign-up conflict checks.
func (r *usuarioRepository) FindByHandleOrEmail(ctx context.Context, handle, email string) (*domain.Usuario, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios u
		LEFT JOIN roles_usuario r ON r.id = u.rol_id
		WHERE u.usuario = $1 OR u.email = $2
		LIMIT 1`

	var usuario domain.Usuario
	err := r.db.GetContext(ctx, &usuario, query, handle, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find usuario by handle or email: %w", err)
	}

	return &usuario, nil
}

// List retrieves all users ordered by id.
func (r *usuarioRepository) List(ctx context.Context) ([]*domain.Usuario, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios u
		LEFT JOIN roles_usuario r ON r.id = u.rol_id
		ORDER BY u.id ASC`

	var usuarios []*domain.Usuario
	err := r.db.SelectContext(ctx, &usuarios, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list usuarios: %w", err)
	}

	return usuarios, nil
}

// Update writes the mutable profile fields, including the role reference.
func (r *usuarioRepository) Update(ctx context.Context, usuario *domain.Usuario) error {
	query := `
		UPDATE usuarios
		SET nombre_apellido = :nombre_apellido,
			usuario = :usuario,
			email = :email,
			telefono = :telefono,
			rol_id = :rol_id,
			activo = :activo
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, usuario)
	if err != nil {
		return fmt.Errorf("failed to update usuario: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *usuarioRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE usuarios SET password_hash = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetRolByNombre looks up a role by name.
func (r *usuarioRepository) GetRolByNombre(ctx context.Context, nombre string) (*domain.RolUsuario, error) {
	query := `SELECT id, nombre FROM roles_usuario WHERE nombre = $1`

	var rol domain.RolUsuario
	err := r.db.GetContext(ctx, &rol, query, nombre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rol by nombre: %w", err)
	}

	return &rol, nil
}

// GetRolByID looks up a role by id, for validating role reference updates.
func (r *usuarioRepository) GetRolByID(ctx context.Context, id int64) (*domain.RolUsuario, error) {
	query := `SELECT id, nombre FROM roles_usuario WHERE id = $1`

	var rol domain.RolUsuario
	err := r.db.GetContext(ctx, &rol, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rol by id: %w", err)
	}

	return &rol, nil
}

type personalRepository struct {
	db *sqlx.DB
}

// NewPersonalRepository creates a new PostgreSQL personal-administrativo repository
func NewPersonalRepository(db *sqlx.DB) repository.PersonalRepository {
	return &personalRepository{db: db}
}

func (r *personalRepository) GetByID(ctx context.Context, id int64) (*domain.PersonalAdministrativo, error) {
	query := `SELECT id, nombre, activo, usuario_id FROM personal_administrativo WHERE id = $1`

	var personal domain.PersonalAdministrativo
	err := r.db.GetContext(ctx, &personal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get personal by id: %w", err)
	}

	return &personal, nil
}

func (r *personalRepository) List(ctx context.Context) ([]*domain.PersonalAdministrativo, error) {
	query := `SELECT id, nombre, activo, usuario_id FROM personal_administrativo ORDER BY nombre ASC`

	var personal []*domain.PersonalAdministrativo
	err := r.db.SelectContext(ctx, &personal, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal: %w", err)
	}

	return personal, nil
}
