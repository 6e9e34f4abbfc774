package domain

import "time"

// Role names seeded in roles_usuario.
const (
	RoleAdmin          = "ADMIN"
	RoleAnalystBalance = "ANALYST_BALANCE"
	RoleUser           = "USER"
)

// Usuario is the identity record. The password hash is write-only: repository
// reads omit it unless the caller explicitly asks for credentials.
type Usuario struct {
	ID             int64     `json:"id" db:"id"`
	NombreApellido string    `json:"nombre_apellido" db:"nombre_apellido"`
	Usuario        *string   `json:"usuario" db:"usuario"`
	Email          string    `json:"email" db:"email"`
	Telefono       *string   `json:"telefono,omitempty" db:"telefono"`
	PasswordHash   *string   `json:"-" db:"password_hash"`
	RolID          *int64    `json:"-" db:"rol_id"`
	RolNombre      *string   `json:"rol,omitempty" db:"rol_nombre"`
	Activo         bool      `json:"activo" db:"activo"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type RolUsuario struct {
	ID     int64  `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
}

// PersonalAdministrativo references the staff member who approved an expense
// or deposited an income entry.
type PersonalAdministrativo struct {
	ID        int64  `json:"id" db:"id"`
	Nombre    string `json:"nombre" db:"nombre"`
	Activo    bool   `json:"activo" db:"activo"`
	UsuarioID int64  `json:"usuario_id" db:"usuario_id"`
}
