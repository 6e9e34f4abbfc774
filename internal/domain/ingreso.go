package domain

import "time"

// Ingreso is a single income deposit in the shared ledger.
type Ingreso struct {
	ID                  int64     `json:"id" db:"id"`
	Fecha               string    `json:"fecha" db:"fecha"`
	Monto               float64   `json:"monto" db:"monto"`
	UsuarioID           int64     `json:"usuario_id" db:"usuario_id"`
	DepositadoPorID     *int64    `json:"depositado_por_id,omitempty" db:"depositado_por"`
	DepositadoPorNombre *string   `json:"depositado_por,omitempty" db:"depositado_por_nombre"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
