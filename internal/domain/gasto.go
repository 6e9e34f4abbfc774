package domain

import "time"

// Gasto is a single expense entry in the shared ledger.
type Gasto struct {
	ID                int64     `json:"id" db:"id"`
	Fecha             string    `json:"fecha" db:"fecha"`
	Item              string    `json:"item" db:"item"`
	Motivo            string    `json:"motivo" db:"motivo"`
	Monto             float64   `json:"monto" db:"monto"`
	UsuarioID         int64     `json:"usuario_id" db:"usuario_id"`
	AprobadoPorID     *int64    `json:"aprobado_por_id,omitempty" db:"aprobado_por"`
	AprobadoPorNombre *string   `json:"aprobado_por,omitempty" db:"aprobado_por_nombre"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
