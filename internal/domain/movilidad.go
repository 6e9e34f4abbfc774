package domain

import "time"

// RegistroMovilidad is a mileage/trip reimbursement claim.
type RegistroMovilidad struct {
	ID           int64     `json:"id" db:"id"`
	Fecha        string    `json:"fecha" db:"fecha"`
	Inicio       string    `json:"inicio" db:"inicio"`
	Fin          string    `json:"fin" db:"fin"`
	Motivo       string    `json:"motivo" db:"motivo"`
	Detalle      string    `json:"detalle" db:"detalle"`
	Monto        float64   `json:"monto" db:"monto"`
	UsuarioID    int64     `json:"usuario_id" db:"usuario_id"`
	TiendaID     *int64    `json:"tienda_id,omitempty" db:"tienda_id"`
	TiendaNombre *string   `json:"tienda,omitempty" db:"tienda_nombre"`
	Ticket       string    `json:"ticket" db:"ticket"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
