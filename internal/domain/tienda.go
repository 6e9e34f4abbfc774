package domain

// TiendaIbk is a store location that trips can be charged against.
type TiendaIbk struct {
	ID               int64   `json:"id" db:"id"`
	CodigoTienda     string  `json:"codigo_tienda" db:"codigo_tienda"`
	NombreTienda     string  `json:"nombre_tienda" db:"nombre_tienda"`
	Distrito         string  `json:"distrito" db:"distrito"`
	Provincia        string  `json:"provincia" db:"provincia"`
	Departamento     string  `json:"departamento" db:"departamento"`
	Direccion        *string `json:"direccion,omitempty" db:"direccion"`
	EstadoServicioID *int64  `json:"estado_servicio_id,omitempty" db:"estado_servicio_id"`
	EstadoServicio   *string `json:"estado_servicio,omitempty" db:"estado_servicio"`
}

// EstadoServicio classifies the service state of a store.
type EstadoServicio struct {
	ID     int64   `json:"id" db:"id"`
	Estado *string `json:"estado" db:"estado"`
}
