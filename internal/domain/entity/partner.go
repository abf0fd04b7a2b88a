package entity

import "time"

// Partner representa un tercero (cliente o proveedor). El CRUD de terceros es
// un colaborador externo; el motor solo valida existencia y vigencia.
type Partner struct {
	ID        string
	TaxID     string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
