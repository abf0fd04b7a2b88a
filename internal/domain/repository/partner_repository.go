package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// PartnerRepository puerto de lectura de terceros (clientes/proveedores).
// El CRUD completo vive fuera del motor; aquí solo se valida existencia.
type PartnerRepository interface {
	GetByID(id string) (*entity.Partner, error)
}
