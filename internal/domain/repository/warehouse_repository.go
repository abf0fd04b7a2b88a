package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// WarehouseRepository puerto de lectura de bodegas.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
}
