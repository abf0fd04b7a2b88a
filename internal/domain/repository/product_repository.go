package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// AddQuantity muta la proyección cacheada; solo el Stock Ledger lo invoca.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	AddQuantity(id string, delta decimal.Decimal) error
}
