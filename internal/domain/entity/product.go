package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Quantity es una proyección materializada de la suma firmada de movimientos;
// solo el Stock Ledger la muta (nunca los workflows directamente).
type Product struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta
	VATRate       decimal.Decimal // fracción: 0, 0.05, 0.19
	UnitMeasure   string
	Quantity      decimal.Decimal // cantidad total cacheada (todas las bodegas)
	IsRawMaterial bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
