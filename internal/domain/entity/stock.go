package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad actual de un producto en una bodega
// (proyección materializada, no fuente de verdad; se reconcilia con los movimientos).
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
