package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement representa un movimiento de inventario. Inmutable una vez escrito:
// el historial es append-only (auditoría); nunca se actualiza ni se borra.
type StockMovement struct {
	ID           string
	ProductID    string
	WarehouseID  string
	Type         MovementType
	DocumentType DocumentType
	DocumentID   *string         // documento que origina el movimiento (nullable)
	Quantity     decimal.Decimal // firmada: positiva entrada, negativa salida
	UnitPrice    *decimal.Decimal
	BatchNumber  *string
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}
