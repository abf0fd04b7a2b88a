package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrder orden de producción: consume materias primas según la receta
// y produce el terminado multiplicado por QuantityToProduce.
type ProductionOrder struct {
	ID                string
	Series            string
	Year              int
	Number            int64
	RecipeID          string
	WarehouseID       string // bodega donde se consume y se produce
	QuantityToProduce decimal.Decimal
	Status            ProductionStatus
	CreatedBy         string
	CreatedAt         time.Time
	StartedAt         *time.Time
	CompletedAt       *time.Time
}
