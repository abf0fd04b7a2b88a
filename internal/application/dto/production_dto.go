package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest crea una orden en pending (sin efecto de stock).
// Se indica la receta directamente (recipe_id) o el producto terminado
// (product_id), en cuyo caso se usa su receta activa más reciente.
type CreateProductionOrderRequest struct {
	RecipeID          string          `json:"recipe_id" validate:"omitempty,uuid4"`
	ProductID         string          `json:"product_id" validate:"omitempty,uuid4"`
	WarehouseID       string          `json:"warehouse_id" validate:"required,uuid4"`
	QuantityToProduce decimal.Decimal `json:"quantity_to_produce" validate:"required"`
}

// ProductionOrderResponse orden de producción persistida.
type ProductionOrderResponse struct {
	ID                string          `json:"id"`
	Series            string          `json:"series"`
	Year              int             `json:"year"`
	Number            int64           `json:"number"`
	RecipeID          string          `json:"recipe_id"`
	WarehouseID       string          `json:"warehouse_id"`
	QuantityToProduce decimal.Decimal `json:"quantity_to_produce"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	StartedAt         *time.Time      `json:"started_at,omitempty"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}
