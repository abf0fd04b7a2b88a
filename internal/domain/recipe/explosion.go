// Package recipe implementa la explosión de recetas: dado un multiplicador de
// producción, calcula las cantidades requeridas de cada materia prima y valida
// disponibilidad. Sin efectos secundarios; lo usa el workflow de producción.
package recipe

import (
	"github.com/shopspring/decimal"

	"github.com/gestionpro/stock-ledger-api/internal/domain"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// Requirement cantidad requerida de una materia prima para la orden completa.
type Requirement struct {
	ProductID string
	Required  decimal.Decimal
}

// StockLookup resuelve la cantidad disponible de un producto en la bodega de la orden.
type StockLookup func(productID string) (decimal.Decimal, error)

// Explode calcula required = cantidadPorUnidad × multiplicador para cada
// ingrediente, preservando el orden de la receta.
func Explode(r *entity.Recipe, multiplier decimal.Decimal) ([]Requirement, error) {
	if r == nil || len(r.Ingredients) == 0 {
		return nil, domain.NewValidation("recipe", "sin ingredientes")
	}
	if !multiplier.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidation("quantity_to_produce", "debe ser positiva")
	}
	reqs := make([]Requirement, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if !ing.QuantityPerUnit.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidation("quantity_per_unit", "debe ser positiva")
		}
		reqs = append(reqs, Requirement{
			ProductID: ing.ProductID,
			Required:  ing.QuantityPerUnit.Mul(multiplier),
		})
	}
	return reqs, nil
}

// CheckAvailability verifica TODOS los ingredientes antes de mutar nada.
// Devuelve nil si todo alcanza, o InsufficientStockError con el primer faltante
// (check-then-commit todo-o-nada, no decrementos independientes).
func CheckAvailability(reqs []Requirement, warehouseID string, lookup StockLookup) error {
	for _, req := range reqs {
		available, err := lookup(req.ProductID)
		if err != nil {
			return err
		}
		if available.LessThan(req.Required) {
			return domain.NewInsufficientStock(req.ProductID, warehouseID, req.Required, available)
		}
	}
	return nil
}
