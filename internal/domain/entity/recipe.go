package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa la receta de un producto terminado: la lista ordenada de
// materias primas con su cantidad por unidad producida.
type Recipe struct {
	ID        string
	ProductID string // producto terminado
	Name      string
	IsActive  bool
	CreatedAt time.Time

	Ingredients []*RecipeIngredient
}

// RecipeIngredient línea de una receta. Position (1..n) define el orden de la
// lista: la explosión y el reporte de faltantes lo recorren en ese orden.
type RecipeIngredient struct {
	ID              string
	RecipeID        string
	Position        int
	ProductID       string // materia prima
	QuantityPerUnit decimal.Decimal
	UnitMeasure     string
}
