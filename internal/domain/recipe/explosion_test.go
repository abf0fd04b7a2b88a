package recipe_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpro/stock-ledger-api/internal/domain"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/recipe"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func recetaPan() *entity.Recipe {
	return &entity.Recipe{
		ID:        "rec-1",
		ProductID: "prod-pan",
		Name:      "Pan campesino",
		IsActive:  true,
		Ingredients: []*entity.RecipeIngredient{
			{ID: "i1", RecipeID: "rec-1", ProductID: "prod-harina", QuantityPerUnit: decimal.NewFromInt(5), UnitMeasure: "kg"},
			{ID: "i2", RecipeID: "rec-1", ProductID: "prod-levadura", QuantityPerUnit: decimal.NewFromInt(3), UnitMeasure: "g"},
		},
	}
}

func lookupFijo(stock map[string]decimal.Decimal) recipe.StockLookup {
	return func(productID string) (decimal.Decimal, error) {
		return stock[productID], nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Explode
// ──────────────────────────────────────────────────────────────────────────────

// Multiplicador 2 sobre ingredientes 5 y 3 debe requerir 10 y 6, en orden.
func TestExplode_MultiplicaCantidades(t *testing.T) {
	reqs, err := recipe.Explode(recetaPan(), decimal.NewFromInt(2))
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "prod-harina", reqs[0].ProductID)
	assert.True(t, reqs[0].Required.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "prod-levadura", reqs[1].ProductID)
	assert.True(t, reqs[1].Required.Equal(decimal.NewFromInt(6)))
}

func TestExplode_MultiplicadorFraccionario(t *testing.T) {
	reqs, err := recipe.Explode(recetaPan(), decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	assert.True(t, reqs[0].Required.Equal(decimal.NewFromFloat(2.5)))
}

func TestExplode_RecetaVaciaRechazada(t *testing.T) {
	_, err := recipe.Explode(&entity.Recipe{ID: "rec-x"}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExplode_MultiplicadorNoPositivoRechazado(t *testing.T) {
	_, err := recipe.Explode(recetaPan(), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = recipe.Explode(recetaPan(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckAvailability
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAvailability_TodoAlcanza(t *testing.T) {
	reqs, err := recipe.Explode(recetaPan(), decimal.NewFromInt(2))
	require.NoError(t, err)

	err = recipe.CheckAvailability(reqs, "wh-1", lookupFijo(map[string]decimal.Decimal{
		"prod-harina":   decimal.NewFromInt(10),
		"prod-levadura": decimal.NewFromInt(6),
	}))
	assert.NoError(t, err)
}

// Escenario del motor todo-o-nada: X alcanza (10/10) pero Y no (5/6);
// debe reportar el faltante de Y con requerido y disponible exactos.
func TestCheckAvailability_PrimerFaltanteReportado(t *testing.T) {
	reqs, err := recipe.Explode(recetaPan(), decimal.NewFromInt(2))
	require.NoError(t, err)

	err = recipe.CheckAvailability(reqs, "wh-1", lookupFijo(map[string]decimal.Decimal{
		"prod-harina":   decimal.NewFromInt(10),
		"prod-levadura": decimal.NewFromInt(5),
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var faltante *domain.InsufficientStockError
	require.True(t, errors.As(err, &faltante))
	assert.Equal(t, "prod-levadura", faltante.ProductID)
	assert.True(t, faltante.Required.Equal(decimal.NewFromInt(6)))
	assert.True(t, faltante.Available.Equal(decimal.NewFromInt(5)))
}

// Si varios faltan, se reporta el primero en el orden de la receta.
func TestCheckAvailability_OrdenDeReceta(t *testing.T) {
	reqs, err := recipe.Explode(recetaPan(), decimal.NewFromInt(2))
	require.NoError(t, err)

	err = recipe.CheckAvailability(reqs, "wh-1", lookupFijo(map[string]decimal.Decimal{
		"prod-harina":   decimal.NewFromInt(1),
		"prod-levadura": decimal.Zero,
	}))
	var faltante *domain.InsufficientStockError
	require.True(t, errors.As(err, &faltante))
	assert.Equal(t, "prod-harina", faltante.ProductID)
}
