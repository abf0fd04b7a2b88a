package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo lectura de recetas sobre PostgreSQL (usable con pool o tx).
// Siempre devuelve la receta con sus ingredientes cargados.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByID obtiene una receta por ID con sus ingredientes (nil si no existe).
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `SELECT id, product_id, name, is_active, created_at FROM recipes WHERE id = $1`
	return r.getOne(query, id)
}

// GetByProduct obtiene la receta activa de un producto terminado (nil si no tiene).
func (r *RecipeRepo) GetByProduct(productID string) (*entity.Recipe, error) {
	query := `
		SELECT id, product_id, name, is_active, created_at
		FROM recipes WHERE product_id = $1 AND is_active
		ORDER BY created_at DESC LIMIT 1`
	return r.getOne(query, productID)
}

func (r *RecipeRepo) getOne(query, arg string) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&rec.ID, &rec.ProductID, &rec.Name, &rec.IsActive, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	ingredients, err := r.getIngredients(rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = ingredients
	return &rec, nil
}

func (r *RecipeRepo) getIngredients(recipeID string) ([]*entity.RecipeIngredient, error) {
	query := `
		SELECT id, recipe_id, position, product_id, quantity_per_unit, unit_measure
		FROM recipe_ingredients WHERE recipe_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeIngredient
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Position, &ing.ProductID,
			&ing.QuantityPerUnit, &ing.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}
