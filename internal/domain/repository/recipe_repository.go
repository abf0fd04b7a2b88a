package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// RecipeRepository puerto de lectura de recetas, con los ingredientes cargados
// en orden de posición. GetByProduct resuelve la receta activa más reciente
// del producto terminado.
type RecipeRepository interface {
	GetByID(id string) (*entity.Recipe, error)
	GetByProduct(productID string) (*entity.Recipe, error)
}
