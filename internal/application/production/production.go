// Package production implementa las órdenes de producción: consumen materias
// primas según la receta y producen el terminado, todo-o-nada.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/application/sequence"
	"github.com/gestionpro/stock-ledger-api/internal/domain"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/recipe"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

// ProductionUseCase máquina de estados pending → in_progress → {completed, cancelled}.
type ProductionUseCase struct {
	txRunner      inventory.TxRunner
	ledger        *inventory.Ledger
	recipeRepo    repository.RecipeRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.ProductionOrderRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	recipeRepo repository.RecipeRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.ProductionOrderRepository,
) *ProductionUseCase {
	return &ProductionUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		recipeRepo:    recipeRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
	}
}

// Create persiste la orden en pending con su consecutivo. Sin efecto de stock.
// La receta llega explícita (recipe_id) o se resuelve desde el producto
// terminado (product_id → receta activa más reciente).
func (uc *ProductionUseCase) Create(ctx context.Context, actor string, in dto.CreateProductionOrderRequest) (*entity.ProductionOrder, error) {
	rec, err := uc.resolveRecipe(in)
	if err != nil {
		return nil, err
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.NewValidation("warehouse_id", "bodega inexistente")
	}
	if !in.QuantityToProduce.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidation("quantity_to_produce", "debe ser positiva")
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:                uuid.New().String(),
		RecipeID:          rec.ID,
		WarehouseID:       in.WarehouseID,
		QuantityToProduce: in.QuantityToProduce,
		Status:            entity.ProductionPending,
		CreatedBy:         actor,
		CreatedAt:         now,
	}
	err = uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		series, number, year, err := sequence.NextNumber(r.Sequences, "", entity.DocProduction, now)
		if err != nil {
			return err
		}
		order.Series = series
		order.Number = number
		order.Year = year
		return r.ProductionOrders.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// resolveRecipe carga la receta por ID o, en su defecto, la activa más
// reciente del producto terminado.
func (uc *ProductionUseCase) resolveRecipe(in dto.CreateProductionOrderRequest) (*entity.Recipe, error) {
	if in.RecipeID != "" {
		rec, err := uc.recipeRepo.GetByID(in.RecipeID)
		if err != nil {
			return nil, err
		}
		if rec == nil || !rec.IsActive {
			return nil, domain.NewValidation("recipe_id", "receta inexistente o inactiva")
		}
		return rec, nil
	}
	if in.ProductID == "" {
		return nil, domain.NewValidation("recipe_id", "se requiere recipe_id o product_id")
	}
	rec, err := uc.recipeRepo.GetByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NewValidation("product_id", "el producto no tiene receta activa")
	}
	return rec, nil
}

// Process ejecuta una orden pending: explota la receta, verifica TODOS los
// ingredientes contra las filas bloqueadas y, solo si todo alcanza, descuenta
// cada materia prima y suma el terminado, marcando la orden completed — una
// sola transacción. El primer faltante aborta sin tocar stock alguno.
func (uc *ProductionUseCase) Process(ctx context.Context, actor, orderID string) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		var err error
		order, err = r.ProductionOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.ProductionPending {
			return domain.NewStateConflict("production_order", order.ID, string(order.Status), string(entity.ProductionCompleted))
		}
		rec, err := r.Recipes.GetByID(order.RecipeID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		order.Status = entity.ProductionInProgress
		order.StartedAt = &now

		reqs, err := recipe.Explode(rec, order.QuantityToProduce)
		if err != nil {
			return err
		}
		// Disponibilidad leída bajo FOR UPDATE: el check y el consumo quedan
		// serializados por el candado de fila frente a emisores concurrentes.
		if err := recipe.CheckAvailability(reqs, order.WarehouseID, func(productID string) (decimal.Decimal, error) {
			stock, err := r.Stock.GetForUpdate(productID, order.WarehouseID)
			if err != nil {
				return decimal.Zero, err
			}
			return stock.Quantity, nil
		}); err != nil {
			return err
		}

		note := fmt.Sprintf("orden de producción %s-%d", order.Series, order.Number)
		for _, req := range reqs {
			if err := uc.ledger.DecreaseInTx(r, inventory.MovementInput{
				ProductID:    req.ProductID,
				WarehouseID:  order.WarehouseID,
				Quantity:     req.Required,
				DocumentType: entity.DocProduction,
				DocumentID:   &order.ID,
				Notes:        note,
				Actor:        actor,
				Now:          now,
			}); err != nil {
				return err
			}
		}
		if err := uc.ledger.IncreaseInTx(r, inventory.MovementInput{
			ProductID:    rec.ProductID,
			WarehouseID:  order.WarehouseID,
			Quantity:     order.QuantityToProduce,
			DocumentType: entity.DocProduction,
			DocumentID:   &order.ID,
			Notes:        note,
			Actor:        actor,
			Now:          now,
		}); err != nil {
			return err
		}

		order.Status = entity.ProductionCompleted
		order.CompletedAt = &now
		return r.ProductionOrders.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel anula una orden pending: cambio de estado puro, sin efecto de ledger.
// Una completed no se anula (la reversión exigiría un ajuste compensatorio).
func (uc *ProductionUseCase) Cancel(ctx context.Context, orderID string) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		var err error
		order, err = r.ProductionOrders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.ProductionPending {
			return domain.NewStateConflict("production_order", order.ID, string(order.Status), string(entity.ProductionCancelled))
		}
		order.Status = entity.ProductionCancelled
		return r.ProductionOrders.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID lee una orden de producción.
func (uc *ProductionUseCase) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}
