package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador de órdenes de producción. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const productionOrderColumns = `id, series, year, number, recipe_id, warehouse_id, quantity_to_produce, status, created_by, created_at, started_at, completed_at`

// Create persiste una orden de producción.
func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (` + productionOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Series, order.Year, order.Number, order.RecipeID, order.WarehouseID,
		order.QuantityToProduce, order.Status, order.CreatedBy, order.CreatedAt,
		order.StartedAt, order.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("create production order: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene una orden por ID (nil si no existe).
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate bloquea la orden (SELECT FOR UPDATE): dos procesamientos
// concurrentes de la misma orden se serializan aquí y el segundo ve el estado final.
func (r *ProductionOrderRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + productionOrderColumns + ` FROM production_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ProductionOrderRepo) scanOne(query, id string) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Series, &o.Year, &o.Number, &o.RecipeID, &o.WarehouseID,
		&o.QuantityToProduce, &o.Status, &o.CreatedBy, &o.CreatedAt,
		&o.StartedAt, &o.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// Update actualiza estado y marcas de tiempo de la orden.
func (r *ProductionOrderRepo) Update(order *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders
		SET status = $2, started_at = $3, completed_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.StartedAt, order.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update production order: orden %s no existe", order.ID)
	}
	return nil
}
