package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el bundle de repositorios atados
// a esa tx y hace Commit o Rollback. Los SELECT FOR UPDATE del ledger y los
// escritos de documentos quedan así en una sola unidad atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.Repos{
		Movements:        NewStockMovementRepository(tx),
		Stock:            NewStockRepository(tx),
		Products:         NewProductRepository(tx),
		Partners:         NewPartnerRepository(tx),
		Warehouses:       NewWarehouseRepository(tx),
		Invoices:         NewInvoiceRepository(tx),
		GoodsReceipts:    NewGoodsReceiptRepository(tx),
		Sequences:        NewDocumentSequenceRepository(tx),
		Recipes:          NewRecipeRepository(tx),
		ProductionOrders: NewProductionOrderRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PoolRepos devuelve el bundle de repositorios atados al pool (lecturas sueltas,
// fuera de transacción).
func PoolRepos(pool *pgxpool.Pool) inventory.Repos {
	return inventory.Repos{
		Movements:        NewStockMovementRepository(pool),
		Stock:            NewStockRepository(pool),
		Products:         NewProductRepository(pool),
		Partners:         NewPartnerRepository(pool),
		Warehouses:       NewWarehouseRepository(pool),
		Invoices:         NewInvoiceRepository(pool),
		GoodsReceipts:    NewGoodsReceiptRepository(pool),
		Sequences:        NewDocumentSequenceRepository(pool),
		Recipes:          NewRecipeRepository(pool),
		ProductionOrders: NewProductionOrderRepository(pool),
	}
}
