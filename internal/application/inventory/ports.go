package inventory

import (
	"context"

	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
// Todo workflow de documento recibe el bundle completo: el que no use un
// repositorio simplemente lo ignora.
type Repos struct {
	Movements        repository.StockMovementRepository
	Stock            repository.StockRepository
	Products         repository.ProductRepository
	Partners         repository.PartnerRepository
	Warehouses       repository.WarehouseRepository
	Invoices         repository.InvoiceRepository
	GoodsReceipts    repository.GoodsReceiptRepository
	Sequences        repository.DocumentSequenceRepository
	Recipes          repository.RecipeRepository
	ProductionOrders repository.ProductionOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Commit si fn retorna nil; Rollback en cualquier otro caso.
// Garantiza la atomicidad de efectos de ledger + documento en una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
