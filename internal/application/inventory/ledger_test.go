package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpro/stock-ledger-api/internal/application/apptest"
	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/domain"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newLedger(store *apptest.Store) *inventory.Ledger {
	repos := apptest.ReposFor(store)
	return inventory.NewLedger(apptest.NewTxRunner(store), repos.Movements, repos.Stock, repos.Products, repos.Warehouses)
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func seedBase(store *apptest.Store) {
	store.SeedProduct("prod-1", "Tornillo")
	store.SeedWarehouse("wh-1", "Principal")
	store.SeedWarehouse("wh-2", "Secundaria")
}

// reconciliado verifica el invariante: proyección = suma firmada de movimientos.
func reconciliado(t *testing.T, store *apptest.Store, productID string) {
	t.Helper()
	total := decimal.Zero
	for _, wh := range []string{"wh-1", "wh-2"} {
		total = total.Add(store.StockQty(productID, wh))
	}
	assert.True(t, total.Equal(store.MovementSum(productID)),
		"proyección %s != suma de movimientos %s", total, store.MovementSum(productID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Increase / Decrease
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_IncreaseAgregaMovimientoYProyeccion(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	l := newLedger(store)

	err := apptest.NewTxRunner(store).Run(context.Background(), func(r inventory.Repos) error {
		return l.IncreaseInTx(r, inventory.MovementInput{
			ProductID: "prod-1", WarehouseID: "wh-1", Quantity: dec(100),
			DocumentType: entity.DocGoodsReceipt, Actor: "user-1", Now: time.Now(),
		})
	})
	require.NoError(t, err)

	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(100)))
	movs := store.MovementsFor("prod-1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementIN, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec(100)))
	reconciliado(t, store, "prod-1")
}

func TestLedger_DecreaseConStockSuficiente(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	store.SetStock("prod-1", "wh-1", dec(50))
	l := newLedger(store)

	err := apptest.NewTxRunner(store).Run(context.Background(), func(r inventory.Repos) error {
		return l.DecreaseInTx(r, inventory.MovementInput{
			ProductID: "prod-1", WarehouseID: "wh-1", Quantity: dec(30),
			DocumentType: entity.DocInvoice, Actor: "user-1", Now: time.Now(),
		})
	})
	require.NoError(t, err)

	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(20)))
	movs := store.MovementsFor("prod-1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementOUT, movs[0].Type)
	// Cantidad firmada: salida negativa
	assert.True(t, movs[0].Quantity.Equal(dec(-30)))
}

// Dos Decrease concurrentes no pueden exceder lo disponible: con la fila
// bloqueada, el segundo ve el stock ya descontado y falla.
func TestLedger_DecreaseInsuficienteNoTocaNada(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	store.SetStock("prod-1", "wh-1", dec(10))
	l := newLedger(store)

	err := apptest.NewTxRunner(store).Run(context.Background(), func(r inventory.Repos) error {
		return l.DecreaseInTx(r, inventory.MovementInput{
			ProductID: "prod-1", WarehouseID: "wh-1", Quantity: dec(11),
			DocumentType: entity.DocInvoice, Actor: "user-1", Now: time.Now(),
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var faltante *domain.InsufficientStockError
	require.True(t, errors.As(err, &faltante))
	assert.True(t, faltante.Required.Equal(dec(11)))
	assert.True(t, faltante.Available.Equal(dec(10)))

	// Rollback: ni movimiento ni cambio de proyección
	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(10)))
	assert.Empty(t, store.MovementsFor("prod-1"))
}

func TestLedger_CantidadNoPositivaRechazada(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	l := newLedger(store)

	err := apptest.NewTxRunner(store).Run(context.Background(), func(r inventory.Repos) error {
		return l.IncreaseInTx(r, inventory.MovementInput{
			ProductID: "prod-1", WarehouseID: "wh-1", Quantity: dec(0),
			DocumentType: entity.DocGoodsReceipt, Now: time.Now(),
		})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

// Conservación de masa: la suma del producto entre bodegas no cambia.
func TestLedger_TransferConservaElTotal(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	store.SetStock("prod-1", "wh-1", dec(40))
	l := newLedger(store)

	err := l.TransferStock(context.Background(), inventory.TransferInput{
		ProductID: "prod-1", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2",
		Quantity: dec(15), Actor: "user-1",
	})
	require.NoError(t, err)

	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(25)))
	assert.True(t, store.StockQty("prod-1", "wh-2").Equal(dec(15)))

	movs := store.MovementsFor("prod-1")
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTRANSFER, movs[0].Type)
	assert.True(t, movs[0].Quantity.Add(movs[1].Quantity).IsZero(), "los dos movimientos deben sumar cero")
}

func TestLedger_TransferSinStockFalla(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	store.SetStock("prod-1", "wh-1", dec(5))
	l := newLedger(store)

	err := l.TransferStock(context.Background(), inventory.TransferInput{
		ProductID: "prod-1", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2",
		Quantity: dec(6), Actor: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(5)))
	assert.True(t, store.StockQty("prod-1", "wh-2").IsZero())
	assert.Empty(t, store.MovementsFor("prod-1"))
}

func TestLedger_TransferMismaBodegaRechazado(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	l := newLedger(store)

	err := l.TransferStock(context.Background(), inventory.TransferInput{
		ProductID: "prod-1", FromWarehouseID: "wh-1", ToWarehouseID: "wh-1",
		Quantity: dec(1), Actor: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustTo
// ──────────────────────────────────────────────────────────────────────────────

// AdjustTo(7) con cantidad 12 debe producir exactamente un ADJUSTMENT de −5.
func TestLedger_AdjustToDeltaNegativo(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	store.SetStock("prod-1", "wh-1", dec(12))
	l := newLedger(store)

	err := l.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: "prod-1", WarehouseID: "wh-1", NewQuantity: dec(7),
		Notes: "conteo físico", Actor: "user-1",
	})
	require.NoError(t, err)

	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(7)))
	movs := store.MovementsFor("prod-1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementADJUSTMENT, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec(-5)))
}

func TestLedger_AdjustToSinDeltaNoEscribeNada(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	store.SetStock("prod-1", "wh-1", dec(9))
	l := newLedger(store)

	err := l.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: "prod-1", WarehouseID: "wh-1", NewQuantity: dec(9), Actor: "user-1",
	})
	require.NoError(t, err)
	assert.Empty(t, store.MovementsFor("prod-1"))
}

func TestLedger_AdjustToNegativoRechazado(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	l := newLedger(store)

	err := l.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: "prod-1", WarehouseID: "wh-1", NewQuantity: dec(-1), Actor: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación tras una secuencia mixta de operaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ReconciliacionTrasSecuencia(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	l := newLedger(store)
	ctx := context.Background()
	runner := apptest.NewTxRunner(store)

	require.NoError(t, runner.Run(ctx, func(r inventory.Repos) error {
		return l.IncreaseInTx(r, inventory.MovementInput{
			ProductID: "prod-1", WarehouseID: "wh-1", Quantity: dec(100),
			DocumentType: entity.DocGoodsReceipt, Now: time.Now(),
		})
	}))
	require.NoError(t, runner.Run(ctx, func(r inventory.Repos) error {
		return l.DecreaseInTx(r, inventory.MovementInput{
			ProductID: "prod-1", WarehouseID: "wh-1", Quantity: dec(37),
			DocumentType: entity.DocInvoice, Now: time.Now(),
		})
	}))
	require.NoError(t, l.TransferStock(ctx, inventory.TransferInput{
		ProductID: "prod-1", FromWarehouseID: "wh-1", ToWarehouseID: "wh-2", Quantity: dec(20),
	}))
	require.NoError(t, l.AdjustStock(ctx, inventory.AdjustInput{
		ProductID: "prod-1", WarehouseID: "wh-2", NewQuantity: dec(5),
	}))

	reconciliado(t, store, "prod-1")
	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(43)))
	assert.True(t, store.StockQty("prod-1", "wh-2").Equal(dec(5)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_GetMovementsByDateRangeRechazaRangoInvertido(t *testing.T) {
	store := apptest.NewStore()
	seedBase(store)
	l := newLedger(store)

	now := time.Now()
	_, err := l.GetMovementsByDateRange(context.Background(), now, now.Add(-time.Hour), 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_GetProductMovementsProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	l := newLedger(store)

	_, err := l.GetProductMovements(context.Background(), "prod-x", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
