package receiving_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpro/stock-ledger-api/internal/application/apptest"
	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/application/receiving"
	"github.com/gestionpro/stock-ledger-api/internal/domain"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const actor = "user-1"

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newUseCase(store *apptest.Store) *receiving.GoodsReceiptUseCase {
	repos := apptest.ReposFor(store)
	ledger := inventory.NewLedger(apptest.NewTxRunner(store), repos.Movements, repos.Stock, repos.Products, repos.Warehouses)
	return receiving.NewGoodsReceiptUseCase(apptest.NewTxRunner(store), ledger,
		repos.Partners, repos.Products, repos.Warehouses, repos.GoodsReceipts)
}

func seedRecepcion(store *apptest.Store) {
	store.SeedPartner("prov-1", "Proveedor Uno")
	store.SeedWarehouse("wh-1", "Principal")
	store.SeedProduct("prod-1", "Harina")
	store.SeedProduct("prod-2", "Levadura")
}

func linea(productID string, qty, price int64) dto.GoodsReceiptItemRequest {
	return dto.GoodsReceiptItemRequest{
		ProductID:   productID,
		WarehouseID: "wh-1",
		Quantity:    dec(qty),
		UnitPrice:   dec(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_IncrementaStockPorLinea(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)

	receipt, err := uc.Create(context.Background(), actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1",
		Items: []dto.GoodsReceiptItemRequest{
			linea("prod-1", 100, 2),
			linea("prod-2", 40, 5),
		},
	})
	require.NoError(t, err)

	assert.True(t, store.StockQty("prod-1", "wh-1").Equal(dec(100)))
	assert.True(t, store.StockQty("prod-2", "wh-1").Equal(dec(40)))

	// Cada línea deja un IN ligado al documento, con precio unitario.
	movs := store.MovementsFor("prod-1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementIN, movs[0].Type)
	assert.Equal(t, entity.DocGoodsReceipt, movs[0].DocumentType)
	require.NotNil(t, movs[0].DocumentID)
	assert.Equal(t, receipt.ID, *movs[0].DocumentID)
	require.NotNil(t, movs[0].UnitPrice)
	assert.True(t, movs[0].UnitPrice.Equal(dec(2)))
}

func TestCreate_TotalDesdeLasLineas(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)

	receipt, err := uc.Create(context.Background(), actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1",
		Items: []dto.GoodsReceiptItemRequest{
			linea("prod-1", 100, 2), // 200
			linea("prod-2", 40, 5),  // 200
		},
	})
	require.NoError(t, err)

	assert.True(t, receipt.TotalAmount.Equal(dec(400)))
	require.Len(t, receipt.Items, 2)
}

func TestCreate_ConsecutivoNIR(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)
	ctx := context.Background()

	first, err := uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1", Items: []dto.GoodsReceiptItemRequest{linea("prod-1", 1, 1)},
	})
	require.NoError(t, err)
	second, err := uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1", Items: []dto.GoodsReceiptItemRequest{linea("prod-1", 1, 1)},
	})
	require.NoError(t, err)

	assert.Equal(t, "NIR", first.Series)
	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, "NIR", second.Series)
	assert.Equal(t, int64(2), second.Number)
}

// El consecutivo reinicia en 1 cada año y el documento lleva el año del
// contador: NIR-1 de 2027 convive con NIR-1 de 2026 porque la identidad
// completa es (serie, año, número).
func TestCreate_ConsecutivoReiniciaPorAnio(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)
	ctx := context.Background()

	diciembre := time.Date(2026, 12, 30, 10, 0, 0, 0, time.UTC)
	enero := time.Date(2027, 1, 2, 10, 0, 0, 0, time.UTC)

	first, err := uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1", ReceiptDate: &diciembre,
		Items: []dto.GoodsReceiptItemRequest{linea("prod-1", 1, 1)},
	})
	require.NoError(t, err)
	second, err := uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1", ReceiptDate: &enero,
		Items: []dto.GoodsReceiptItemRequest{linea("prod-1", 1, 1)},
	})
	require.NoError(t, err)

	assert.Equal(t, first.Series, second.Series)
	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, 2026, first.Year)
	assert.Equal(t, int64(1), second.Number)
	assert.Equal(t, 2027, second.Year)
}

// Las líneas se leen en el orden en que llegaron, numeradas 1..n.
func TestGetByID_LineasEnOrdenDeLlegada(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1",
		Items: []dto.GoodsReceiptItemRequest{
			linea("prod-2", 40, 5),
			linea("prod-1", 100, 2),
		},
	})
	require.NoError(t, err)

	receipt, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, 1, receipt.Items[0].Position)
	assert.Equal(t, "prod-2", receipt.Items[0].ProductID)
	assert.Equal(t, 2, receipt.Items[1].Position)
	assert.Equal(t, "prod-1", receipt.Items[1].ProductID)
}

func TestCreate_SerieExplicita(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)

	receipt, err := uc.Create(context.Background(), actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1",
		Series:     "NIR-B",
		Items:      []dto.GoodsReceiptItemRequest{linea("prod-1", 1, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "NIR-B", receipt.Series)
	assert.Equal(t, int64(1), receipt.Number)
}

func TestCreate_Validaciones(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)
	ctx := context.Background()

	// Proveedor inexistente
	_, err := uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-x", Items: []dto.GoodsReceiptItemRequest{linea("prod-1", 1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin líneas
	_, err = uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{SupplierID: "prov-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva
	_, err = uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1", Items: []dto.GoodsReceiptItemRequest{linea("prod-1", 0, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Precio no positivo
	_, err = uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1", Items: []dto.GoodsReceiptItemRequest{linea("prod-1", 1, 0)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto inexistente
	_, err = uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1", Items: []dto.GoodsReceiptItemRequest{linea("prod-x", 1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada se persistió ni se movió stock
	require.Empty(t, store.Receipts)
	require.Empty(t, store.Movements)
	require.Empty(t, store.Sequences)
}

func TestGetByID_IncluyeLineas(t *testing.T) {
	store := apptest.NewStore()
	seedRecepcion(store)
	uc := newUseCase(store)
	ctx := context.Background()

	created, err := uc.Create(ctx, actor, dto.CreateGoodsReceiptRequest{
		SupplierID: "prov-1",
		Items:      []dto.GoodsReceiptItemRequest{linea("prod-1", 10, 3), linea("prod-2", 5, 7)},
	})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Series, got.Series)
	assert.Equal(t, created.Number, got.Number)
	require.Len(t, got.Items, 2)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
