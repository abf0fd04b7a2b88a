package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionpro/stock-ledger-api/internal/domain"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

// Ledger es el dueño del invariante "cantidad actual = suma firmada de movimientos".
// Toda mutación bloquea la fila de stock (SELECT FOR UPDATE), actualiza la
// proyección y agrega el movimiento en la misma transacción. Los workflows de
// documentos usan las primitivas *InTx dentro de su propia transacción; las
// operaciones públicas (Transfer/Adjust) abren la suya.
type Ledger struct {
	txRunner      TxRunner
	movRepo       repository.StockMovementRepository
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLedger construye el ledger con los repositorios de lectura (pool) y el runner transaccional.
func NewLedger(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *Ledger {
	return &Ledger{
		txRunner:      txRunner,
		movRepo:       movRepo,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementInput entrada para Increase/Decrease. Quantity siempre positiva;
// el signo lo decide la primitiva.
type MovementInput struct {
	ProductID    string
	WarehouseID  string
	Quantity     decimal.Decimal
	DocumentType entity.DocumentType
	DocumentID   *string
	UnitPrice    *decimal.Decimal
	BatchNumber  *string
	Notes        string
	Actor        string
	Now          time.Time
}

// TransferInput entrada para Transfer.
type TransferInput struct {
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Notes           string
	Actor           string
	Now             time.Time
}

// AdjustInput entrada para AdjustTo. NewQuantity redefine la cantidad (>= 0).
type AdjustInput struct {
	ProductID   string
	WarehouseID string
	NewQuantity decimal.Decimal
	Notes       string
	Actor       string
	Now         time.Time
}

// IncreaseInTx agrega un movimiento IN y suma la cantidad a la proyección,
// dentro de la transacción del caller. Siempre procede si el producto existe.
func (l *Ledger) IncreaseInTx(r Repos, in MovementInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.NewValidation("quantity", "debe ser positiva")
	}
	stock, err := r.Stock.GetForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}
	stock.Quantity = stock.Quantity.Add(in.Quantity)
	stock.UpdatedAt = in.Now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}
	if err := r.Products.AddQuantity(in.ProductID, in.Quantity); err != nil {
		return err
	}
	return r.Movements.Create(&entity.StockMovement{
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		Type:         entity.MovementIN,
		DocumentType: in.DocumentType,
		DocumentID:   in.DocumentID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		BatchNumber:  in.BatchNumber,
		Notes:        in.Notes,
		CreatedBy:    in.Actor,
		CreatedAt:    in.Now,
	})
}

// DecreaseInTx agrega un movimiento OUT (cantidad firmada negativa) y resta de
// la proyección. Falla con InsufficientStock si la cantidad bloqueada no alcanza;
// un documento jamás deja stock negativo.
func (l *Ledger) DecreaseInTx(r Repos, in MovementInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.NewValidation("quantity", "debe ser positiva")
	}
	stock, err := r.Stock.GetForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(in.Quantity) {
		return domain.NewInsufficientStock(in.ProductID, in.WarehouseID, in.Quantity, stock.Quantity)
	}
	stock.Quantity = stock.Quantity.Sub(in.Quantity)
	stock.UpdatedAt = in.Now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}
	if err := r.Products.AddQuantity(in.ProductID, in.Quantity.Neg()); err != nil {
		return err
	}
	return r.Movements.Create(&entity.StockMovement{
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		Type:         entity.MovementOUT,
		DocumentType: in.DocumentType,
		DocumentID:   in.DocumentID,
		Quantity:     in.Quantity.Neg(),
		UnitPrice:    in.UnitPrice,
		BatchNumber:  in.BatchNumber,
		Notes:        in.Notes,
		CreatedBy:    in.Actor,
		CreatedAt:    in.Now,
	})
}

// TransferInTx resta en la bodega origen y suma en la destino como una sola
// unidad: dos movimientos TRANSFER (−q, +q) en la misma transacción. La
// cantidad total del producto no cambia (conservación de masa).
func (l *Ledger) TransferInTx(r Repos, in TransferInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.NewValidation("quantity", "debe ser positiva")
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return domain.NewValidation("to_warehouse_id", "debe diferir de la bodega origen")
	}
	origin, err := r.Stock.GetForUpdate(in.ProductID, in.FromWarehouseID)
	if err != nil {
		return err
	}
	if origin.Quantity.LessThan(in.Quantity) {
		return domain.NewInsufficientStock(in.ProductID, in.FromWarehouseID, in.Quantity, origin.Quantity)
	}
	dest, err := r.Stock.GetForUpdate(in.ProductID, in.ToWarehouseID)
	if err != nil {
		return err
	}
	origin.Quantity = origin.Quantity.Sub(in.Quantity)
	origin.UpdatedAt = in.Now
	dest.Quantity = dest.Quantity.Add(in.Quantity)
	dest.UpdatedAt = in.Now
	if err := r.Stock.Upsert(origin); err != nil {
		return err
	}
	if err := r.Stock.Upsert(dest); err != nil {
		return err
	}
	outMov := &entity.StockMovement{
		ProductID:    in.ProductID,
		WarehouseID:  in.FromWarehouseID,
		Type:         entity.MovementTRANSFER,
		DocumentType: entity.DocTransfer,
		Quantity:     in.Quantity.Neg(),
		Notes:        in.Notes,
		CreatedBy:    in.Actor,
		CreatedAt:    in.Now,
	}
	if err := r.Movements.Create(outMov); err != nil {
		return err
	}
	inMov := &entity.StockMovement{
		ProductID:    in.ProductID,
		WarehouseID:  in.ToWarehouseID,
		Type:         entity.MovementTRANSFER,
		DocumentType: entity.DocTransfer,
		Quantity:     in.Quantity,
		Notes:        in.Notes,
		CreatedBy:    in.Actor,
		CreatedAt:    in.Now,
	}
	return r.Movements.Create(inMov)
}

// AdjustToInTx redefine la cantidad de la bodega a NewQuantity: calcula el
// delta contra la fila bloqueada y agrega UN movimiento ADJUSTMENT con el delta
// firmado (único caso donde el signo puede ser negativo sin pasar por Decrease).
// Si el delta es cero no se escribe nada.
func (l *Ledger) AdjustToInTx(r Repos, in AdjustInput) error {
	if in.NewQuantity.LessThan(decimal.Zero) {
		return domain.NewValidation("new_quantity", "no puede ser negativa")
	}
	stock, err := r.Stock.GetForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return err
	}
	delta := in.NewQuantity.Sub(stock.Quantity)
	if delta.IsZero() {
		return nil
	}
	stock.Quantity = in.NewQuantity
	stock.UpdatedAt = in.Now
	if err := r.Stock.Upsert(stock); err != nil {
		return err
	}
	if err := r.Products.AddQuantity(in.ProductID, delta); err != nil {
		return err
	}
	return r.Movements.Create(&entity.StockMovement{
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		Type:         entity.MovementADJUSTMENT,
		DocumentType: entity.DocAdjustment,
		Quantity:     delta,
		Notes:        in.Notes,
		CreatedBy:    in.Actor,
		CreatedAt:    in.Now,
	})
}

// TransferStock workflow público de traslado: valida, abre su propia
// transacción y ejecuta TransferInTx.
func (l *Ledger) TransferStock(ctx context.Context, in TransferInput) error {
	if err := l.requireProduct(in.ProductID); err != nil {
		return err
	}
	if err := l.requireWarehouse(in.FromWarehouseID); err != nil {
		return err
	}
	if err := l.requireWarehouse(in.ToWarehouseID); err != nil {
		return err
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	return l.txRunner.Run(ctx, func(r Repos) error {
		return l.TransferInTx(r, in)
	})
}

// AdjustStock workflow público de ajuste: valida, abre su propia transacción
// y ejecuta AdjustToInTx.
func (l *Ledger) AdjustStock(ctx context.Context, in AdjustInput) error {
	if err := l.requireProduct(in.ProductID); err != nil {
		return err
	}
	if err := l.requireWarehouse(in.WarehouseID); err != nil {
		return err
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	return l.txRunner.Run(ctx, func(r Repos) error {
		return l.AdjustToInTx(r, in)
	})
}

// GetProductMovements historial de un producto, más recientes primero.
func (l *Ledger) GetProductMovements(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	if err := l.requireProduct(productID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return l.movRepo.ListByProduct(productID, limit)
}

// GetMovementsByDateRange historial global por rango de fechas, más recientes primero.
func (l *Ledger) GetMovementsByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if to.Before(from) {
		return nil, domain.NewValidation("to", "anterior al inicio del rango")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return l.movRepo.ListByDateRange(from, to, limit, offset)
}

// GetDocumentMovements movimientos originados por un documento, en orden de
// aplicación. Emisión y anulación de una misma factura comparten DocumentID,
// así que aquí aparecen juntas.
func (l *Ledger) GetDocumentMovements(ctx context.Context, docType entity.DocumentType, documentID string) ([]*entity.StockMovement, error) {
	if !docType.Valid() {
		return nil, domain.NewValidation("type", "tipo de documento desconocido")
	}
	if documentID == "" {
		return nil, domain.NewValidation("id", "requerido")
	}
	return l.movRepo.ListByDocument(docType, documentID)
}

// GetStock cantidad actual de un producto en una bodega.
func (l *Ledger) GetStock(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	if err := l.requireProduct(productID); err != nil {
		return nil, err
	}
	return l.stockRepo.Get(productID, warehouseID)
}

func (l *Ledger) requireProduct(id string) error {
	if id == "" {
		return domain.NewValidation("product_id", "requerido")
	}
	p, err := l.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (l *Ledger) requireWarehouse(id string) error {
	if id == "" {
		return domain.NewValidation("warehouse_id", "requerido")
	}
	w, err := l.warehouseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	return nil
}
