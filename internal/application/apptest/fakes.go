// Package apptest provee repositorios en memoria y un TxRunner con semántica
// de rollback para probar los workflows sin base de datos.
package apptest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// Store estado compartido de los fakes. Las operaciones copian entidades al
// entrar y salir, de modo que clone() + swap basta para simular commit/rollback.
type Store struct {
	Products     map[string]*entity.Product
	Warehouses   map[string]*entity.Warehouse
	Partners     map[string]*entity.Partner
	Stocks       map[string]*entity.Stock // clave productID|warehouseID
	Movements    []*entity.StockMovement
	Sequences    map[string]int64 // clave series|tipo|año
	Invoices     map[string]*entity.Invoice
	InvoiceItems map[string][]*entity.InvoiceItem
	Receipts     map[string]*entity.GoodsReceipt
	ReceiptItems map[string][]*entity.GoodsReceiptItem
	Recipes      map[string]*entity.Recipe
	Orders       map[string]*entity.ProductionOrder
}

// NewStore construye un estado vacío.
func NewStore() *Store {
	return &Store{
		Products:     map[string]*entity.Product{},
		Warehouses:   map[string]*entity.Warehouse{},
		Partners:     map[string]*entity.Partner{},
		Stocks:       map[string]*entity.Stock{},
		Sequences:    map[string]int64{},
		Invoices:     map[string]*entity.Invoice{},
		InvoiceItems: map[string][]*entity.InvoiceItem{},
		Receipts:     map[string]*entity.GoodsReceipt{},
		ReceiptItems: map[string][]*entity.GoodsReceiptItem{},
		Recipes:      map[string]*entity.Recipe{},
		Orders:       map[string]*entity.ProductionOrder{},
	}
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func seqKey(series string, docType entity.DocumentType, year int) string {
	return fmt.Sprintf("%s|%s|%d", series, docType, year)
}

// clone copia los contenedores; las entidades almacenadas nunca se mutan en
// sitio (los repos guardan/devuelven copias), así que la copia es suficiente.
func (s *Store) clone() *Store {
	c := NewStore()
	for k, v := range s.Products {
		c.Products[k] = v
	}
	for k, v := range s.Warehouses {
		c.Warehouses[k] = v
	}
	for k, v := range s.Partners {
		c.Partners[k] = v
	}
	for k, v := range s.Stocks {
		c.Stocks[k] = v
	}
	c.Movements = append(c.Movements, s.Movements...)
	for k, v := range s.Sequences {
		c.Sequences[k] = v
	}
	for k, v := range s.Invoices {
		c.Invoices[k] = v
	}
	for k, v := range s.InvoiceItems {
		c.InvoiceItems[k] = append([]*entity.InvoiceItem(nil), v...)
	}
	for k, v := range s.Receipts {
		c.Receipts[k] = v
	}
	for k, v := range s.ReceiptItems {
		c.ReceiptItems[k] = append([]*entity.GoodsReceiptItem(nil), v...)
	}
	for k, v := range s.Recipes {
		c.Recipes[k] = v
	}
	for k, v := range s.Orders {
		c.Orders[k] = v
	}
	return c
}

// ── Helpers de seed/consulta ─────────────────────────────────────────────────

// SeedProduct registra un producto.
func (s *Store) SeedProduct(id, name string) *entity.Product {
	p := &entity.Product{ID: id, SKU: id, Name: name, Price: decimal.NewFromInt(10), UnitMeasure: "und", CreatedAt: time.Now()}
	s.Products[id] = p
	return p
}

// SeedWarehouse registra una bodega.
func (s *Store) SeedWarehouse(id, name string) *entity.Warehouse {
	w := &entity.Warehouse{ID: id, Code: id, Name: name, IsActive: true, CreatedAt: time.Now()}
	s.Warehouses[id] = w
	return w
}

// SeedPartner registra un tercero activo.
func (s *Store) SeedPartner(id, name string) *entity.Partner {
	p := &entity.Partner{ID: id, Name: name, IsActive: true, CreatedAt: time.Now()}
	s.Partners[id] = p
	return p
}

// SeedRecipe registra una receta activa con sus ingredientes, numerando las
// posiciones que vengan en cero según el orden de llegada.
func (s *Store) SeedRecipe(id, productID string, ingredients ...*entity.RecipeIngredient) *entity.Recipe {
	for i, ing := range ingredients {
		if ing.Position == 0 {
			ing.Position = i + 1
		}
	}
	r := &entity.Recipe{ID: id, ProductID: productID, Name: id, IsActive: true, Ingredients: ingredients, CreatedAt: time.Now()}
	s.Recipes[id] = r
	return r
}

// SetStock fija directamente la proyección (para armar escenarios).
func (s *Store) SetStock(productID, warehouseID string, qty decimal.Decimal) {
	s.Stocks[stockKey(productID, warehouseID)] = &entity.Stock{
		ProductID: productID, WarehouseID: warehouseID, Quantity: qty, UpdatedAt: time.Now(),
	}
	total := decimal.Zero
	for _, st := range s.Stocks {
		if st.ProductID == productID {
			total = total.Add(st.Quantity)
		}
	}
	if p, ok := s.Products[productID]; ok {
		cp := *p
		cp.Quantity = total
		s.Products[productID] = &cp
	}
}

// StockQty cantidad actual en la proyección por bodega (cero si no hay fila).
func (s *Store) StockQty(productID, warehouseID string) decimal.Decimal {
	if st, ok := s.Stocks[stockKey(productID, warehouseID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

// MovementSum suma firmada de todos los movimientos de un producto
// (para verificar el invariante de reconciliación).
func (s *Store) MovementSum(productID string) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range s.Movements {
		if m.ProductID == productID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum
}

// MovementsFor movimientos de un producto en orden de inserción.
func (s *Store) MovementsFor(productID string) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range s.Movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// ── Repositorios fake ────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) AddQuantity(id string, delta decimal.Decimal) error {
	p, ok := r.s.Products[id]
	if !ok {
		return fmt.Errorf("producto %s no existe", id)
	}
	cp := *p
	cp.Quantity = cp.Quantity.Add(delta)
	r.s.Products[id] = &cp
	return nil
}

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.Warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

type partnerRepo struct{ s *Store }

func (r *partnerRepo) GetByID(id string) (*entity.Partner, error) {
	p, ok := r.s.Partners[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type stockRepo struct{ s *Store }

func (r *stockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if st, ok := r.s.Stocks[stockKey(productID, warehouseID)]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (r *stockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *stockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.s.Stocks[stockKey(stock.ProductID, stock.WarehouseID)] = &cp
	return nil
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	r.s.Movements = append(r.s.Movements, &cp)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, limit int) ([]*entity.StockMovement, error) {
	out := r.s.MovementsFor(productID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *movementRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.Movements {
		if !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *movementRepo) ListByDocument(docType entity.DocumentType, documentID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.Movements {
		if m.DocumentType == docType && m.DocumentID != nil && *m.DocumentID == documentID {
			out = append(out, m)
		}
	}
	return out, nil
}

type sequenceRepo struct{ s *Store }

func (r *sequenceRepo) Next(series string, docType entity.DocumentType, year int) (int64, error) {
	k := seqKey(series, docType, year)
	r.s.Sequences[k]++
	return r.s.Sequences[k], nil
}

func (r *sequenceRepo) FindSeries(docType entity.DocumentType, year int) (string, error) {
	suffix := fmt.Sprintf("|%s|%d", docType, year)
	for k := range r.s.Sequences {
		if len(k) > len(suffix) && k[len(k)-len(suffix):] == suffix {
			return k[:len(k)-len(suffix)], nil
		}
	}
	return "", nil
}

type invoiceRepo struct{ s *Store }

func (r *invoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	cp.Items = nil
	r.s.Invoices[inv.ID] = &cp
	return nil
}

func (r *invoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.s.InvoiceItems[item.InvoiceID] = append(r.s.InvoiceItems[item.InvoiceID], &cp)
	return nil
}

func (r *invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.Invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	cp.Items = nil
	return &cp, nil
}

func (r *invoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *invoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	items := r.s.InvoiceItems[invoiceID]
	out := make([]*entity.InvoiceItem, len(items))
	for i, it := range items {
		cp := *it
		out[i] = &cp
	}
	// Mismo orden que la base real: por posición de línea.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *invoiceRepo) Update(inv *entity.Invoice) error {
	cp := *inv
	cp.Items = nil
	r.s.Invoices[inv.ID] = &cp
	return nil
}

type receiptRepo struct{ s *Store }

func (r *receiptRepo) Create(receipt *entity.GoodsReceipt) error {
	cp := *receipt
	cp.Items = nil
	r.s.Receipts[receipt.ID] = &cp
	return nil
}

func (r *receiptRepo) CreateItem(item *entity.GoodsReceiptItem) error {
	cp := *item
	r.s.ReceiptItems[item.GoodsReceiptID] = append(r.s.ReceiptItems[item.GoodsReceiptID], &cp)
	return nil
}

func (r *receiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	receipt, ok := r.s.Receipts[id]
	if !ok {
		return nil, nil
	}
	cp := *receipt
	cp.Items = nil
	return &cp, nil
}

func (r *receiptRepo) GetItems(receiptID string) ([]*entity.GoodsReceiptItem, error) {
	items := r.s.ReceiptItems[receiptID]
	out := make([]*entity.GoodsReceiptItem, len(items))
	for i, it := range items {
		cp := *it
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type recipeRepo struct{ s *Store }

func (r *recipeRepo) GetByID(id string) (*entity.Recipe, error) {
	rec, ok := r.s.Recipes[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

// GetByProduct replica la consulta real: receta activa más reciente del producto.
func (r *recipeRepo) GetByProduct(productID string) (*entity.Recipe, error) {
	var found *entity.Recipe
	for _, rec := range r.s.Recipes {
		if rec.ProductID != productID || !rec.IsActive {
			continue
		}
		if found == nil || rec.CreatedAt.After(found.CreatedAt) {
			found = rec
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(order *entity.ProductionOrder) error {
	cp := *order
	r.s.Orders[order.ID] = &cp
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	order, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (r *orderRepo) GetForUpdate(id string) (*entity.ProductionOrder, error) {
	return r.GetByID(id)
}

func (r *orderRepo) Update(order *entity.ProductionOrder) error {
	cp := *order
	r.s.Orders[order.ID] = &cp
	return nil
}

// ReposFor construye el bundle de repositorios fake sobre un estado.
func ReposFor(s *Store) inventory.Repos {
	return inventory.Repos{
		Movements:        &movementRepo{s},
		Stock:            &stockRepo{s},
		Products:         &productRepo{s},
		Partners:         &partnerRepo{s},
		Warehouses:       &warehouseRepo{s},
		Invoices:         &invoiceRepo{s},
		GoodsReceipts:    &receiptRepo{s},
		Sequences:        &sequenceRepo{s},
		Recipes:          &recipeRepo{s},
		ProductionOrders: &orderRepo{s},
	}
}

// TxRunner fake: ejecuta fn sobre una copia del estado y solo la promueve si
// fn retorna nil — rollback real para las pruebas de atomicidad.
type TxRunner struct {
	Store *Store
}

// NewTxRunner construye el runner sobre un Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{Store: s}
}

// Run implementa inventory.TxRunner.
func (t *TxRunner) Run(_ context.Context, fn func(r inventory.Repos) error) error {
	work := t.Store.clone()
	if err := fn(ReposFor(work)); err != nil {
		return err
	}
	*t.Store = *work
	return nil
}
