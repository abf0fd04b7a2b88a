package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceipt representa una nota de entrada de mercancía (NIR). La identidad
// del consecutivo es (Series, Year, Number): el número reinicia en 1 cada año.
// No tiene máquina de estados: una vez guardada es final.
type GoodsReceipt struct {
	ID          string
	Series      string
	Year        int
	Number      int64
	SupplierID  string
	ReceiptDate time.Time
	TotalAmount decimal.Decimal
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time

	Items []*GoodsReceiptItem
}

// GoodsReceiptItem línea de una nota de entrada. Position (1..n) preserva el
// orden en que llegaron las líneas.
type GoodsReceiptItem struct {
	ID             string
	GoodsReceiptID string
	Position       int
	ProductID      string
	WarehouseID    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	BatchNumber    *string
	ExpiryDate     *time.Time
}

// Total devuelve cantidad × precio unitario de la línea.
func (it *GoodsReceiptItem) Total() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// RecomputeTotal recalcula el total de cabecera desde las líneas (antes de persistir).
func (gr *GoodsReceipt) RecomputeTotal() {
	var total decimal.Decimal
	for _, it := range gr.Items {
		total = total.Add(it.Total())
	}
	gr.TotalAmount = total
}
