package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura de venta. La identidad del
// consecutivo es (Series, Year, Number): el número reinicia en 1 cada año.
// Los totales son derivados de las líneas (RecomputeTotals); nunca son autoritativos por sí solos.
type Invoice struct {
	ID           string
	Series       string
	Year         int
	Number       int64
	PartnerID    string
	IssueDate    time.Time
	DueDate      time.Time
	Status       InvoiceStatus
	TotalNet     decimal.Decimal
	TotalVAT     decimal.Decimal
	TotalWithVAT decimal.Decimal
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []*InvoiceItem
}

// InvoiceItem línea de factura. Position (1..n) preserva el orden en que el
// cliente envió las líneas. Representación canónica única: los importes
// se calculan desde cantidad, precio, descuento y tasa de IVA (sin campos espejo).
type InvoiceItem struct {
	ID           string
	InvoiceID    string
	Position     int
	ProductID    string
	WarehouseID  string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DiscountRate decimal.Decimal // fracción: 0.10 = 10%
	VATRate      decimal.Decimal // fracción: 0.19 = 19%
	BatchNumber  *string
	ExpiryDate   *time.Time
}

// Net devuelve el neto de la línea: cantidad × precio × (1 − descuento).
func (it *InvoiceItem) Net() decimal.Decimal {
	one := decimal.NewFromInt(1)
	return it.Quantity.Mul(it.UnitPrice).Mul(one.Sub(it.DiscountRate))
}

// VAT devuelve el IVA de la línea sobre el neto.
func (it *InvoiceItem) VAT() decimal.Decimal {
	return it.Net().Mul(it.VATRate)
}

// Total devuelve neto + IVA de la línea.
func (it *InvoiceItem) Total() decimal.Decimal {
	return it.Net().Add(it.VAT())
}

// RecomputeTotals recalcula los totales de cabecera desde las líneas actuales.
// Se invoca siempre antes de persistir (invariante: totales recomputables).
func (inv *Invoice) RecomputeTotals() {
	var net, vat decimal.Decimal
	for _, it := range inv.Items {
		net = net.Add(it.Net())
		vat = vat.Add(it.VAT())
	}
	inv.TotalNet = net
	inv.TotalVAT = vat
	inv.TotalWithVAT = net.Add(vat)
}
