package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura entrante.
type InvoiceItemRequest struct {
	ProductID    string          `json:"product_id" validate:"required,uuid4"`
	WarehouseID  string          `json:"warehouse_id" validate:"required,uuid4"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"required"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	BatchNumber  *string         `json:"batch_number,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
}

// CreateInvoiceRequest crea una factura en draft (o emitida de una vez con IssueNow).
type CreateInvoiceRequest struct {
	PartnerID string               `json:"partner_id" validate:"required,uuid4"`
	Series    string               `json:"series"`
	DueDate   *time.Time           `json:"due_date,omitempty"`
	Notes     string               `json:"notes"`
	IssueNow  bool                 `json:"issue_now"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemResponse línea de factura con importes derivados.
type InvoiceItemResponse struct {
	ID           string          `json:"id"`
	Position     int             `json:"position"`
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	Net          decimal.Decimal `json:"net"`
	VAT          decimal.Decimal `json:"vat"`
	Total        decimal.Decimal `json:"total"`
}

// InvoiceResponse cabecera de factura con totales derivados.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	Series       string                `json:"series"`
	Year         int                   `json:"year"`
	Number       int64                 `json:"number"`
	PartnerID    string                `json:"partner_id"`
	Status       string                `json:"status"`
	IssueDate    time.Time             `json:"issue_date"`
	DueDate      time.Time             `json:"due_date"`
	TotalNet     decimal.Decimal       `json:"total_net"`
	TotalVAT     decimal.Decimal       `json:"total_vat"`
	TotalWithVAT decimal.Decimal       `json:"total_with_vat"`
	Items        []InvoiceItemResponse `json:"items,omitempty"`
}
