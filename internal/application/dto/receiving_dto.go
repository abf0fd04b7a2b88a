package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceiptItemRequest línea de nota de entrada.
type GoodsReceiptItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	BatchNumber *string         `json:"batch_number,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
}

// CreateGoodsReceiptRequest crea una nota de entrada (final al guardarse).
type CreateGoodsReceiptRequest struct {
	SupplierID  string                    `json:"supplier_id" validate:"required,uuid4"`
	Series      string                    `json:"series"`
	ReceiptDate *time.Time                `json:"receipt_date,omitempty"`
	Notes       string                    `json:"notes"`
	Items       []GoodsReceiptItemRequest `json:"items" validate:"required,min=1,dive"`
}

// GoodsReceiptResponse nota de entrada persistida.
type GoodsReceiptResponse struct {
	ID          string          `json:"id"`
	Series      string          `json:"series"`
	Year        int             `json:"year"`
	Number      int64           `json:"number"`
	SupplierID  string          `json:"supplier_id"`
	ReceiptDate time.Time       `json:"receipt_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}
