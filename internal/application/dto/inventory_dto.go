package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStockRequest traslado entre bodegas.
type TransferStockRequest struct {
	ProductID       string          `json:"product_id" validate:"required,uuid4"`
	FromWarehouseID string          `json:"from_warehouse_id" validate:"required,uuid4"`
	ToWarehouseID   string          `json:"to_warehouse_id" validate:"required,uuid4,nefield=FromWarehouseID"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	Notes           string          `json:"notes"`
}

// AdjustStockRequest ajuste directo: redefine la cantidad de la bodega.
type AdjustStockRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid4"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Notes       string          `json:"notes"`
}

// MovementResponse un movimiento del historial.
type MovementResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	WarehouseID  string           `json:"warehouse_id"`
	Type         string           `json:"type"`
	DocumentType string           `json:"document_type"`
	DocumentID   *string          `json:"document_id,omitempty"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	BatchNumber  *string          `json:"batch_number,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedBy    string           `json:"created_by"`
	CreatedAt    time.Time        `json:"created_at"`
}

// StockResponse cantidad actual por producto y bodega.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
