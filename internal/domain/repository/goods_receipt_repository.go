package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// GoodsReceiptRepository puerto de persistencia de notas de entrada (NIR).
type GoodsReceiptRepository interface {
	Create(receipt *entity.GoodsReceipt) error
	CreateItem(item *entity.GoodsReceiptItem) error
	GetByID(id string) (*entity.GoodsReceipt, error)
	GetItems(receiptID string) ([]*entity.GoodsReceiptItem, error)
}
