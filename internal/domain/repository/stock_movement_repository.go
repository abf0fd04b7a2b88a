package repository

import (
	"time"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia del historial de movimientos.
// Append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit int) ([]*entity.StockMovement, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByDocument(docType entity.DocumentType, documentID string) ([]*entity.StockMovement, error)
}
