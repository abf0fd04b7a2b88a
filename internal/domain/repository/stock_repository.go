package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// StockRepository puerto para consultar/actualizar el stock por producto+bodega.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) antes de mutar.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
}
