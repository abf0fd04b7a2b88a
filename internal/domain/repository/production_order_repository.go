package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// ProductionOrderRepository puerto de persistencia de órdenes de producción.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	// GetForUpdate bloquea la orden para la transición de estado.
	GetForUpdate(id string) (*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error
}
