package repository

import "github.com/gestionpro/stock-ledger-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia de facturas (cabecera + líneas).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItems(invoiceID string) ([]*entity.InvoiceItem, error)
	// GetForUpdate bloquea la cabecera para la transición de estado.
	GetForUpdate(id string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
}
