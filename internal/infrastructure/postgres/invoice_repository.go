package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, series, year, number, partner_id, issue_date, due_date, status, total_net, total_vat, total_with_vat, notes, created_by, created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Series, invoice.Year, invoice.Number, invoice.PartnerID,
		invoice.IssueDate, invoice.DueDate, invoice.Status,
		invoice.TotalNet, invoice.TotalVAT, invoice.TotalWithVAT,
		invoice.Notes, invoice.CreatedBy, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create invoice: %w", mapUnique(err))
	}
	return nil
}

// CreateItem persiste una línea de factura.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, product_id, warehouse_id, quantity, unit_price, discount_rate, vat_rate, batch_number, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Position, item.ProductID, item.WarehouseID,
		item.Quantity, item.UnitPrice, item.DiscountRate, item.VATRate,
		item.BatchNumber, item.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("create invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una cabecera de factura (nil si no existe). Las líneas se
// cargan aparte con GetItems.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para la transición de
// estado: emisiones o anulaciones concurrentes de la misma factura se serializan aquí.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *InvoiceRepo) scanOne(query, id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Series, &inv.Year, &inv.Number, &inv.PartnerID,
		&inv.IssueDate, &inv.DueDate, &inv.Status,
		&inv.TotalNet, &inv.TotalVAT, &inv.TotalWithVAT,
		&inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItems obtiene las líneas de una factura.
func (r *InvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, position, product_id, warehouse_id, quantity, unit_price, discount_rate, vat_rate, batch_number, expiry_date
		FROM invoice_items WHERE invoice_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.ProductID, &it.WarehouseID,
			&it.Quantity, &it.UnitPrice, &it.DiscountRate, &it.VATRate,
			&it.BatchNumber, &it.ExpiryDate); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update actualiza estado, totales y updated_at de la cabecera.
// Las líneas son inmutables una vez creadas.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $2, total_net = $3, total_vat = $4, total_with_vat = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Status, invoice.TotalNet, invoice.TotalVAT,
		invoice.TotalWithVAT, invoice.Notes, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice: factura %s no existe", invoice.ID)
	}
	return nil
}
