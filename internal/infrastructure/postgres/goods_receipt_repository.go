package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo implementación de GoodsReceiptRepository sobre PostgreSQL (usable con pool o tx).
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador de notas de entrada. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create persiste la cabecera de la nota de entrada.
func (r *GoodsReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (id, series, year, number, supplier_id, receipt_date, total_amount, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Series, receipt.Year, receipt.Number, receipt.SupplierID,
		receipt.ReceiptDate, receipt.TotalAmount, receipt.Notes,
		receipt.CreatedBy, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create goods receipt: %w", mapUnique(err))
	}
	return nil
}

// CreateItem persiste una línea de nota de entrada.
func (r *GoodsReceiptRepo) CreateItem(item *entity.GoodsReceiptItem) error {
	query := `
		INSERT INTO goods_receipt_items (id, goods_receipt_id, position, product_id, warehouse_id, quantity, unit_price, batch_number, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.GoodsReceiptID, item.Position, item.ProductID, item.WarehouseID,
		item.Quantity, item.UnitPrice, item.BatchNumber, item.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("create goods receipt item: %w", err)
	}
	return nil
}

// GetByID obtiene una cabecera de nota de entrada (nil si no existe).
func (r *GoodsReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	query := `
		SELECT id, series, year, number, supplier_id, receipt_date, total_amount, notes, created_by, created_at
		FROM goods_receipts WHERE id = $1`
	var gr entity.GoodsReceipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&gr.ID, &gr.Series, &gr.Year, &gr.Number, &gr.SupplierID, &gr.ReceiptDate,
		&gr.TotalAmount, &gr.Notes, &gr.CreatedBy, &gr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	return &gr, nil
}

// GetItems obtiene las líneas de una nota de entrada.
func (r *GoodsReceiptRepo) GetItems(receiptID string) ([]*entity.GoodsReceiptItem, error) {
	query := `
		SELECT id, goods_receipt_id, position, product_id, warehouse_id, quantity, unit_price, batch_number, expiry_date
		FROM goods_receipt_items WHERE goods_receipt_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get goods receipt items: %w", err)
	}
	defer rows.Close()
	var items []*entity.GoodsReceiptItem
	for rows.Next() {
		var it entity.GoodsReceiptItem
		if err := rows.Scan(&it.ID, &it.GoodsReceiptID, &it.Position, &it.ProductID, &it.WarehouseID,
			&it.Quantity, &it.UnitPrice, &it.BatchNumber, &it.ExpiryDate); err != nil {
			return nil, fmt.Errorf("scan goods receipt item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
