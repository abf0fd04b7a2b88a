// Package receiving implementa el workflow de notas de entrada (NIR):
// siempre incrementa stock y el documento es final al guardarse.
package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/application/sequence"
	"github.com/gestionpro/stock-ledger-api/internal/domain"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
	"github.com/gestionpro/stock-ledger-api/internal/domain/repository"
)

// GoodsReceiptUseCase crea notas de entrada: valida → consecutivo → Increase
// por línea → cabecera+líneas, todo en una transacción.
type GoodsReceiptUseCase struct {
	txRunner      inventory.TxRunner
	ledger        *inventory.Ledger
	partnerRepo   repository.PartnerRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	receiptRepo   repository.GoodsReceiptRepository
}

// NewGoodsReceiptUseCase construye el caso de uso.
func NewGoodsReceiptUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	receiptRepo repository.GoodsReceiptRepository,
) *GoodsReceiptUseCase {
	return &GoodsReceiptUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		partnerRepo:   partnerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		receiptRepo:   receiptRepo,
	}
}

// Create valida fuera de la transacción (solo lecturas) y dentro de ella pide
// el consecutivo, incrementa el stock por cada línea y persiste el documento.
// Cualquier fallo revierte los efectos del ledger y el documento juntos.
func (uc *GoodsReceiptUseCase) Create(ctx context.Context, actor string, in dto.CreateGoodsReceiptRequest) (*entity.GoodsReceipt, error) {
	supplier, err := uc.partnerRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.IsActive {
		return nil, domain.NewValidation("supplier_id", "proveedor inexistente o inactivo")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidation("items", "la nota de entrada no puede estar vacía")
	}
	for i := range in.Items {
		item := &in.Items[i]
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidation("quantity", "debe ser positiva")
		}
		if !item.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.NewValidation("unit_price", "debe ser positivo")
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewValidation("product_id", "producto inexistente")
		}
		wh, err := uc.warehouseRepo.GetByID(item.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.NewValidation("warehouse_id", "bodega inexistente")
		}
	}

	now := time.Now()
	receiptDate := now
	if in.ReceiptDate != nil {
		receiptDate = *in.ReceiptDate
	}
	receipt := &entity.GoodsReceipt{
		ID:          uuid.New().String(),
		SupplierID:  in.SupplierID,
		ReceiptDate: receiptDate,
		Notes:       in.Notes,
		CreatedBy:   actor,
		CreatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		series, number, year, err := sequence.NextNumber(r.Sequences, in.Series, entity.DocGoodsReceipt, receiptDate)
		if err != nil {
			return err
		}
		receipt.Series = series
		receipt.Number = number
		receipt.Year = year

		for i := range in.Items {
			item := &in.Items[i]
			line := &entity.GoodsReceiptItem{
				ID:             uuid.New().String(),
				GoodsReceiptID: receipt.ID,
				Position:       i + 1,
				ProductID:      item.ProductID,
				WarehouseID:    item.WarehouseID,
				Quantity:       item.Quantity,
				UnitPrice:      item.UnitPrice,
				BatchNumber:    item.BatchNumber,
				ExpiryDate:     item.ExpiryDate,
			}
			receipt.Items = append(receipt.Items, line)

			unitPrice := item.UnitPrice
			if err := uc.ledger.IncreaseInTx(r, inventory.MovementInput{
				ProductID:    item.ProductID,
				WarehouseID:  item.WarehouseID,
				Quantity:     item.Quantity,
				DocumentType: entity.DocGoodsReceipt,
				DocumentID:   &receipt.ID,
				UnitPrice:    &unitPrice,
				BatchNumber:  item.BatchNumber,
				Notes:        in.Notes,
				Actor:        actor,
				Now:          now,
			}); err != nil {
				return err
			}
		}

		// Total de cabecera recomputado desde las líneas antes del commit.
		receipt.RecomputeTotal()
		if err := r.GoodsReceipts.Create(receipt); err != nil {
			return err
		}
		for _, line := range receipt.Items {
			if err := r.GoodsReceipts.CreateItem(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetByID lee una nota de entrada con sus líneas.
func (uc *GoodsReceiptUseCase) GetByID(ctx context.Context, id string) (*entity.GoodsReceipt, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.receiptRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return receipt, nil
}
