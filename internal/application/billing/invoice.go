// Package billing implementa los workflows de factura de venta y su máquina de
// estados draft → issued → {paid, cancelled}.
package billing

import (
	"context"
	"fmt"
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

// InvoiceUseCase orquesta el consecutivo y el Stock Ledger dentro de una
// transacción todo-o-nada por operación (Create, Issue, Cancel, Pay).
type InvoiceUseCase struct {
	txRunner      inventory.TxRunner
	ledger        *inventory.Ledger
	partnerRepo   repository.PartnerRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	invoiceRepo   repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	partnerRepo repository.PartnerRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		partnerRepo:   partnerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// Create valida, asigna consecutivo y persiste la factura en draft sin mover
// stock, salvo que IssueNow pida emitirla en la misma transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	if err := uc.validateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	dueDate := now
	if in.DueDate != nil {
		dueDate = *in.DueDate
	}
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		PartnerID: in.PartnerID,
		IssueDate: now,
		DueDate:   dueDate,
		Status:    entity.InvoiceDraft,
		Notes:     in.Notes,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range in.Items {
		item := &in.Items[i]
		inv.Items = append(inv.Items, &entity.InvoiceItem{
			ID:           uuid.New().String(),
			InvoiceID:    inv.ID,
			Position:     i + 1,
			ProductID:    item.ProductID,
			WarehouseID:  item.WarehouseID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			DiscountRate: item.DiscountRate,
			VATRate:      item.VATRate,
			BatchNumber:  item.BatchNumber,
			ExpiryDate:   item.ExpiryDate,
		})
	}
	// Totales siempre derivados de las líneas antes de persistir.
	inv.RecomputeTotals()

	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		series, number, year, err := sequence.NextNumber(r.Sequences, in.Series, entity.DocInvoice, now)
		if err != nil {
			return err
		}
		inv.Series = series
		inv.Number = number
		inv.Year = year

		if err := r.Invoices.Create(inv); err != nil {
			return err
		}
		for _, item := range inv.Items {
			if err := r.Invoices.CreateItem(item); err != nil {
				return err
			}
		}
		if in.IssueNow {
			return uc.issueInTx(r, inv, actor, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Issue emite una factura draft: descuenta el stock de cada línea contra la
// fila viva bloqueada y cambia el estado, todo en una transacción. Si
// cualquier línea no alcanza, nada se aplica (emisión parcial prohibida).
func (uc *InvoiceUseCase) Issue(ctx context.Context, actor, invoiceID string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		var err error
		inv, err = uc.lockedInvoice(r, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != entity.InvoiceDraft {
			return domain.NewStateConflict("invoice", inv.ID, string(inv.Status), string(entity.InvoiceIssued))
		}
		return uc.issueInTx(r, inv, actor, time.Now())
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// issueInTx aplica los efectos de emisión sobre una factura ya cargada y
// validada como draft, dentro de la transacción del caller.
func (uc *InvoiceUseCase) issueInTx(r inventory.Repos, inv *entity.Invoice, actor string, now time.Time) error {
	for _, item := range inv.Items {
		if err := uc.ledger.DecreaseInTx(r, inventory.MovementInput{
			ProductID:    item.ProductID,
			WarehouseID:  item.WarehouseID,
			Quantity:     item.Quantity,
			DocumentType: entity.DocInvoice,
			DocumentID:   &inv.ID,
			UnitPrice:    &item.UnitPrice,
			BatchNumber:  item.BatchNumber,
			Notes:        fmt.Sprintf("emisión factura %s-%d", inv.Series, inv.Number),
			Actor:        actor,
			Now:          now,
		}); err != nil {
			return err
		}
	}
	inv.Status = entity.InvoiceIssued
	inv.IssueDate = now
	inv.UpdatedAt = now
	return r.Invoices.Update(inv)
}

// Cancel anula una factura. Si estaba emitida, primero restaura el stock de
// cada línea (Increase con nota de anulación, ligado al mismo documento); si
// era draft no hubo movimiento y nada se revierte. Una paid no se anula.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, actor, invoiceID string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		var err error
		inv, err = uc.lockedInvoice(r, invoiceID)
		if err != nil {
			return err
		}
		if !inv.Status.CanTransitionTo(entity.InvoiceCancelled) {
			return domain.NewStateConflict("invoice", inv.ID, string(inv.Status), string(entity.InvoiceCancelled))
		}
		now := time.Now()
		if inv.Status == entity.InvoiceIssued {
			for _, item := range inv.Items {
				if err := uc.ledger.IncreaseInTx(r, inventory.MovementInput{
					ProductID:    item.ProductID,
					WarehouseID:  item.WarehouseID,
					Quantity:     item.Quantity,
					DocumentType: entity.DocInvoice,
					DocumentID:   &inv.ID,
					UnitPrice:    &item.UnitPrice,
					BatchNumber:  item.BatchNumber,
					Notes:        fmt.Sprintf("anulación factura %s-%d", inv.Series, inv.Number),
					Actor:        actor,
					Now:          now,
				}); err != nil {
					return err
				}
			}
		}
		inv.Status = entity.InvoiceCancelled
		inv.UpdatedAt = now
		return r.Invoices.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Pay marca una factura emitida como pagada. Estado terminal, sin efecto de ledger.
func (uc *InvoiceUseCase) Pay(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		var err error
		inv, err = uc.lockedInvoice(r, invoiceID)
		if err != nil {
			return err
		}
		if !inv.Status.CanTransitionTo(entity.InvoicePaid) {
			return domain.NewStateConflict("invoice", inv.ID, string(inv.Status), string(entity.InvoicePaid))
		}
		inv.Status = entity.InvoicePaid
		inv.UpdatedAt = time.Now()
		return r.Invoices.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID lee una factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// lockedInvoice carga la cabecera con FOR UPDATE y las líneas, dentro de la tx.
func (uc *InvoiceUseCase) lockedInvoice(r inventory.Repos, id string) (*entity.Invoice, error) {
	inv, err := r.Invoices.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := r.Invoices.GetItems(id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// validateCreate rechaza entradas inválidas antes de abrir transacción alguna.
func (uc *InvoiceUseCase) validateCreate(in dto.CreateInvoiceRequest) error {
	partner, err := uc.partnerRepo.GetByID(in.PartnerID)
	if err != nil {
		return err
	}
	if partner == nil || !partner.IsActive {
		return domain.NewValidation("partner_id", "tercero inexistente o inactivo")
	}
	if len(in.Items) == 0 {
		return domain.NewValidation("items", "la factura necesita al menos una línea")
	}
	one := decimal.NewFromInt(1)
	for i := range in.Items {
		item := &in.Items[i]
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return domain.NewValidation("quantity", "debe ser positiva")
		}
		if !item.UnitPrice.GreaterThan(decimal.Zero) {
			return domain.NewValidation("unit_price", "debe ser positivo")
		}
		if item.DiscountRate.LessThan(decimal.Zero) || item.DiscountRate.GreaterThan(one) {
			return domain.NewValidation("discount_rate", "fuera de rango [0,1]")
		}
		if item.VATRate.LessThan(decimal.Zero) {
			return domain.NewValidation("vat_rate", "no puede ser negativa")
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewValidation("product_id", "producto inexistente")
		}
		wh, err := uc.warehouseRepo.GetByID(item.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.NewValidation("warehouse_id", "bodega inexistente")
		}
	}
	return nil
}
