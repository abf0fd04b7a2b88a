package http

import (
	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// Mapeos entidad -> DTO de respuesta. Los importes derivados (Net, VAT, Total)
// se calculan aquí desde la representación canónica, nunca se almacenan.

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		WarehouseID:  m.WarehouseID,
		Type:         string(m.Type),
		DocumentType: string(m.DocumentType),
		DocumentID:   m.DocumentID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		BatchNumber:  m.BatchNumber,
		Notes:        m.Notes,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:           inv.ID,
		Series:       inv.Series,
		Year:         inv.Year,
		Number:       inv.Number,
		PartnerID:    inv.PartnerID,
		Status:       string(inv.Status),
		IssueDate:    inv.IssueDate,
		DueDate:      inv.DueDate,
		TotalNet:     inv.TotalNet,
		TotalVAT:     inv.TotalVAT,
		TotalWithVAT: inv.TotalWithVAT,
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:           it.ID,
			Position:     it.Position,
			ProductID:    it.ProductID,
			WarehouseID:  it.WarehouseID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			DiscountRate: it.DiscountRate,
			VATRate:      it.VATRate,
			Net:          it.Net(),
			VAT:          it.VAT(),
			Total:        it.Total(),
		})
	}
	return resp
}

func toGoodsReceiptResponse(gr *entity.GoodsReceipt) dto.GoodsReceiptResponse {
	return dto.GoodsReceiptResponse{
		ID:          gr.ID,
		Series:      gr.Series,
		Year:        gr.Year,
		Number:      gr.Number,
		SupplierID:  gr.SupplierID,
		ReceiptDate: gr.ReceiptDate,
		TotalAmount: gr.TotalAmount,
		ItemCount:   len(gr.Items),
	}
}

func toProductionOrderResponse(o *entity.ProductionOrder) dto.ProductionOrderResponse {
	return dto.ProductionOrderResponse{
		ID:                o.ID,
		Series:            o.Series,
		Year:              o.Year,
		Number:            o.Number,
		RecipeID:          o.RecipeID,
		WarehouseID:       o.WarehouseID,
		QuantityToProduce: o.QuantityToProduce,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		StartedAt:         o.StartedAt,
		CompletedAt:       o.CompletedAt,
	}
}
