package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del Stock Ledger (protegido).
type InventoryHandler struct {
	ledger *inventory.Ledger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Transfer traslada stock entre bodegas.
// POST /api/inventory/transfers
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferStockRequest
	if err := parseAndValidate(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	err := h.ledger.TransferStock(c.Context(), inventory.TransferInput{
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Notes:           in.Notes,
		Actor:           userID,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
}

// Adjust redefine la cantidad de un producto en una bodega (conteo físico).
// POST /api/inventory/adjustments
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := parseAndValidate(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	err := h.ledger.AdjustStock(c.Context(), inventory.AdjustInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		NewQuantity: in.NewQuantity,
		Notes:       in.Notes,
		Actor:       userID,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// GetStock cantidad actual de un producto en una bodega.
// GET /api/inventory/stock?product_id=...&warehouse_id=...
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id requeridos"})
	}
	stock, err := h.ledger.GetStock(c.Context(), productID, warehouseID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toStockResponse(stock))
}

// GetProductMovements historial de un producto, más recientes primero.
// GET /api/inventory/movements/product/:id?limit=100
func (h *InventoryHandler) GetProductMovements(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	limit := c.QueryInt("limit", 100)
	movements, err := h.ledger.GetProductMovements(c.Context(), productID, limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(movements),
		"movements": toMovementResponses(movements),
	})
}

// GetDocumentMovements movimientos originados por un documento (emisión y
// anulación de la misma factura comparten document_id).
// GET /api/inventory/movements/document/:id?type=INVOICE
func (h *InventoryHandler) GetDocumentMovements(c *fiber.Ctx) error {
	documentID := c.Params("id")
	docType := entity.DocumentType(c.Query("type"))
	movements, err := h.ledger.GetDocumentMovements(c.Context(), docType, documentID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(movements),
		"movements": toMovementResponses(movements),
	})
}

// GetMovementsByDateRange historial global dentro de [from, to] (RFC 3339).
// GET /api/inventory/movements?from=...&to=...&limit=100&offset=0
func (h *InventoryHandler) GetMovementsByDateRange(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)", Field: "from"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)", Field: "to"})
	}
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	movements, err := h.ledger.GetMovementsByDateRange(c.Context(), from, to, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(movements),
		"movements": toMovementResponses(movements),
	})
}
