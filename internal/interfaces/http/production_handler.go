package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/application/production"
)

// ProductionHandler maneja las peticiones HTTP de órdenes de producción (protegido).
type ProductionHandler struct {
	uc *production.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create crea una orden de producción en pending.
// POST /api/production-orders
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateProductionOrderRequest
	if err := parseAndValidate(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	order, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionOrderResponse(order))
}

// Process ejecuta una orden pending: consume ingredientes y produce el terminado.
// POST /api/production-orders/:id/process
func (h *ProductionHandler) Process(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	order, err := h.uc.Process(c.Context(), userID, id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductionOrderResponse(order))
}

// Cancel cancela una orden pending.
// POST /api/production-orders/:id/cancel
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	order, err := h.uc.Cancel(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductionOrderResponse(order))
}

// GetByID obtiene una orden de producción.
// GET /api/production-orders/:id
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	order, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductionOrderResponse(order))
}
