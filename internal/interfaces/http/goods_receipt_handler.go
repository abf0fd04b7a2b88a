package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/application/receiving"
)

// GoodsReceiptHandler maneja las peticiones HTTP de notas de entrada (protegido).
type GoodsReceiptHandler struct {
	uc *receiving.GoodsReceiptUseCase
}

// NewGoodsReceiptHandler construye el handler.
func NewGoodsReceiptHandler(uc *receiving.GoodsReceiptUseCase) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{uc: uc}
}

// Create registra una nota de entrada e incrementa el stock de cada línea.
// POST /api/goods-receipts
func (h *GoodsReceiptHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateGoodsReceiptRequest
	if err := parseAndValidate(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	receipt, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toGoodsReceiptResponse(receipt))
}

// GetByID obtiene una nota de entrada con sus líneas.
// GET /api/goods-receipts/:id
func (h *GoodsReceiptHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	receipt, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toGoodsReceiptResponse(receipt))
}
