package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/stock-ledger-api/internal/application/dto"
	"github.com/gestionpro/stock-ledger-api/internal/domain"
)

// validate instancia compartida; valida los tags de los DTOs antes de llegar
// al caso de uso (las reglas de negocio se validan de nuevo adentro).
var validate = validator.New()

// parseAndValidate decodifica el cuerpo JSON en out y aplica los tags validate.
// Devuelve un error de dominio que respondDomainError traduce a 400.
func parseAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidation("body", "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return domain.NewValidation(first.Field(), fmt.Sprintf("no cumple la regla %s", first.Tag()))
		}
		return domain.ErrInvalidInput
	}
	return nil
}

// respondDomainError traduce los errores del dominio al status HTTP y al código
// estable de la API. Los faltantes y los conflictos de estado van en 409 con el
// detalle estructurado para que el cliente pueda reaccionar.
func respondDomainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":         "INSUFFICIENT_STOCK",
			"message":      "stock insuficiente",
			"product_id":   insufficient.ProductID,
			"warehouse_id": insufficient.WarehouseID,
			"required":     insufficient.Required,
			"available":    insufficient.Available,
		})
	}
	var conflict *domain.StateConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "STATE_CONFLICT",
			"message":   "transición de estado no permitida",
			"entity":    conflict.Entity,
			"id":        conflict.ID,
			"current":   conflict.Current,
			"requested": conflict.Requested,
		})
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: invalid.Reason, Field: invalid.Field,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATE_CONFLICT", Message: "conflicto con el estado actual"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
