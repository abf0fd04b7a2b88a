package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)

// InsufficientStockError identifica el producto y las cantidades del faltante.
// Es un resultado de negocio, no un bug: el caller lo maneja como valor, no como excepción.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Required    decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s: requerido %s, disponible %s",
		e.ProductID, e.WarehouseID, e.Required, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error estructurado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStock construye el error con las cantidades del faltante.
func NewInsufficientStock(productID, warehouseID string, required, available decimal.Decimal) error {
	return &InsufficientStockError{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Required:    required,
		Available:   available,
	}
}

// StateConflictError nombra el estado actual y el solicitado en una transición rechazada.
type StateConflictError struct {
	Entity    string // "invoice" | "production_order"
	ID        string
	Current   string
	Requested string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s %s: transición %s -> %s no permitida", e.Entity, e.ID, e.Current, e.Requested)
}

// Is permite errors.Is(err, ErrInvalidTransition).
func (e *StateConflictError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// NewStateConflict construye el error de transición inválida.
func NewStateConflict(entity, id, current, requested string) error {
	return &StateConflictError{Entity: entity, ID: id, Current: current, Requested: requested}
}

// ValidationError señala el campo ofensivo de una entrada rechazada antes de abrir transacción.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: campo %s %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidation construye el error de validación con el campo ofensivo.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
