// Package errors provides custom error types for inventory and sale operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("producto no encontrado")
var ErrSaleNotFound = errors.New("venta no encontrada")

var ErrProductHasSales = errors.New("producto tiene ventas asociadas")
var ErrInvalidQuantity = errors.New("cantidad vendida no positiva")
var ErrInsufficientStock = errors.New("stock insuficiente")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")

// Client-facing messages. These mirror the wording of the external API contract
// and must not be reworded.
const (
	MsgQuantityNotPositive   = "La cantidad vendida debe ser mayor que cero."
	MsgInsufficientStockFmt  = "Stock insuficiente. Solo hay %d unidades disponibles."
	MsgProductHasSales       = "No se puede eliminar este producto porque tiene ventas asociadas."
	MsgSaleProductNotFound   = "Producto no encontrado."
)

// ValidationError is a client-input rejection carrying the exact message to be
// returned to the caller.
type ValidationError struct {
	Message string
	cause   error
}

// NewValidation builds a ValidationError with the given sentinel cause and
// client-facing message.
func NewValidation(cause error, message string) *ValidationError {
	return &ValidationError{Message: message, cause: cause}
}

// NewInsufficientStock builds the validation error for a sale quantity that
// exceeds the available stock. The message cites the exact available quantity.
func NewInsufficientStock(available int32) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf(MsgInsufficientStockFmt, available),
		cause:   ErrInsufficientStock,
	}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.cause }
