package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidState       = errors.New("transición de estado no permitida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInsufficientPoints = errors.New("puntos insuficientes")
	ErrCarrierUnavailable = errors.New("transportadora no disponible")
)

// InsufficientStockError indica qué variante no alcanzó a cubrir la línea.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	VariantID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para variante %s: solicitado %d, disponible %d",
		e.VariantID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStock construye el error para la variante indicada.
func NewInsufficientStock(variantID string, requested, available int) error {
	return &InsufficientStockError{VariantID: variantID, Requested: requested, Available: available}
}
