package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// VariantRepository puerto de persistencia para ProductVariant (la unidad de stock).
// GetForUpdate bloquea la fila hasta el fin de la transacción; Update* solo deben llamarse tras bloquearla.
type VariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ProductVariant, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ProductVariant, error)
	UpdateStock(ctx context.Context, id string, quantity int) error
	UpdateStockAndCost(ctx context.Context, id string, quantity int, cost decimal.Decimal) error
}
