package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// Reserve bloquea la fila de la variante (SELECT FOR UPDATE), verifica StockActual >= cantidad
// y descuenta. Debe llamarse dentro de la transacción del pedido: si falla, no se modifica nada
// y el caller hace rollback de lo ya reservado.
func Reserve(ctx context.Context, variants repository.VariantRepository, variantID string, quantity int) (*entity.ProductVariant, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	v, err := variants.GetForUpdate(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if v.StockQuantity < quantity {
		return nil, domain.NewInsufficientStock(variantID, quantity, v.StockQuantity)
	}
	v.StockQuantity -= quantity
	v.UpdatedAt = time.Now()
	if err := variants.UpdateStock(ctx, v.ID, v.StockQuantity); err != nil {
		return nil, err
	}
	return v, nil
}

// Release suma stock sin condición (cancelaciones). La entrada de mercancía usa ReceiveInTx,
// que además revalúa el costo.
func Release(ctx context.Context, variants repository.VariantRepository, variantID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidInput
	}
	v, err := variants.GetForUpdate(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	return variants.UpdateStock(ctx, v.ID, v.StockQuantity+quantity)
}

// ReceiveInTx suma la cantidad recibida y recalcula el costo promedio móvil de la variante.
// Devuelve la variante con los valores nuevos.
func ReceiveInTx(ctx context.Context, variants repository.VariantRepository, variantID string, quantity int, importPrice decimal.Decimal) (*entity.ProductVariant, error) {
	if quantity < 1 || !importPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	v, err := variants.GetForUpdate(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	newCost := inventory.MovingAverageCost(v.StockQuantity, v.CostPrice, quantity, importPrice)
	v.StockQuantity += quantity
	v.CostPrice = newCost
	v.UpdatedAt = time.Now()
	if err := variants.UpdateStockAndCost(ctx, v.ID, v.StockQuantity, v.CostPrice); err != nil {
		return nil, err
	}
	return v, nil
}
