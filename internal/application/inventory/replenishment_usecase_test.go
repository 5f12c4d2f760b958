package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
)

func TestGenerateReplenishmentList_PrioridadPorMargen(t *testing.T) {
	store := memory.NewStore()
	// margen 50 %
	store.SeedVariant(entity.ProductVariant{ID: "a", SKU: "A", SellPrice: decimal.NewFromInt(200), CostPrice: decimal.NewFromInt(100), StockQuantity: 2})
	// margen 75 %
	store.SeedVariant(entity.ProductVariant{ID: "b", SKU: "B", SellPrice: decimal.NewFromInt(400), CostPrice: decimal.NewFromInt(100), StockQuantity: 10})
	// sobre el umbral: no aparece
	store.SeedVariant(entity.ProductVariant{ID: "c", SKU: "C", SellPrice: decimal.NewFromInt(100), StockQuantity: 11})

	uc := inventory.NewReplenishmentUseCase(store.Analytics(), 11)
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "b", list[0].VariantID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 17, list[0].IdealStock) // ceil(1.5 × 11)
	assert.Equal(t, 7, list[0].SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(75).Equal(list[0].GrossMarginPct))

	assert.Equal(t, "a", list[1].VariantID)
	assert.Equal(t, 15, list[1].SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(1500).Equal(list[1].EstimatedOrderCost))
}

func TestGenerateReplenishmentList_SinStockBajo(t *testing.T) {
	store := memory.NewStore()
	store.SeedVariant(entity.ProductVariant{ID: "a", SKU: "A", StockQuantity: 50})

	list, err := inventory.NewReplenishmentUseCase(store.Analytics(), 10).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
