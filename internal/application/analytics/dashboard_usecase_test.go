package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-backoffice/internal/application/analytics"
	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/application/orders"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	domainloyalty "github.com/jhoicas/tienda-backoffice/internal/domain/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/carrier"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

func TestGetSummary(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser(entity.User{ID: "user-1", Email: "cliente@tienda.test"})
	store.SeedVariant(entity.ProductVariant{ID: "v-1", SellPrice: decimal.NewFromInt(1000), StockQuantity: 12})
	store.SeedVariant(entity.ProductVariant{ID: "v-2", SellPrice: decimal.NewFromInt(500), StockQuantity: 40})

	log := logger.Nop()
	repos := store.Repos()
	ledger := loyalty.NewLedger(0, domainloyalty.DefaultTiers, nil, log)
	create := orders.NewCreateOrderUseCase(store, ledger, 100, nil, log)
	status := orders.NewStatusUseCase(store, repos.Orders, repos.Events, carrier.NewMockCarrier(0), time.Second, ledger, nil, log)
	ctx := context.Background()

	newOrder := func(variantID string, qty int) *dto.OrderResponse {
		o, err := create.CreateOrder(ctx, dto.CreateOrderRequest{
			UserID: "user-1",
			Items:  []dto.CreateOrderItemRequest{{VariantID: variantID, Quantity: qty}},
		})
		require.NoError(t, err)
		return o
	}
	newOrder("v-1", 3) // 3000, deja 9 en stock
	newOrder("v-2", 2) // 1000
	cancelled := newOrder("v-2", 1)
	_, err := status.UpdateStatus(ctx, cancelled.ID, dto.UpdateOrderStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)

	summary, err := analytics.NewDashboardUseCase(store.Analytics(), 10).GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalOrders)
	assert.True(t, decimal.NewFromInt(4000).Equal(summary.TotalRevenue), "los cancelados no suman, got %s", summary.TotalRevenue)
	assert.Equal(t, 2, summary.OrderStatusCounts["PENDING"])
	assert.Equal(t, 1, summary.OrderStatusCounts["CANCELLED"])
	assert.Equal(t, 1, summary.LowStockVariants, "solo v-1 queda bajo el umbral")

	require.Len(t, summary.RevenueLast7Days, 7)
	today := summary.RevenueLast7Days[6]
	assert.Equal(t, time.Now().Format("2006-01-02"), today.Day)
	assert.True(t, decimal.NewFromInt(4000).Equal(today.Revenue))
	assert.True(t, summary.RevenueLast7Days[0].Revenue.IsZero())
}
