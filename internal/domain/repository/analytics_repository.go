package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// DailyRevenue ingresos agregados por día (fecha en formato 2006-01-02).
type DailyRevenue struct {
	Day     string
	Revenue decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	CountOrders(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int, error)
	RevenueByDay(ctx context.Context, from, to time.Time) ([]DailyRevenue, error)
	CountLowStock(ctx context.Context, threshold int) (int, error)
	// ListLowStock variantes con stock < threshold, menor stock primero.
	ListLowStock(ctx context.Context, threshold int) ([]*entity.ProductVariant, error)
}
