package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
// Los pedidos cancelados cuentan en totales por estado pero no suman ingresos.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountOrders total de pedidos.
func (r *AnalyticsRepo) CountOrders(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// TotalRevenue suma de final_total de pedidos no cancelados.
func (r *AnalyticsRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(final_total), 0) FROM orders WHERE status <> $1`,
		string(entity.OrderStatusCancelled),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total revenue: %w", err)
	}
	return total, nil
}

// CountOrdersByStatus pedidos agrupados por estado.
func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// RevenueByDay ingresos diarios en [from, to], agrupados en la zona horaria de from.
// Los días sin ventas no aparecen.
func (r *AnalyticsRepo) RevenueByDay(ctx context.Context, from, to time.Time) ([]repository.DailyRevenue, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT created_at, final_total FROM orders WHERE created_at BETWEEN $1 AND $2 AND status <> $3`,
		from, to, string(entity.OrderStatusCancelled),
	)
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}
	defer rows.Close()

	byDay := map[string]decimal.Decimal{}
	var days []string
	for rows.Next() {
		var at time.Time
		var total decimal.Decimal
		if err := rows.Scan(&at, &total); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		day := at.In(from.Location()).Format("2006-01-02")
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = byDay[day].Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	list := make([]repository.DailyRevenue, 0, len(days))
	for _, d := range days {
		list = append(list, repository.DailyRevenue{Day: d, Revenue: byDay[d]})
	}
	return list, nil
}

// CountLowStock variantes con stock por debajo del umbral.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_variants WHERE stock_quantity < $1`, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// ListLowStock variantes bajo el umbral, menor stock primero.
func (r *AnalyticsRepo) ListLowStock(ctx context.Context, threshold int) ([]*entity.ProductVariant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+variantColumns+`
		FROM product_variants
		WHERE stock_quantity < $1
		ORDER BY stock_quantity, sku`, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
