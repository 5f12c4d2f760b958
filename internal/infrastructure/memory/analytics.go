package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// analyticsRepo mismas reglas que la versión SQL: los pedidos cancelados no suman ingresos.
type analyticsRepo struct{ v view }

func (r analyticsRepo) CountOrders(_ context.Context) (n int, err error) {
	err = r.v(func(s *state) error {
		n = len(s.orders)
		return nil
	})
	return n, err
}

func (r analyticsRepo) TotalRevenue(_ context.Context) (total decimal.Decimal, err error) {
	err = r.v(func(s *state) error {
		for _, o := range s.orders {
			if o.Status != entity.OrderStatusCancelled {
				total = total.Add(o.FinalTotal)
			}
		}
		return nil
	})
	return total, err
}

func (r analyticsRepo) CountOrdersByStatus(_ context.Context) (out map[string]int, err error) {
	out = map[string]int{}
	err = r.v(func(s *state) error {
		for _, o := range s.orders {
			out[string(o.Status)]++
		}
		return nil
	})
	return out, err
}

func (r analyticsRepo) RevenueByDay(_ context.Context, from, to time.Time) (out []repository.DailyRevenue, err error) {
	err = r.v(func(s *state) error {
		byDay := map[string]decimal.Decimal{}
		for _, o := range s.orders {
			if o.Status == entity.OrderStatusCancelled || o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
				continue
			}
			day := o.CreatedAt.In(from.Location()).Format("2006-01-02")
			byDay[day] = byDay[day].Add(o.FinalTotal)
		}
		for day, rev := range byDay {
			out = append(out, repository.DailyRevenue{Day: day, Revenue: rev})
		}
		return nil
	})
	return out, err
}

func (r analyticsRepo) CountLowStock(_ context.Context, threshold int) (n int, err error) {
	err = r.v(func(s *state) error {
		for _, v := range s.variants {
			if v.StockQuantity < threshold {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r analyticsRepo) ListLowStock(_ context.Context, threshold int) (out []*entity.ProductVariant, err error) {
	err = r.v(func(s *state) error {
		for _, v := range s.variants {
			if v.StockQuantity < threshold {
				cp := *v
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].StockQuantity != out[j].StockQuantity {
			return out[i].StockQuantity < out[j].StockQuantity
		}
		return out[i].SKU < out[j].SKU
	})
	return out, err
}
