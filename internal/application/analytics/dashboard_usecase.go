// Package analytics contiene el resumen del dashboard del back-office.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

const revenueWindowDays = 7 // días del widget de ingresos

// DashboardUseCase genera el resumen de pedidos, ingresos y stock bajo.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, lowStockThreshold int) *DashboardUseCase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo; la primera que falle cancela el resto.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Ventana de ingresos: hoy y los 6 días anteriores ──────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := todayStart.AddDate(0, 0, -(revenueWindowDays - 1))
	to := todayStart.Add(24*time.Hour - time.Nanosecond)

	var (
		total    int
		revenue  decimal.Decimal
		byStatus map[string]int
		daily    []repository.DailyRevenue
		lowStock int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if total, err = uc.analyticsRepo.CountOrders(gctx); err != nil {
			return fmt.Errorf("dashboard: total pedidos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if revenue, err = uc.analyticsRepo.TotalRevenue(gctx); err != nil {
			return fmt.Errorf("dashboard: ingresos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if byStatus, err = uc.analyticsRepo.CountOrdersByStatus(gctx); err != nil {
			return fmt.Errorf("dashboard: pedidos por estado: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if daily, err = uc.analyticsRepo.RevenueByDay(gctx, from, to); err != nil {
			return fmt.Errorf("dashboard: ingresos por día: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if lowStock, err = uc.analyticsRepo.CountLowStock(gctx, uc.lowStockThreshold); err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// ── Rellenar días sin ventas con cero ─────────────────────────────────────
	byDay := make(map[string]decimal.Decimal, len(daily))
	for _, d := range daily {
		byDay[d.Day] = d.Revenue
	}
	series := make([]dto.DailyRevenueDTO, 0, revenueWindowDays)
	for i := 0; i < revenueWindowDays; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, dto.DailyRevenueDTO{Day: day, Revenue: byDay[day].Round(2)})
	}
	if byStatus == nil {
		byStatus = map[string]int{}
	}

	return &dto.DashboardSummaryDTO{
		TotalOrders:       total,
		TotalRevenue:      revenue.Round(2),
		OrderStatusCounts: byStatus,
		RevenueLast7Days:  series,
		LowStockVariants:  lowStock,
	}, nil
}
