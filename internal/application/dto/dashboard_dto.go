package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen del back-office.
type DashboardSummaryDTO struct {
	TotalOrders       int               `json:"total_orders"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	OrderStatusCounts map[string]int    `json:"order_status_counts"`
	RevenueLast7Days  []DailyRevenueDTO `json:"revenue_last_7_days"`
	LowStockVariants  int               `json:"low_stock_variants"`
}

// DailyRevenueDTO ingresos de un día (YYYY-MM-DD).
type DailyRevenueDTO struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
}
