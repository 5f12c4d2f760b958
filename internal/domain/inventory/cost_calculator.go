package inventory

import "github.com/shopspring/decimal"

// CostScale decimales del costo promedio (redondeo half-up).
const CostScale = 2

// MovingAverageCost calcula el nuevo costo promedio móvil de una variante al recibir mercancía.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * PrecioEntrada)) / (StockActual + CantEntrada)
// Sin stock ni valor previos el costo es directamente el precio de entrada.
// Si el nuevo stock queda en 0 el costo no cambia.
func MovingAverageCost(oldStock int, oldCost decimal.Decimal, importQty int, importPrice decimal.Decimal) decimal.Decimal {
	newStock := oldStock + importQty
	if newStock <= 0 {
		return oldCost
	}
	if oldStock <= 0 && !oldCost.IsPositive() {
		return importPrice
	}
	oldValue := decimal.NewFromInt(int64(oldStock)).Mul(oldCost)
	importValue := decimal.NewFromInt(int64(importQty)).Mul(importPrice)
	return oldValue.Add(importValue).DivRound(decimal.NewFromInt(int64(newStock)), CostScale)
}
