// Package loyalty reglas puras del programa de puntos: acumulación y nivel de membresía.
package loyalty

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

// DefaultPointsPerUnit unidades monetarias por punto (1000 = 1 punto).
const DefaultPointsPerUnit = 1000

// TierThresholds saldos mínimos por nivel. Sin histéresis: el nivel depende solo del saldo actual.
type TierThresholds struct {
	Gold    int
	Diamond int
}

// DefaultTiers umbrales por defecto (GOLD >= 1000, DIAMOND >= 5000).
var DefaultTiers = TierThresholds{Gold: 1000, Diamond: 5000}

// TierFor deriva el nivel de membresía del saldo.
func (t TierThresholds) TierFor(balance int) string {
	switch {
	case balance >= t.Diamond:
		return entity.TierDiamond
	case balance >= t.Gold:
		return entity.TierGold
	default:
		return entity.TierSilver
	}
}

// PointsEarned floor(finalTotal / pointsPerUnit). Devuelve 0 para totales negativos o configuración inválida.
func PointsEarned(finalTotal decimal.Decimal, pointsPerUnit int) int {
	if pointsPerUnit <= 0 || !finalTotal.IsPositive() {
		return 0
	}
	return int(finalTotal.Div(decimal.NewFromInt(int64(pointsPerUnit))).Floor().IntPart())
}
