package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMovingAverageCost(t *testing.T) {
	tests := []struct {
		name        string
		oldStock    int
		oldCost     decimal.Decimal
		importQty   int
		importPrice decimal.Decimal
		want        string
	}{
		{"promedio simple", 10, d("100"), 10, d("120"), "110"},
		{"sin stock previo usa precio de entrada", 0, decimal.Zero, 5, d("37.5"), "37.5"},
		{"stock cero con costo previo", 0, d("80"), 4, d("100"), "100"},
		{"redondeo half-up a 2 decimales", 3, d("10"), 3, d("10.01"), "10.01"},
		{"redondeo hacia arriba en .005", 1, d("0.01"), 1, d("0"), "0.01"},
		{"división periódica", 2, d("10"), 1, d("11"), "10.33"},
		{"stock previo sin costo registrado", 10, decimal.Zero, 10, d("50"), "25"},
		{"nuevo stock cero conserva costo", 0, d("42"), 0, d("99"), "42"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MovingAverageCost(tc.oldStock, tc.oldCost, tc.importQty, tc.importPrice)
			assert.True(t, got.Equal(d(tc.want)), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}
