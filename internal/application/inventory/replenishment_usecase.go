package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-backoffice/internal/application/dto"
	"github.com/jhoicas/tienda-backoffice/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de variantes con stock bajo.
// Usa el mismo umbral que el contador del dashboard.
type ReplenishmentUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	threshold     int
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(analyticsRepo repository.AnalyticsRepository, threshold int) *ReplenishmentUseCase {
	if threshold <= 0 {
		threshold = 10
	}
	return &ReplenishmentUseCase{analyticsRepo: analyticsRepo, threshold: threshold}
}

// GenerateReplenishmentList devuelve las variantes bajo el umbral con la cantidad sugerida
// para llegar a 1.5 × umbral, priorizadas por margen bruto y luego por déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	variants, err := uc.analyticsRepo.ListLowStock(ctx, uc.threshold)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	hundred := decimal.NewFromInt(100)
	idealStock := (uc.threshold*3 + 1) / 2 // ceil(1.5 × umbral)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(variants))
	for _, v := range variants {
		qty := idealStock - v.StockQuantity
		if qty < 0 {
			qty = 0
		}
		var marginPct decimal.Decimal
		if v.SellPrice.IsPositive() {
			marginPct = v.SellPrice.Sub(v.CostPrice).Div(v.SellPrice).Mul(hundred).Round(2)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			VariantID:          v.ID,
			SKU:                v.SKU,
			CurrentStock:       v.StockQuantity,
			IdealStock:         idealStock,
			SuggestedOrderQty:  qty,
			UnitCost:           v.CostPrice,
			EstimatedOrderCost: v.CostPrice.Mul(decimal.NewFromInt(int64(qty))),
			GrossMarginPct:     marginPct,
		})
	}

	// Mayor margen primero; a igual margen, mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
