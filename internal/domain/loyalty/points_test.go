package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
)

func TestPointsEarned(t *testing.T) {
	assert.Equal(t, 2, PointsEarned(decimal.NewFromInt(2500), DefaultPointsPerUnit))
	assert.Equal(t, 0, PointsEarned(decimal.NewFromInt(999), DefaultPointsPerUnit))
	assert.Equal(t, 1, PointsEarned(decimal.RequireFromString("1999.99"), DefaultPointsPerUnit))
	assert.Equal(t, 0, PointsEarned(decimal.NewFromInt(-5000), DefaultPointsPerUnit))
	assert.Equal(t, 0, PointsEarned(decimal.NewFromInt(5000), 0))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		balance int
		want    string
	}{
		{0, entity.TierSilver},
		{950, entity.TierSilver},
		{999, entity.TierSilver},
		{1000, entity.TierGold},
		{1050, entity.TierGold},
		{4950, entity.TierGold},
		{5000, entity.TierDiamond},
		{5050, entity.TierDiamond},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DefaultTiers.TierFor(tc.balance), "saldo %d", tc.balance)
	}
}
