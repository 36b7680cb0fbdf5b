package pricing

import (
	"testing"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitPrice(t *testing.T) {
	base := decimal.NewFromInt(2500)

	testCases := []struct {
		name    string
		protein model.Protein
		sides   []model.ExtraSide
		want    int64
	}{
		{"base only", model.ProteinNone, nil, 2500},
		{"fried chicken is free", model.ProteinFriedChicken, nil, 2500},
		{"fish and plantain", model.ProteinGrilledFish, []model.ExtraSide{model.SideFriedPlantain}, 3300},
		{"beef all sides", model.ProteinBeef, []model.ExtraSide{model.SideFriedPlantain, model.SideColeslaw, model.SideExtraPepperSauce}, 3800},
		{"unknown protein", model.Protein("LOBSTER"), nil, 2500},
		{"unknown side", model.ProteinNone, []model.ExtraSide{"CAVIAR", model.SideColeslaw}, 2700},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := UnitPrice(base, tc.protein, tc.sides)
			assert.True(t, decimal.NewFromInt(tc.want).Equal(got), "got %s", got)
		})
	}
}

func TestKnownKeys(t *testing.T) {
	assert.True(t, IsKnownProtein(model.ProteinBeef))
	assert.False(t, IsKnownProtein(model.ProteinNone))
	assert.True(t, IsKnownSide(model.SideColeslaw))
	assert.False(t, IsKnownSide("CAVIAR"))
}

func TestCalculateOrderTotals(t *testing.T) {
	rates := Rates{
		DeliveryFee:    decimal.NewFromInt(500),
		ServiceFeeRate: decimal.RequireFromString("0.05"),
		TaxRate:        decimal.RequireFromString("0.075"),
	}

	t.Run("no promo", func(t *testing.T) {
		totals := CalculateOrderTotals(decimal.NewFromInt(9900), decimal.Zero, rates)
		assert.Equal(t, "495", totals.ServiceFee.String())
		assert.Equal(t, "500", totals.DeliveryFee.String())
		assert.Equal(t, "817.125", totals.Tax.String())
		assert.Equal(t, "11712.125", totals.Total.String())
	})

	t.Run("discount before tax", func(t *testing.T) {
		totals := CalculateOrderTotals(decimal.NewFromInt(9900), decimal.NewFromInt(990), rates)
		// (9900 - 990 + 495 + 500) * 0.075
		assert.Equal(t, "742.875", totals.Tax.String())
		assert.Equal(t, "10647.875", totals.Total.String())
	})
}
