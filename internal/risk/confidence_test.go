package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/model"
)

func scoreAll(set model.IndicatorSet) map[string]model.DimensionResult {
	return map[string]model.DimensionResult{
		model.DimRecession:   ScoreRecession(set.Recession),
		model.DimCredit:      ScoreCredit(set.Credit),
		model.DimValuation:   ScoreValuation(set.Valuation),
		model.DimLiquidity:   ScoreLiquidity(set.Liquidity),
		model.DimPositioning: ScorePositioning(set.Positioning),
	}
}

func TestEstimateConfidence_FullData(t *testing.T) {
	c := EstimateConfidence(scoreAll(normalSet()))

	assert.Equal(t, 100.0, c.Score)
	assert.Equal(t, model.ConfidenceHigh, c.Level)
	assert.Equal(t, 40.0, c.Breakdown.DimensionCoverage)
	assert.Equal(t, 40.0, c.Breakdown.ComponentCompleteness)
	assert.Equal(t, 20.0, c.Breakdown.KeyIndicatorBonus)
	assert.Equal(t, 5, c.Breakdown.ValidDimensions)
	assert.Equal(t, c.Breakdown.ComponentsTotal, c.Breakdown.ComponentsPresent)
	assert.Equal(t, 5, c.Breakdown.KeyIndicatorsPresent)
}

func TestEstimateConfidence_OneDimensionDark(t *testing.T) {
	set := normalSet()
	set.Positioning = model.PositioningIndicators{}

	c := EstimateConfidence(scoreAll(set))

	// 4/5 dimensions and 14/15 components; all key indicators intact.
	assert.Equal(t, 32.0, c.Breakdown.DimensionCoverage)
	assert.InDelta(t, 37.3, c.Breakdown.ComponentCompleteness, 1e-9)
	assert.Equal(t, 20.0, c.Breakdown.KeyIndicatorBonus)
	assert.Equal(t, 89.3, c.Score)
	assert.Equal(t, model.ConfidenceHigh, c.Level)
}

func TestEstimateConfidence_Medium(t *testing.T) {
	set := normalSet()
	set.Liquidity = model.LiquidityIndicators{}
	set.Positioning = model.PositioningIndicators{}

	c := EstimateConfidence(scoreAll(set))

	// 3/5 dims = 24, 11/15 components = 29.3, 4/5 keys = 16.
	assert.Equal(t, 69.3, c.Score)
	assert.Equal(t, model.ConfidenceMedium, c.Level)
	assert.Equal(t, 4, c.Breakdown.KeyIndicatorsPresent)
}

func TestEstimateConfidence_Low(t *testing.T) {
	c := EstimateConfidence(scoreAll(model.IndicatorSet{
		Credit: model.CreditIndicators{TEDSpread: model.Float(0.4)},
	}))

	require.Equal(t, model.ConfidenceLow, c.Level)
	assert.Equal(t, 1, c.Breakdown.ValidDimensions)
	assert.Equal(t, 1, c.Breakdown.ComponentsPresent)
	assert.Equal(t, 0, c.Breakdown.KeyIndicatorsPresent)
	assert.Less(t, c.Score, 60.0)
}
