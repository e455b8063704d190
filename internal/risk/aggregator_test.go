package risk

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/model"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	agg, err := NewAggregator(DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)
	return agg
}

// normalSet populates all five dimensions with benign readings.
func normalSet() model.IndicatorSet {
	return model.IndicatorSet{
		Recession: model.RecessionIndicators{
			ClaimsVelocityYoY: model.Float(2.0),
			PMI:               model.Float(54.0),
			PMIPrev:           model.Float(53.5),
			YieldCurve10Y2Y:   model.Float(0.3),
			YieldCurve10Y3M:   model.Float(0.5),
			ConsumerSentiment: model.Float(95.0),
		},
		Credit: model.CreditIndicators{
			HYSpread:            model.Float(350),
			HYSpreadVelocity20D: model.Float(1.0),
			IGSpreadBBB:         model.Float(120),
			TEDSpread:           model.Float(0.3),
			LendingStandards:    model.Float(5.0),
		},
		Valuation: model.ValuationIndicators{
			ShillerCAPE:  model.Float(22.0),
			BuffettRatio: model.Float(95.0),
			ForwardPE:    model.Float(16.0),
		},
		Liquidity: model.LiquidityIndicators{
			FedFundsRate:       model.Float(2.5),
			FedFundsVelocity6M: model.Float(0.1),
			CPIInflationYoY:    model.Float(2.2),
			M2GrowthYoY:        model.Float(6.0),
			VIX:                model.Float(16.0),
		},
		Positioning: model.PositioningIndicators{
			VIXProxy: model.Float(16.0),
		},
	}
}

func TestNewAggregator_ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weights sum too low", func(c *Config) { c.Weights[model.DimRecession] = 0.10 }},
		{"weights sum too high", func(c *Config) { c.Weights[model.DimCredit] = 0.60 }},
		{"missing dimension weight", func(c *Config) { delete(c.Weights, model.DimLiquidity) }},
		{"negative weight", func(c *Config) {
			c.Weights[model.DimPositioning] = -0.10
			c.Weights[model.DimRecession] = 0.50
		}},
		{"red below yellow", func(c *Config) { c.RedThreshold = 5.0 }},
		{"red equals yellow", func(c *Config) { c.RedThreshold = c.YellowThreshold }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := NewAggregator(cfg, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestAssess_NormalMarket(t *testing.T) {
	agg := newTestAggregator(t)

	a, err := agg.Assess(normalSet(), nil)
	require.NoError(t, err)

	assert.Equal(t, model.TierGreen, a.Tier)
	assert.Empty(t, a.ExcludedDimensions)
	assert.Len(t, a.DimensionScores, 5)

	sum := 0.0
	for _, w := range a.NormalizedWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	for name, w := range a.Warnings {
		assert.False(t, w.Active, "warning %s should be inactive", name)
	}
	assert.Equal(t, model.ConfidenceHigh, a.Confidence.Level)
}

func TestAssess_TotalDataLoss(t *testing.T) {
	agg := newTestAggregator(t)

	_, err := agg.Assess(model.IndicatorSet{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAssess_PartialExclusion(t *testing.T) {
	agg := newTestAggregator(t)

	set := normalSet()
	set.Positioning = model.PositioningIndicators{}

	a, err := agg.Assess(set, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{model.DimPositioning}, a.ExcludedDimensions)
	assert.NotContains(t, a.NormalizedWeights, model.DimPositioning)

	sum := 0.0
	for _, w := range a.NormalizedWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Re-normalization preserves relative ordering: recession still heaviest.
	assert.Greater(t, a.NormalizedWeights[model.DimRecession], a.NormalizedWeights[model.DimCredit])
	assert.InDelta(t, 0.30/0.90, a.NormalizedWeights[model.DimRecession], 1e-9)
}

func TestAssess_OverallScoreIdentity(t *testing.T) {
	agg := newTestAggregator(t)

	set := normalSet()
	set.Valuation.ShillerCAPE = model.Float(41.0)
	set.Valuation.BuffettRatio = model.Float(210.0)
	set.Credit.HYSpread = model.Float(650)

	a, err := agg.Assess(set, nil)
	require.NoError(t, err)

	want := 0.0
	for dim, score := range a.DimensionScores {
		want += score * a.NormalizedWeights[dim]
	}
	assert.InDelta(t, round2(want), a.OverallScore, 1e-9)
}

func TestTier_Monotonic(t *testing.T) {
	agg := newTestAggregator(t)

	prev := agg.tier(0)
	for s := 0.0; s <= 10.0; s += 0.1 {
		cur := agg.tier(s)
		assert.GreaterOrEqual(t, cur.Rank(), prev.Rank(), "tier regressed at score %.1f", s)
		prev = cur
	}
	assert.Equal(t, model.TierGreen, agg.tier(6.49))
	assert.Equal(t, model.TierYellow, agg.tier(6.5))
	assert.Equal(t, model.TierYellow, agg.tier(7.99))
	assert.Equal(t, model.TierRed, agg.tier(8.0))
}

func TestAssess_ExclusionIffAllComponentsNil(t *testing.T) {
	agg := newTestAggregator(t)

	// One surviving credit input keeps the dimension in play.
	set := model.IndicatorSet{
		Credit: model.CreditIndicators{TEDSpread: model.Float(0.4)},
	}
	a, err := agg.Assess(set, nil)
	require.NoError(t, err)

	assert.NotContains(t, a.ExcludedDimensions, model.DimCredit)
	assert.Len(t, a.ExcludedDimensions, 4)
	assert.InDelta(t, 1.0, a.NormalizedWeights[model.DimCredit], 1e-9)
	assert.Equal(t, model.ConfidenceLow, a.Confidence.Level)
}

func TestAssess_WarningsDoNotAffectScore(t *testing.T) {
	agg := newTestAggregator(t)

	base := normalSet()
	withWarning := normalSet()
	withWarning.Recession.YieldCurve10Y2Y = model.Float(-0.3)
	withWarning.Credit.HYSpread = model.Float(700)

	a, err := agg.Assess(withWarning, nil)
	require.NoError(t, err)
	b, err := agg.Assess(base, nil)
	require.NoError(t, err)

	assert.True(t, a.Warnings[model.WarnDoubleInversion].Active)
	assert.False(t, b.Warnings[model.WarnDoubleInversion].Active)
	// The warning itself adds nothing beyond what the dimension ladders
	// already scored for the moved indicators.
	assert.Equal(t, a.OverallScore, func() float64 {
		sum := 0.0
		for dim, score := range a.DimensionScores {
			sum += score * a.NormalizedWeights[dim]
		}
		return round2(sum)
	}())
}
