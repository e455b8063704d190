package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/model"
)

func TestScoreRecession_AllNormal(t *testing.T) {
	res := ScoreRecession(model.RecessionIndicators{
		ClaimsVelocityYoY: model.Float(2.0),
		PMI:               model.Float(54.0),
		PMIPrev:           model.Float(53.5),
		YieldCurve10Y2Y:   model.Float(0.3),
		YieldCurve10Y3M:   model.Float(0.5),
		ConsumerSentiment: model.Float(95.0),
	})

	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Signals)
	for name, c := range res.Components {
		require.NotNil(t, c, "component %s should have data", name)
		assert.Equal(t, 0.0, *c)
	}
}

func TestScoreRecession_Warning(t *testing.T) {
	res := ScoreRecession(model.RecessionIndicators{
		ClaimsVelocityYoY: model.Float(12.0),
		PMI:               model.Float(48.5),
		PMIPrev:           model.Float(51.0), // regime cross
		YieldCurve10Y2Y:   model.Float(-0.6),
		YieldCurve10Y3M:   model.Float(-0.4),
		ConsumerSentiment: model.Float(72.0),
	})

	assert.Greater(t, res.Score, 7.0)
	assert.GreaterOrEqual(t, len(res.Signals), 3)

	critical := 0
	for _, s := range res.Signals {
		if strings.HasPrefix(s, "CRITICAL") {
			critical++
		}
	}
	assert.GreaterOrEqual(t, critical, 1, "expected at least one CRITICAL signal, got %v", res.Signals)
}

func TestScorePMIRegime_CrossBeatsLevel(t *testing.T) {
	// A cross just below 50 outranks sitting at the same level without one.
	crossPts, crossSig := scorePMIRegime(49.5, model.Float(50.2))
	assert.Equal(t, 3.0, crossPts)
	assert.Contains(t, crossSig, "crossed into contraction")

	noPrevPts, _ := scorePMIRegime(49.5, nil)
	assert.Equal(t, 1.5, noPrevPts)

	// Already in contraction last period: no cross, level bands apply.
	deepPts, deepSig := scorePMIRegime(42.0, model.Float(43.0))
	assert.Equal(t, 2.5, deepPts)
	assert.Contains(t, deepSig, "deep contraction")
}

func TestScoreYieldCurve_DualInversionCapped(t *testing.T) {
	pts, sig := scoreYieldCurve(model.Float(-1.2), model.Float(-0.8))
	assert.Equal(t, 2.0, pts, "deep dual inversion caps at 2.0")
	assert.Contains(t, sig, "CRITICAL")
	assert.Contains(t, sig, "Dual yield curve inversion")

	// Single shallow inversion, other curve missing.
	pts, sig = scoreYieldCurve(model.Float(-0.2), nil)
	assert.Equal(t, 0.75, pts)
	assert.Contains(t, sig, "WARNING")
}

func TestScoreCredit_MaxCombination(t *testing.T) {
	tests := []struct {
		name     string
		level    *float64
		velocity *float64
		want     float64
	}{
		{"velocity dominates", model.Float(450), model.Float(12.0), 6.0},
		{"level dominates", model.Float(850), model.Float(1.0), 6.0},
		{"level only scales to component cap", model.Float(650), nil, 4.0},
		{"velocity only", nil, model.Float(6.0), 3.0},
		{"both moderate takes the max", model.Float(450), model.Float(3.0), 2.0},
		{"both quiet", model.Float(300), model.Float(0.5), 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, _ := scoreHYSpread(tt.level, tt.velocity)
			assert.Equal(t, tt.want, pts)
		})
	}
}

func TestScoreCredit_CrisisConditions(t *testing.T) {
	res := ScoreCredit(model.CreditIndicators{
		HYSpread:            model.Float(900),
		HYSpreadVelocity20D: model.Float(15.0),
		IGSpreadBBB:         model.Float(450),
		TEDSpread:           model.Float(2.5),
		LendingStandards:    model.Float(40.0),
	})
	assert.Equal(t, 10.0, res.Score, "crisis inputs should hit the dimension cap")
}

func TestScoreCredit_NullPropagation(t *testing.T) {
	res := ScoreCredit(model.CreditIndicators{
		HYSpread: model.Float(350),
	})
	require.NotNil(t, res.Components["hy_spread_combined"])
	assert.Nil(t, res.Components["ig_spread"])
	assert.Nil(t, res.Components["ted_spread"])
	assert.Nil(t, res.Components["lending_standards"])
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Signals, "missing inputs must not emit signals")
	assert.True(t, res.Valid())
}

func TestScoreValuation_Bands(t *testing.T) {
	res := ScoreValuation(model.ValuationIndicators{
		ShillerCAPE:  model.Float(38.0),
		BuffettRatio: model.Float(180.0),
		ForwardPE:    model.Float(23.0),
	})
	assert.InDelta(t, 8.0, res.Score, 1e-9) // 3.5 + 3.0 + 1.5
	assert.Len(t, res.Signals, 3)
}

func TestScoreLiquidity_EmergencyEasingNotPenalized(t *testing.T) {
	res := ScoreLiquidity(model.LiquidityIndicators{
		FedFundsVelocity6M: model.Float(-2.5),
		M2GrowthYoY:        model.Float(6.0),
		VIX:                model.Float(16.0),
	})
	assert.Equal(t, 0.0, res.Score)
}

func TestScorePositioning_Contrarian(t *testing.T) {
	low := ScorePositioning(model.PositioningIndicators{VIXProxy: model.Float(10.5)})
	assert.Equal(t, 10.0, low.Score, "extreme complacency carries the full allocation")

	spike := ScorePositioning(model.PositioningIndicators{VIXProxy: model.Float(45.0)})
	assert.Equal(t, 3.0, spike.Score)

	normal := ScorePositioning(model.PositioningIndicators{VIXProxy: model.Float(18.0)})
	assert.Equal(t, 0.0, normal.Score)

	empty := ScorePositioning(model.PositioningIndicators{})
	assert.False(t, empty.Valid())
}

func TestDimensionCaps(t *testing.T) {
	// Extreme inputs across every dimension: scores stay within [0, 10] and
	// every component within its allocation.
	caps := map[string]map[string]float64{
		model.DimRecession: {
			"unemployment_velocity": 4.0, "pmi_regime": 3.0,
			"yield_curve": 2.0, "consumer_sentiment": 1.0,
		},
		model.DimCredit: {
			"hy_spread_combined": 6.0, "ig_spread": 2.0,
			"ted_spread": 1.0, "lending_standards": 1.0,
		},
		model.DimValuation: {
			"cape": 4.0, "buffett_indicator": 4.0, "forward_pe": 2.0,
		},
		model.DimLiquidity: {
			"fed_trajectory": 4.0, "m2_growth": 3.0, "vix": 3.0,
		},
		model.DimPositioning: {
			"vix_positioning": 10.0,
		},
	}

	results := map[string]model.DimensionResult{
		model.DimRecession: ScoreRecession(model.RecessionIndicators{
			ClaimsVelocityYoY: model.Float(50.0),
			PMI:               model.Float(30.0),
			PMIPrev:           model.Float(55.0),
			YieldCurve10Y2Y:   model.Float(-3.0),
			YieldCurve10Y3M:   model.Float(-3.0),
			ConsumerSentiment: model.Float(40.0),
		}),
		model.DimCredit: ScoreCredit(model.CreditIndicators{
			HYSpread:            model.Float(2000),
			HYSpreadVelocity20D: model.Float(100),
			IGSpreadBBB:         model.Float(1000),
			TEDSpread:           model.Float(5),
			LendingStandards:    model.Float(90),
		}),
		model.DimValuation: ScoreValuation(model.ValuationIndicators{
			ShillerCAPE:  model.Float(60),
			BuffettRatio: model.Float(300),
			ForwardPE:    model.Float(40),
		}),
		model.DimLiquidity: ScoreLiquidity(model.LiquidityIndicators{
			FedFundsVelocity6M: model.Float(5),
			M2GrowthYoY:        model.Float(-5),
			VIX:                model.Float(80),
		}),
		model.DimPositioning: ScorePositioning(model.PositioningIndicators{
			VIXProxy: model.Float(9),
		}),
	}

	for dim, res := range results {
		assert.GreaterOrEqual(t, res.Score, 0.0, dim)
		assert.LessOrEqual(t, res.Score, 10.0, dim)
		for name, cap := range caps[dim] {
			c, ok := res.Components[name]
			require.True(t, ok, "%s missing component %s", dim, name)
			require.NotNil(t, c, "%s/%s", dim, name)
			assert.GreaterOrEqual(t, *c, 0.0, "%s/%s", dim, name)
			assert.LessOrEqual(t, *c, cap, "%s/%s", dim, name)
		}
	}
}
