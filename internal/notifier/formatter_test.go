package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"aegis/internal/alert"
	"aegis/internal/model"
)

func reportAssessment() *model.Assessment {
	return &model.Assessment{
		OverallScore: 6.8,
		Tier:         model.TierYellow,
		Confidence: model.ConfidenceResult{
			Score: 89.3,
			Level: model.ConfidenceHigh,
		},
		DimensionScores: map[string]float64{
			model.DimRecession: 7.5,
			model.DimCredit:    6.0,
			model.DimValuation: 8.0,
			model.DimLiquidity: 4.0,
		},
		NormalizedWeights: map[string]float64{
			model.DimRecession: 0.30 / 0.90,
			model.DimCredit:    0.25 / 0.90,
			model.DimValuation: 0.20 / 0.90,
			model.DimLiquidity: 0.15 / 0.90,
		},
		ExcludedDimensions: []string{model.DimPositioning},
		Warnings: map[string]model.Warning{
			model.WarnValuationExtreme: {
				Active:  true,
				Level:   "EXTREME",
				Message: "EXTREME: Valuations at historic extremes",
			},
			model.WarnRealRate: {},
		},
		AllSignals: map[string][]string{
			model.DimRecession: {"CRITICAL: Dual yield curve inversion"},
			model.DimValuation: {"WARNING: CAPE elevated at 36.8"},
		},
		GeneratedAt: time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
	}
}

func TestFormatAssessment(t *testing.T) {
	change := 1.2
	msg := FormatAssessment(reportAssessment(), alert.Trends{
		Change4W:   &change,
		Dimensions: map[string]string{model.DimRecession: alert.TrendUpSharp},
	})

	assert.Contains(t, msg, "6.80 / 10")
	assert.Contains(t, msg, "2026-08-21")
	assert.Contains(t, msg, "🟡")
	assert.Contains(t, msg, "+1.20")
	assert.Contains(t, msg, "Recession: 7.50")
	assert.Contains(t, msg, "Positioning: no data")
	assert.Contains(t, msg, "EXTREME: Valuations at historic extremes")
	assert.Contains(t, msg, "CRITICAL: Dual yield curve inversion")
	// Inactive warnings never render.
	assert.NotContains(t, msg, model.WarnRealRate)
}

func TestFormatAlert(t *testing.T) {
	a := reportAssessment()
	msg := FormatAlert(a, alert.Decision{
		ShouldAlert: true,
		Tier:        a.Tier,
		Reason:      "overall score crossed into YELLOW at 6.80",
		Triggers:    []string{"overall score crossed into YELLOW at 6.80"},
	})

	assert.Contains(t, msg, "RISK ALERT")
	assert.Contains(t, msg, "crossed into YELLOW")
	assert.Contains(t, msg, "CRITICAL: Dual yield curve inversion")
	assert.Contains(t, msg, "No data: positioning")
}
