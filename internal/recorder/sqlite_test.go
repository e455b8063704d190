package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "aegis_test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func sampleAssessment(ts time.Time, score float64) *model.Assessment {
	return &model.Assessment{
		OverallScore: score,
		Tier:         model.TierGreen,
		Confidence: model.ConfidenceResult{
			Score: 89.3,
			Level: model.ConfidenceHigh,
		},
		DimensionScores: map[string]float64{
			model.DimRecession: score,
			model.DimCredit:    1.5,
			model.DimValuation: 2.0,
			model.DimLiquidity: 0.0,
		},
		ExcludedDimensions: []string{model.DimPositioning},
		GeneratedAt:        ts,
	}
}

func TestRecordAssessment_RoundTrip(t *testing.T) {
	r := newTestRecorder(t)

	base := time.Now().Add(-3 * time.Hour).Truncate(time.Second)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.RecordAssessment(sampleAssessment(
			base.Add(time.Duration(i)*time.Hour), float64(i))))
	}

	records, err := r.RecentScores(2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Oldest to newest, trimmed to the newest two.
	assert.Equal(t, 1.0, records[0].Overall)
	assert.Equal(t, 2.0, records[1].Overall)
	assert.True(t, records[0].Timestamp.Before(records[1].Timestamp))
	assert.Equal(t, model.TierGreen, records[1].Tier)

	// Excluded dimension comes back absent, not zero.
	_, ok := records[1].Dimension[model.DimPositioning]
	assert.False(t, ok)
	assert.Equal(t, 1.5, records[1].Dimension[model.DimCredit])
}

func TestRecordIndicators_RoundTrip(t *testing.T) {
	r := newTestRecorder(t)

	set := model.IndicatorSet{
		Recession: model.RecessionIndicators{
			PMI:             model.Float(48.5),
			YieldCurve10Y2Y: model.Float(-0.3),
		},
		Credit: model.CreditIndicators{
			HYSpread: model.Float(620),
		},
		Valuation: model.ValuationIndicators{
			ShillerCAPE:     model.Float(36.8),
			ShillerEarnings: model.Float(191.5),
		},
	}
	require.NoError(t, r.RecordIndicators(set))

	sets, err := r.RecentIndicators(13)
	require.NoError(t, err)
	require.Len(t, sets, 1)

	got := sets[0]
	require.NotNil(t, got.Recession.PMI)
	assert.Equal(t, 48.5, *got.Recession.PMI)
	require.NotNil(t, got.Credit.HYSpread)
	assert.Equal(t, 620.0, *got.Credit.HYSpread)
	require.NotNil(t, got.Valuation.ShillerEarnings)
	assert.Equal(t, 191.5, *got.Valuation.ShillerEarnings)

	// Nulls survive the round trip as nils, not zeros.
	assert.Nil(t, got.Recession.ClaimsVelocityYoY)
	assert.Nil(t, got.Liquidity.VIX)
	assert.Nil(t, got.Positioning.VIXProxy)
}

func TestRecentScores_Empty(t *testing.T) {
	r := newTestRecorder(t)

	records, err := r.RecentScores(10)
	require.NoError(t, err)
	assert.Empty(t, records)

	sets, err := r.RecentIndicators(10)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestRecordAlert(t *testing.T) {
	r := newTestRecorder(t)

	require.NoError(t, r.RecordAlert(&AlertEvent{
		Tier:    model.TierRed,
		Reason:  "red_threshold",
		Message: "overall score 8.2",
	}))

	var count int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM alerts`).Scan(&count))
	assert.Equal(t, 1, count)
}
