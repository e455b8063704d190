package risk

import (
	"fmt"
	"math"
	"strings"

	"aegis/internal/model"
)

// Recession component point allocations: unemployment velocity 4.0, PMI
// regime 3.0, yield curve 2.0, consumer sentiment 1.0. Rate of change beats
// absolute levels for leading signals, hence the velocity-heavy weighting.

var claimsVelocityBands = []band{
	{15.0, 4.0, "CRITICAL: Unemployment claims spiking %+.1f%% YoY"},
	{8.0, 2.0, "WARNING: Unemployment claims rising %+.1f%% YoY"},
	{3.0, 1.0, "WATCH: Unemployment claims trending up %+.1f%% YoY"},
}

var sentimentBands = []band{
	{70.0, 1.0, "WATCH: Consumer sentiment very low (%.1f)"},
	{80.0, 0.5, "WATCH: Consumer sentiment weak (%.1f)"},
}

// ScoreRecession maps leading economic indicators to a 0-10 recession risk
// score. Missing inputs degrade the component to nil, never to zero risk.
func ScoreRecession(ind model.RecessionIndicators) model.DimensionResult {
	d := newDimension()

	if ind.ClaimsVelocityYoY != nil {
		pts, sig := evalAbove(claimsVelocityBands, *ind.ClaimsVelocityYoY)
		d.add("unemployment_velocity", pts, sig)
	} else {
		d.missing("unemployment_velocity")
	}

	if ind.PMI != nil {
		pts, sig := scorePMIRegime(*ind.PMI, ind.PMIPrev)
		d.add("pmi_regime", pts, sig)
	} else {
		d.missing("pmi_regime")
	}

	if ind.YieldCurve10Y2Y != nil || ind.YieldCurve10Y3M != nil {
		pts, sig := scoreYieldCurve(ind.YieldCurve10Y2Y, ind.YieldCurve10Y3M)
		d.add("yield_curve", pts, sig)
	} else {
		d.missing("yield_curve")
	}

	if ind.ConsumerSentiment != nil {
		pts, sig := evalBelow(sentimentBands, *ind.ConsumerSentiment)
		d.add("consumer_sentiment", pts, sig)
	} else {
		d.missing("consumer_sentiment")
	}

	return d.result()
}

// scorePMIRegime treats the expansion-to-contraction cross as the highest
// signal: crossing 50 from above outranks sitting deep in a dormant band.
func scorePMIRegime(cur float64, prev *float64) (float64, string) {
	switch {
	case prev != nil && cur < 50 && *prev >= 50:
		return 3.0, fmt.Sprintf("CRITICAL: PMI crossed into contraction (was %.1f, now %.1f)", *prev, cur)
	case cur < 45:
		return 2.5, fmt.Sprintf("WARNING: PMI in deep contraction (%.1f)", cur)
	case cur < 50:
		return 1.5, fmt.Sprintf("WATCH: PMI in contraction zone (%.1f)", cur)
	case cur < 52:
		return 1.0, fmt.Sprintf("WATCH: PMI slowing, approaching contraction (%.1f)", cur)
	}
	return 0, ""
}

// scoreYieldCurve scores the traditional 10Y-2Y and near-term 10Y-3M curves
// together. Either spread alone can contribute; a dual inversion adds a
// bonus and upgrades the signal. Capped at 2.0.
func scoreYieldCurve(s10y2y, s10y3m *float64) (float64, string) {
	score := 0.0
	var inversions []string

	if s10y2y != nil {
		switch {
		case *s10y2y < -0.5:
			score += 1.5
			inversions = append(inversions, fmt.Sprintf("10Y-2Y deeply inverted (%.2f%%)", *s10y2y))
		case *s10y2y < 0:
			score += 0.75
			inversions = append(inversions, fmt.Sprintf("10Y-2Y inverted (%.2f%%)", *s10y2y))
		}
	}

	if s10y3m != nil {
		switch {
		case *s10y3m < -0.3:
			score += 1.0
			inversions = append(inversions, fmt.Sprintf("10Y-3M deeply inverted (%.2f%%)", *s10y3m))
		case *s10y3m < 0:
			score += 0.5
			inversions = append(inversions, fmt.Sprintf("10Y-3M inverted (%.2f%%)", *s10y3m))
		}
	}

	signal := ""
	if s10y2y != nil && s10y3m != nil && *s10y2y < 0 && *s10y3m < 0 {
		score += 0.5
		signal = "CRITICAL: Dual yield curve inversion - " + strings.Join(inversions, ", ")
	} else if len(inversions) > 0 {
		signal = "WARNING: " + strings.Join(inversions, ", ")
	}

	return math.Min(score, 2.0), signal
}
