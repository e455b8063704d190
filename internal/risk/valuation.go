package risk

import "aegis/internal/model"

// Valuation component point allocations: CAPE 4.0, Buffett indicator 4.0,
// forward P/E 2.0. CAPE cutoffs are calibrated from 2000-2024 history
// (normal p90 ~31, pre-crash median ~37, pre-crash max ~44).

var capeBands = []band{
	{40, 4.0, "CRITICAL: CAPE at bubble levels (%.1f, historical avg ~17)"},
	{35, 3.5, "WARNING: CAPE very elevated (%.1f)"},
	{30, 2.5, "WATCH: CAPE elevated (%.1f)"},
	{25, 1.0, ""},
}

var buffettBands = []band{
	{200, 4.0, "CRITICAL: Market Cap/GDP at extreme levels (%.0f%%, fair value ~100%%)"},
	{150, 3.0, "WARNING: Market Cap/GDP very elevated (%.0f%%)"},
	{120, 2.0, "WATCH: Market Cap/GDP elevated (%.0f%%)"},
	{100, 1.0, ""},
}

var forwardPEBands = []band{
	{25, 2.0, "WARNING: Forward P/E very high (%.1f, historical avg ~18)"},
	{22, 1.5, "WATCH: Forward P/E elevated (%.1f)"},
	{18, 0.5, ""},
}

// ScoreValuation maps valuation indicators to a 0-10 valuation extremes score.
func ScoreValuation(ind model.ValuationIndicators) model.DimensionResult {
	d := newDimension()

	if ind.ShillerCAPE != nil {
		pts, sig := evalAbove(capeBands, *ind.ShillerCAPE)
		d.add("cape", pts, sig)
	} else {
		d.missing("cape")
	}

	if ind.BuffettRatio != nil {
		pts, sig := evalAbove(buffettBands, *ind.BuffettRatio)
		d.add("buffett_indicator", pts, sig)
	} else {
		d.missing("buffett_indicator")
	}

	if ind.ForwardPE != nil {
		pts, sig := evalAbove(forwardPEBands, *ind.ForwardPE)
		d.add("forward_pe", pts, sig)
	} else {
		d.missing("forward_pe")
	}

	return d.result()
}
