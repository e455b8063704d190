package risk

import (
	"fmt"

	"aegis/internal/model"
)

// Liquidity component point allocations: Fed trajectory 4.0, M2 growth 3.0,
// VIX 3.0. Rapid tightening is the risk; emergency easing is deliberately
// not penalized even though it often accompanies a crisis.

var fedTrajectoryBands = []band{
	{2.0, 4.0, "CRITICAL: Fed rapidly tightening (%+.1fpp in 6 months)"},
	{1.0, 2.0, "WARNING: Fed tightening policy (%+.1fpp in 6 months)"},
	{0.5, 1.0, "WATCH: Fed gradually tightening (%+.1fpp)"},
}

var m2GrowthBands = []band{
	{0, 3.0, "CRITICAL: M2 contracting (%.1f%% YoY)"},
	{2, 2.0, "WARNING: M2 growth very low (%.1f%% YoY)"},
	{4, 1.0, "WATCH: M2 growth below normal (%.1f%% YoY)"},
}

// ScoreLiquidity maps monetary and volatility indicators to a 0-10
// liquidity conditions score.
func ScoreLiquidity(ind model.LiquidityIndicators) model.DimensionResult {
	d := newDimension()

	if ind.FedFundsVelocity6M != nil {
		pts, sig := evalAbove(fedTrajectoryBands, *ind.FedFundsVelocity6M)
		d.add("fed_trajectory", pts, sig)
	} else {
		d.missing("fed_trajectory")
	}

	if ind.M2GrowthYoY != nil {
		pts, sig := evalBelow(m2GrowthBands, *ind.M2GrowthYoY)
		d.add("m2_growth", pts, sig)
	} else {
		d.missing("m2_growth")
	}

	if ind.VIX != nil {
		pts, sig := scoreVIXStress(*ind.VIX)
		d.add("vix", pts, sig)
	} else {
		d.missing("vix")
	}

	return d.result()
}

// scoreVIXStress reads the VIX as a liquidity stress proxy. A very low VIX
// scores zero here but still gets flagged; complacency is scored by the
// positioning dimension instead.
func scoreVIXStress(vix float64) (float64, string) {
	switch {
	case vix > 40:
		return 3.0, fmt.Sprintf("CRITICAL: VIX at panic levels (%.1f)", vix)
	case vix > 30:
		return 2.0, fmt.Sprintf("WARNING: VIX elevated, market stress (%.1f)", vix)
	case vix > 20:
		return 1.0, fmt.Sprintf("WATCH: VIX moderately elevated (%.1f)", vix)
	case vix < 12:
		return 0, fmt.Sprintf("NOTE: VIX very low, potential complacency (%.1f)", vix)
	}
	return 0, ""
}
