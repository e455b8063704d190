package risk

import "aegis/internal/model"

// Credit component point allocations: HY spread (level+velocity combined)
// 6.0, IG spread 2.0, TED spread 1.0, lending standards 1.0. All spread
// level cutoffs are in basis points, velocities in bps/day.

var hyVelocityBands = []band{
	{10.0, 6.0, "CRITICAL: HY spreads widening rapidly (%.1f bps/day)"},
	{5.0, 3.0, "WARNING: HY spreads widening (%.1f bps/day)"},
	{2.0, 1.5, "WATCH: HY spreads trending wider (%.1f bps/day)"},
}

var hyLevelBands = []band{
	{800, 6.0, "CRITICAL: HY spreads at crisis levels (%.0f bps)"},
	{600, 4.0, "WARNING: HY spreads elevated (%.0f bps)"},
	{400, 2.0, "WATCH: HY spreads moderately wide (%.0f bps)"},
}

var igSpreadBands = []band{
	{400, 2.0, "CRITICAL: IG spreads at stress levels (%.0f bps)"},
	{250, 1.5, "WARNING: IG spreads elevated (%.0f bps)"},
	{150, 0.5, ""},
}

var tedSpreadBands = []band{
	{2.0, 1.0, "CRITICAL: TED spread at crisis levels (%.2f%%)"},
	{1.0, 0.5, "WARNING: TED spread elevated (%.2f%%)"},
}

var lendingBands = []band{
	{30, 1.0, "WARNING: Banks severely tightening lending (%.0f%% net)"},
	{15, 0.5, "WATCH: Banks tightening lending standards (%.0f%% net)"},
}

// ScoreCredit maps credit market indicators to a 0-10 credit stress score.
func ScoreCredit(ind model.CreditIndicators) model.DimensionResult {
	d := newDimension()

	if ind.HYSpread != nil || ind.HYSpreadVelocity20D != nil {
		pts, sig := scoreHYSpread(ind.HYSpread, ind.HYSpreadVelocity20D)
		d.add("hy_spread_combined", pts, sig)
	} else {
		d.missing("hy_spread_combined")
	}

	if ind.IGSpreadBBB != nil {
		pts, sig := evalAbove(igSpreadBands, *ind.IGSpreadBBB)
		d.add("ig_spread", pts, sig)
	} else {
		d.missing("ig_spread")
	}

	if ind.TEDSpread != nil {
		pts, sig := evalAbove(tedSpreadBands, *ind.TEDSpread)
		d.add("ted_spread", pts, sig)
	} else {
		d.missing("ted_spread")
	}

	if ind.LendingStandards != nil {
		pts, sig := evalAbove(lendingBands, *ind.LendingStandards)
		d.add("lending_standards", pts, sig)
	} else {
		d.missing("lending_standards")
	}

	return d.result()
}

// scoreHYSpread combines the level and velocity reads by taking the higher
// of the two independent sub-scores. Either a high absolute level or a
// rapid widening alone is the same crisis signal; blending them would
// dilute a pure velocity spike during a fast crash.
func scoreHYSpread(level, velocity *float64) (float64, string) {
	var velScore, lvlScore float64
	var velSig, lvlSig string

	if velocity != nil {
		velScore, velSig = evalAbove(hyVelocityBands, *velocity)
	}
	if level != nil {
		lvlScore, lvlSig = evalAbove(hyLevelBands, *level)
	}

	// Winning side supplies the signal; velocity wins ties.
	if velocity != nil && (level == nil || velScore >= lvlScore) {
		return velScore, velSig
	}
	return lvlScore, lvlSig
}
