package risk

import (
	"fmt"

	"aegis/internal/model"
)

// ScorePositioning maps speculation indicators to a 0-10 positioning risk
// score. The VIX proxy carries the full allocation until CFTC positioning
// is wired in.
// TODO: score SP500NetSpeculative and TreasuryNetSpeculative once the CFTC
// commitment-of-traders feed is integrated.
func ScorePositioning(ind model.PositioningIndicators) model.DimensionResult {
	d := newDimension()

	if ind.VIXProxy != nil {
		pts, sig := scoreVIXPositioning(*ind.VIXProxy)
		d.add("vix_positioning", pts, sig)
	} else {
		d.missing("vix_positioning")
	}

	return d.result()
}

// scoreVIXPositioning is contrarian: a very low VIX means crowded
// complacency and scores highest; a panic spike scores moderately since the
// washout can mark a turn either way.
func scoreVIXPositioning(vix float64) (float64, string) {
	switch {
	case vix < 11:
		return 10.0, fmt.Sprintf("CRITICAL: VIX at extreme lows, market complacency (%.1f)", vix)
	case vix < 13:
		return 5.0, fmt.Sprintf("WARNING: VIX very low, complacency risk (%.1f)", vix)
	case vix < 15:
		return 2.0, fmt.Sprintf("WATCH: VIX low, some complacency (%.1f)", vix)
	case vix > 40:
		return 3.0, fmt.Sprintf("NOTE: VIX extreme, panic selling possible (%.1f)", vix)
	}
	return 0, ""
}
