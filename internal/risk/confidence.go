package risk

import "aegis/internal/model"

// keyIndicators are the hand-picked critical components whose presence earns
// the confidence bonus: the single most predictive input per scoring area.
var keyIndicators = []struct {
	dim       string
	component string
}{
	{model.DimRecession, "unemployment_velocity"},
	{model.DimRecession, "yield_curve"},
	{model.DimCredit, "hy_spread_combined"},
	{model.DimValuation, "cape"},
	{model.DimLiquidity, "fed_trajectory"},
}

// EstimateConfidence scores how complete the input data behind an
// assessment was, 0-100. Three additive factors: dimension coverage (0-40),
// component completeness (0-40), key-indicator bonus (0-20).
func EstimateConfidence(results map[string]model.DimensionResult) model.ConfidenceResult {
	valid := 0
	present, total := 0, 0
	for _, dim := range model.Dimensions() {
		r := results[dim]
		if r.Valid() {
			valid++
		}
		for _, c := range r.Components {
			total++
			if c != nil {
				present++
			}
		}
	}

	coverage := float64(valid) / float64(len(model.Dimensions())) * 40.0

	completeness := 0.0
	if total > 0 {
		completeness = float64(present) / float64(total) * 40.0
	}

	keyPresent := 0
	for _, k := range keyIndicators {
		if c, ok := results[k.dim].Components[k.component]; ok && c != nil {
			keyPresent++
		}
	}
	bonus := float64(keyPresent) / float64(len(keyIndicators)) * 20.0

	score := round1(coverage + completeness + bonus)

	level := model.ConfidenceLow
	switch {
	case score >= 80:
		level = model.ConfidenceHigh
	case score >= 60:
		level = model.ConfidenceMedium
	}

	return model.ConfidenceResult{
		Score: score,
		Level: level,
		Breakdown: model.ConfidenceBreakdown{
			DimensionCoverage:     round1(coverage),
			ComponentCompleteness: round1(completeness),
			KeyIndicatorBonus:     round1(bonus),
			ValidDimensions:       valid,
			ComponentsPresent:     present,
			ComponentsTotal:       total,
			KeyIndicatorsPresent:  keyPresent,
			KeyIndicatorsTotal:    len(keyIndicators),
		},
	}
}
