package model

import "time"

// Tier is the three-level categorical risk classification.
type Tier string

const (
	TierGreen  Tier = "GREEN"
	TierYellow Tier = "YELLOW"
	TierRed    Tier = "RED"
)

// Rank orders tiers for monotonicity checks and alert comparisons.
func (t Tier) Rank() int {
	switch t {
	case TierYellow:
		return 1
	case TierRed:
		return 2
	default:
		return 0
	}
}

// DimensionResult is the output of one dimension scorer.
// Score == min(10, sum of non-nil components), rounded to 2 decimals.
// A nil component means every input it needs was missing.
type DimensionResult struct {
	Score      float64
	Components map[string]*float64
	Signals    []string
}

// Valid reports whether at least one component had data. A dimension with
// all components nil is excluded from aggregation entirely.
func (r DimensionResult) Valid() bool {
	for _, c := range r.Components {
		if c != nil {
			return true
		}
	}
	return false
}

// ConfidenceLevel labels how complete the input data was.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceHigh   ConfidenceLevel = "HIGH"
)

// ConfidenceBreakdown itemizes the three additive confidence factors.
type ConfidenceBreakdown struct {
	DimensionCoverage     float64 // 0-40
	ComponentCompleteness float64 // 0-40
	KeyIndicatorBonus     float64 // 0-20
	ValidDimensions       int
	ComponentsPresent     int
	ComponentsTotal       int
	KeyIndicatorsPresent  int
	KeyIndicatorsTotal    int
}

// ConfidenceResult distinguishes "genuinely low risk" from "not enough data
// to tell": the overall score alone cannot.
type ConfidenceResult struct {
	Score     float64 // 0-100, one decimal
	Level     ConfidenceLevel
	Breakdown ConfidenceBreakdown
}

// Warning is the output of one composite warning rule. Inactive warnings
// carry no level or message. Values holds the rule-specific numeric evidence
// that triggered it (also embedded in Message for human consumption).
type Warning struct {
	Active  bool
	Level   string
	Message string
	Values  map[string]float64
}

// Warning rule names used as keys in Assessment.Warnings.
const (
	WarnValuationExtreme  = "valuation_extreme"
	WarnDoubleInversion   = "double_inversion"
	WarnRealRate          = "real_rate"
	WarnEarningsRecession = "earnings_recession"
	WarnHousingBubble     = "housing_bubble"
)

// Assessment is the full result of one engine invocation.
type Assessment struct {
	OverallScore       float64
	Tier               Tier
	Confidence         ConfidenceResult
	Dimensions         map[string]DimensionResult
	DimensionScores    map[string]float64 // valid dimensions only
	ExcludedDimensions []string
	NormalizedWeights  map[string]float64 // sums to 1.0 over valid dimensions
	Warnings           map[string]Warning
	AllSignals         map[string][]string
	GeneratedAt        time.Time
}

// ActiveWarnings returns the names of triggered warning rules in stable order.
func (a *Assessment) ActiveWarnings() []string {
	var names []string
	for _, name := range []string{
		WarnValuationExtreme, WarnDoubleInversion, WarnRealRate,
		WarnEarningsRecession, WarnHousingBubble,
	} {
		if w, ok := a.Warnings[name]; ok && w.Active {
			names = append(names, name)
		}
	}
	return names
}
