package risk

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"aegis/internal/model"
)

// ErrNoData is returned when every dimension is excluded: there is nothing
// to score and the caller must decide whether to retry or abort.
var ErrNoData = errors.New("risk: no dimension has data")

// Config holds the externally supplied aggregation parameters. Validated
// once at construction, trusted per call.
type Config struct {
	Weights         map[string]float64 // per dimension, must sum to 1.0 +/- 0.01
	YellowThreshold float64
	RedThreshold    float64
}

// DefaultConfig returns the calibrated production weights and tier cutoffs.
func DefaultConfig() Config {
	return Config{
		Weights: map[string]float64{
			model.DimRecession:   0.30,
			model.DimCredit:      0.25,
			model.DimValuation:   0.20,
			model.DimLiquidity:   0.15,
			model.DimPositioning: 0.10,
		},
		YellowThreshold: 6.5,
		RedThreshold:    8.0,
	}
}

// Aggregator runs the five dimension scorers, the confidence estimator and
// the warning rules, and combines them into one assessment. It is stateless
// between calls and safe for concurrent use.
type Aggregator struct {
	cfg Config
	log zerolog.Logger
}

// NewAggregator validates the configuration and returns an aggregator.
// Configuration invariant violations fail here, never per call.
func NewAggregator(cfg Config, log zerolog.Logger) (*Aggregator, error) {
	sum := 0.0
	for _, dim := range model.Dimensions() {
		w, ok := cfg.Weights[dim]
		if !ok {
			return nil, fmt.Errorf("risk: missing weight for dimension %q", dim)
		}
		if w < 0 {
			return nil, fmt.Errorf("risk: weight for %q must be non-negative, got %.3f", dim, w)
		}
		sum += w
	}
	if sum < 0.99 || sum > 1.01 {
		return nil, fmt.Errorf("risk: weights must sum to 1.0, got %.3f", sum)
	}
	if cfg.RedThreshold <= cfg.YellowThreshold {
		return nil, fmt.Errorf("risk: red threshold %.2f must exceed yellow threshold %.2f",
			cfg.RedThreshold, cfg.YellowThreshold)
	}
	return &Aggregator{
		cfg: cfg,
		log: log.With().Str("component", "risk").Logger(),
	}, nil
}

// Assess scores one indicator set. The optional window is an
// oldest-to-newest sequence of prior snapshots ending at the current
// period; it feeds the two lookback warning rules and may be nil.
// The inputs are never mutated.
func (a *Aggregator) Assess(set model.IndicatorSet, window []model.IndicatorSet) (*model.Assessment, error) {
	results := map[string]model.DimensionResult{
		model.DimRecession:   ScoreRecession(set.Recession),
		model.DimCredit:      ScoreCredit(set.Credit),
		model.DimValuation:   ScoreValuation(set.Valuation),
		model.DimLiquidity:   ScoreLiquidity(set.Liquidity),
		model.DimPositioning: ScorePositioning(set.Positioning),
	}

	// Partition into valid and excluded. Excluding a no-data dimension and
	// re-normalizing keeps the relative importance of what is measurable;
	// treating it as score zero would bias the overall score down whenever
	// data is merely unavailable.
	var excluded []string
	validWeight := 0.0
	for _, dim := range model.Dimensions() {
		if results[dim].Valid() {
			validWeight += a.cfg.Weights[dim]
		} else {
			excluded = append(excluded, dim)
		}
	}
	if len(excluded) == len(results) {
		a.log.Error().Msg("all dimensions excluded, nothing to score")
		return nil, ErrNoData
	}

	normalized := make(map[string]float64)
	scores := make(map[string]float64)
	allSignals := make(map[string][]string)
	overall := 0.0
	for _, dim := range model.Dimensions() {
		r := results[dim]
		allSignals[dim] = r.Signals
		if !r.Valid() {
			continue
		}
		nw := a.cfg.Weights[dim] / validWeight
		normalized[dim] = nw
		scores[dim] = r.Score
		overall += nw * r.Score
	}
	overall = round2(overall)

	// Warnings and confidence are informational overlays: they never alter
	// the overall score or tier.
	assessment := &model.Assessment{
		OverallScore:       overall,
		Tier:               a.tier(overall),
		Confidence:         EstimateConfidence(results),
		Dimensions:         results,
		DimensionScores:    scores,
		ExcludedDimensions: excluded,
		NormalizedWeights:  normalized,
		Warnings: map[string]model.Warning{
			model.WarnValuationExtreme:  checkValuationExtreme(set.Valuation),
			model.WarnDoubleInversion:   checkDoubleInversion(set.Recession, set.Credit),
			model.WarnRealRate:          checkRealRate(set.Liquidity),
			model.WarnEarningsRecession: checkEarningsRecession(set.Valuation, window),
			model.WarnHousingBubble:     checkHousingBubble(set.Valuation, window),
		},
		AllSignals:  allSignals,
		GeneratedAt: time.Now(),
	}

	a.log.Info().
		Float64("overall", assessment.OverallScore).
		Str("tier", string(assessment.Tier)).
		Float64("confidence", assessment.Confidence.Score).
		Strs("excluded", excluded).
		Int("warnings", len(assessment.ActiveWarnings())).
		Msg("risk assessment complete")

	return assessment, nil
}

// tier is a two-cutoff step function over the overall score.
func (a *Aggregator) tier(score float64) model.Tier {
	switch {
	case score >= a.cfg.RedThreshold:
		return model.TierRed
	case score >= a.cfg.YellowThreshold:
		return model.TierYellow
	}
	return model.TierGreen
}
