package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aegis/internal/model"
	"aegis/internal/recorder"
)

// Config holds the alert trigger thresholds.
type Config struct {
	RedScore        float64 // always alert at or above this overall score
	YellowScore     float64 // alert when crossing up through this score
	RapidRise       float64 // 4-week overall rise that alerts on its own
	ExtremeDimScore float64 // a dimension at or above this is "extreme"
	ExtremeDimCount int     // how many extreme dimensions trigger an alert
}

// DefaultConfig returns the calibrated alert thresholds.
func DefaultConfig() Config {
	return Config{
		RedScore:        8.0,
		YellowScore:     6.5,
		RapidRise:       1.0,
		ExtremeDimScore: 8.0,
		ExtremeDimCount: 2,
	}
}

// Decision is the outcome of evaluating one assessment against history.
type Decision struct {
	ShouldAlert       bool
	Tier              model.Tier
	Reason            string   // first trigger, used as the alert headline
	Triggers          []string // every condition that fired
	Change4W          *float64 // nil without enough history
	ExtremeDimensions []string
}

// Logic decides whether an assessment warrants an alert. History records are
// ordered oldest to newest and do not include the current assessment.
type Logic struct {
	cfg Config
	log zerolog.Logger
}

func NewLogic(cfg Config, log zerolog.Logger) *Logic {
	return &Logic{
		cfg: cfg,
		log: log.With().Str("component", "alert").Logger(),
	}
}

// Evaluate applies the trigger rules in priority order. A RED tier always
// alerts; YELLOW alerts only when the prior record was below the yellow
// cutoff, so a market parked in YELLOW does not page daily.
func (l *Logic) Evaluate(a *model.Assessment, history []recorder.ScoreRecord) Decision {
	d := Decision{Tier: a.Tier}
	d.Change4W = changeOver(a, history, 28*24*time.Hour)

	if a.Tier == model.TierRed {
		d.Triggers = append(d.Triggers,
			fmt.Sprintf("overall score %.2f at or above RED threshold %.1f", a.OverallScore, l.cfg.RedScore))
	}

	if a.Tier == model.TierYellow {
		if prev, ok := lastRecord(history); !ok || prev.Overall < l.cfg.YellowScore {
			d.Triggers = append(d.Triggers,
				fmt.Sprintf("overall score crossed into YELLOW at %.2f", a.OverallScore))
		}
	}

	if d.Change4W != nil && *d.Change4W >= l.cfg.RapidRise {
		d.Triggers = append(d.Triggers,
			fmt.Sprintf("overall score rose %.2f points in 4 weeks", *d.Change4W))
	}

	for _, dim := range model.Dimensions() {
		if s, ok := a.DimensionScores[dim]; ok && s >= l.cfg.ExtremeDimScore {
			d.ExtremeDimensions = append(d.ExtremeDimensions, dim)
		}
	}
	if len(d.ExtremeDimensions) >= l.cfg.ExtremeDimCount {
		d.Triggers = append(d.Triggers,
			fmt.Sprintf("%d dimensions at extreme levels: %s",
				len(d.ExtremeDimensions), strings.Join(d.ExtremeDimensions, ", ")))
	}

	if len(d.Triggers) > 0 {
		d.ShouldAlert = true
		d.Reason = d.Triggers[0]
		l.log.Info().Str("tier", string(a.Tier)).Strs("triggers", d.Triggers).
			Msg("alert triggered")
	}
	return d
}

// KeyEvidence extracts the strongest signals behind an assessment, CRITICAL
// first, capped at max.
func KeyEvidence(a *model.Assessment, max int) []string {
	var critical, rest []string
	for _, dim := range model.Dimensions() {
		for _, s := range a.AllSignals[dim] {
			if strings.HasPrefix(s, "CRITICAL") {
				critical = append(critical, s)
			} else {
				rest = append(rest, s)
			}
		}
	}
	evidence := append(critical, rest...)
	if len(evidence) > max {
		evidence = evidence[:max]
	}
	return evidence
}

// lastRecord returns the newest history record.
func lastRecord(history []recorder.ScoreRecord) (recorder.ScoreRecord, bool) {
	if len(history) == 0 {
		return recorder.ScoreRecord{}, false
	}
	return history[len(history)-1], true
}

// changeOver returns the overall-score change against the newest record at
// least `age` older than the assessment, or nil when history is too short.
func changeOver(a *model.Assessment, history []recorder.ScoreRecord, age time.Duration) *float64 {
	base, ok := recordAtAge(a.GeneratedAt, history, age)
	if !ok {
		return nil
	}
	diff := a.OverallScore - base.Overall
	return &diff
}

func recordAtAge(now time.Time, history []recorder.ScoreRecord, age time.Duration) (recorder.ScoreRecord, bool) {
	cutoff := now.Add(-age)
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Timestamp.After(cutoff) {
			return history[i], true
		}
	}
	return recorder.ScoreRecord{}, false
}
