package recorder

import (
	"time"

	"aegis/internal/model"
)

// ScoreRecord is one persisted assessment, trimmed to what trend analysis
// needs. Dimension holds the per-dimension scores that were valid at the
// time; excluded dimensions are absent from the map.
type ScoreRecord struct {
	Timestamp time.Time
	Overall   float64
	Tier      model.Tier
	Dimension map[string]float64
}

// AlertEvent records one delivered alert.
type AlertEvent struct {
	Timestamp time.Time
	Tier      model.Tier
	Reason    string
	Message   string
}

// Recorder persists assessments, raw indicator snapshots and alert events.
// The snapshots double as the history window for the lookback warning rules.
// All Recent* queries return records ordered oldest to newest.
type Recorder interface {
	RecordAssessment(a *model.Assessment) error
	RecordIndicators(set model.IndicatorSet) error
	RecordAlert(evt *AlertEvent) error
	RecentScores(n int) ([]ScoreRecord, error)
	RecentIndicators(n int) ([]model.IndicatorSet, error)
	Close() error
}
