package recorder

import "aegis/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
// Recent* queries report empty history, so window-dependent warning rules
// stay inactive and trends read as flat.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAssessment(_ *model.Assessment) error { return nil }

func (n *NoopRecorder) RecordIndicators(_ model.IndicatorSet) error { return nil }

func (n *NoopRecorder) RecordAlert(_ *AlertEvent) error { return nil }

func (n *NoopRecorder) RecentScores(_ int) ([]ScoreRecord, error) { return nil, nil }

func (n *NoopRecorder) RecentIndicators(_ int) ([]model.IndicatorSet, error) { return nil, nil }

func (n *NoopRecorder) Close() error { return nil }
