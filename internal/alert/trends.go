package alert

import (
	"time"

	"aegis/internal/model"
	"aegis/internal/recorder"
)

// Direction labels for a dimension's 4-week movement.
const (
	TrendUpSharp   = "UP_SHARP"
	TrendUp        = "UP"
	TrendStable    = "STABLE"
	TrendDown      = "DOWN"
	TrendDownSharp = "DOWN_SHARP"
)

const (
	sharpMove = 1.0
	smallMove = 0.3
)

// Trends summarizes how the overall score and each dimension have moved.
// Change fields are nil when history does not reach back far enough.
type Trends struct {
	Change1W   *float64
	Change4W   *float64
	Change12W  *float64
	Dimensions map[string]string // dimension -> direction label
}

// ComputeTrends derives score trends for an assessment from its history.
func ComputeTrends(a *model.Assessment, history []recorder.ScoreRecord) Trends {
	t := Trends{
		Change1W:   changeOver(a, history, 7*24*time.Hour),
		Change4W:   changeOver(a, history, 28*24*time.Hour),
		Change12W:  changeOver(a, history, 84*24*time.Hour),
		Dimensions: make(map[string]string),
	}

	base, ok := recordAtAge(a.GeneratedAt, history, 28*24*time.Hour)
	for _, dim := range model.Dimensions() {
		cur, curOK := a.DimensionScores[dim]
		if !curOK {
			continue // excluded now, no trend to report
		}
		if !ok {
			t.Dimensions[dim] = TrendStable
			continue
		}
		prev, prevOK := base.Dimension[dim]
		if !prevOK {
			t.Dimensions[dim] = TrendStable
			continue
		}
		t.Dimensions[dim] = direction(cur - prev)
	}
	return t
}

func direction(diff float64) string {
	switch {
	case diff >= sharpMove:
		return TrendUpSharp
	case diff >= smallMove:
		return TrendUp
	case diff <= -sharpMove:
		return TrendDownSharp
	case diff <= -smallMove:
		return TrendDown
	}
	return TrendStable
}
