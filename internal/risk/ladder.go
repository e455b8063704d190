package risk

import (
	"fmt"
	"math"

	"aegis/internal/model"
)

// band is one rung of a calibrated threshold ladder: crossing the cutoff
// awards a fixed point value and optionally emits a signal formatted with
// the raw reading. Ladders are ordered most-severe first; the first matching
// band wins.
type band struct {
	cutoff float64
	points float64
	format string // fmt string with one float verb; empty means no signal
}

// evalAbove returns the first band whose cutoff the value strictly exceeds.
func evalAbove(bands []band, v float64) (float64, string) {
	for _, b := range bands {
		if v > b.cutoff {
			return b.points, formatSignal(b.format, v)
		}
	}
	return 0, ""
}

// evalBelow is the descending counterpart: first band with v below cutoff wins.
func evalBelow(bands []band, v float64) (float64, string) {
	for _, b := range bands {
		if v < b.cutoff {
			return b.points, formatSignal(b.format, v)
		}
	}
	return 0, ""
}

func formatSignal(format string, v float64) string {
	if format == "" {
		return ""
	}
	return fmt.Sprintf(format, v)
}

// dimension accumulates component scores the same way in every scorer:
// present components add points and at most one signal, absent components
// record nil so the confidence estimator can count them.
type dimension struct {
	score      float64
	components map[string]*float64
	signals    []string
}

func newDimension() *dimension {
	return &dimension{components: make(map[string]*float64)}
}

func (d *dimension) add(name string, points float64, signal string) {
	p := points
	d.score += points
	d.components[name] = &p
	if signal != "" {
		d.signals = append(d.signals, signal)
	}
}

func (d *dimension) missing(name string) {
	d.components[name] = nil
}

// result caps the dimension at 10.0 regardless of intermediate overflow.
func (d *dimension) result() model.DimensionResult {
	return model.DimensionResult{
		Score:      round2(math.Min(d.score, 10.0)),
		Components: d.components,
		Signals:    d.signals,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
