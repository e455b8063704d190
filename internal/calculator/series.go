package calculator

import (
	"errors"

	"aegis/internal/model"
)

// Observations are ordered oldest to newest throughout this package.

// Latest returns the newest observation's value.
func Latest(obs []model.Observation) (float64, error) {
	if len(obs) == 0 {
		return 0, errors.New("no observations")
	}
	return obs[len(obs)-1].Value, nil
}

// MovingAverage computes the simple moving average of the newest `period`
// observations.
func MovingAverage(obs []model.Observation, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(obs) < period {
		return 0, errors.New("not enough data for moving average")
	}
	sum := 0.0
	for i := len(obs) - period; i < len(obs); i++ {
		sum += obs[i].Value
	}
	return sum / float64(period), nil
}

// PercentChange returns the percentage change of the newest observation
// against the one `lookback` periods earlier.
func PercentChange(obs []model.Observation, lookback int) (float64, error) {
	cur, base, err := endpoints(obs, lookback)
	if err != nil {
		return 0, err
	}
	if base.Value == 0 {
		return 0, errors.New("zero base value for percent change")
	}
	return (cur.Value - base.Value) / base.Value * 100.0, nil
}

// RateChange returns the arithmetic difference between the newest observation
// and the one `lookback` periods earlier. Used for rate series where
// percentage change is meaningless (fed funds, spreads near zero).
func RateChange(obs []model.Observation, lookback int) (float64, error) {
	cur, base, err := endpoints(obs, lookback)
	if err != nil {
		return 0, err
	}
	return cur.Value - base.Value, nil
}

// SlopePerDay returns the change between the newest observation and the one
// `lookback` periods earlier, divided by the calendar days between them.
func SlopePerDay(obs []model.Observation, lookback int) (float64, error) {
	cur, base, err := endpoints(obs, lookback)
	if err != nil {
		return 0, err
	}
	days := cur.Date.Sub(base.Date).Hours() / 24.0
	if days <= 0 {
		return 0, errors.New("observations not in chronological order")
	}
	return (cur.Value - base.Value) / days, nil
}

func endpoints(obs []model.Observation, lookback int) (cur, base model.Observation, err error) {
	if lookback <= 0 {
		return cur, base, errors.New("lookback must be positive")
	}
	idx := len(obs) - 1 - lookback
	if idx < 0 {
		return cur, base, errors.New("not enough data for lookback")
	}
	return obs[len(obs)-1], obs[idx], nil
}
