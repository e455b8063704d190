package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/model"
)

// daily builds an observation per day ending today, oldest first.
func daily(values ...float64) []model.Observation {
	obs := make([]model.Observation, len(values))
	now := time.Now()
	for i, v := range values {
		obs[i] = model.Observation{
			Date:  now.AddDate(0, 0, -(len(values) - 1 - i)),
			Value: v,
		}
	}
	return obs
}

func TestLatest(t *testing.T) {
	v, err := Latest(daily(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = Latest(nil)
	assert.Error(t, err)
}

func TestMovingAverage(t *testing.T) {
	v, err := MovingAverage(daily(10, 20, 30, 40), 2)
	require.NoError(t, err)
	assert.Equal(t, 35.0, v)

	_, err = MovingAverage(daily(10, 20), 3)
	assert.Error(t, err)

	_, err = MovingAverage(daily(10, 20), 0)
	assert.Error(t, err)
}

func TestPercentChange(t *testing.T) {
	// 100 -> 115 over a 2-period lookback.
	v, err := PercentChange(daily(100, 105, 115), 2)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, v, 1e-9)

	_, err = PercentChange(daily(100, 105), 2)
	assert.Error(t, err)

	_, err = PercentChange(daily(0, 105, 115), 2)
	assert.Error(t, err, "zero base must not divide")
}

func TestRateChange(t *testing.T) {
	v, err := RateChange(daily(0.25, 1.0, 2.5), 2)
	require.NoError(t, err)
	assert.InDelta(t, 2.25, v, 1e-9)

	// Negative change is valid: easing cycles report below zero.
	v, err = RateChange(daily(5.0, 4.5, 4.0), 2)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, v, 1e-9)
}

func TestSlopePerDay(t *testing.T) {
	// 20 bps over 20 daily observations: 1 bps/day.
	obs := make([]model.Observation, 21)
	now := time.Now()
	for i := range obs {
		obs[i] = model.Observation{
			Date:  now.AddDate(0, 0, -(20 - i)),
			Value: 4.0 + float64(i)*0.01,
		}
	}
	v, err := SlopePerDay(obs, 20)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, v, 1e-9)

	_, err = SlopePerDay(obs[:5], 20)
	assert.Error(t, err)
}
