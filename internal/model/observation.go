package model

import "time"

// Observation is a single dated value from an economic time series.
type Observation struct {
	Date  time.Time
	Value float64
}
