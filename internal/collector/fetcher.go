package collector

import (
	"fmt"

	"aegis/internal/model"
)

// Fetcher defines the interface for fetching economic time series.
// Observations come back ordered oldest to newest.
type Fetcher interface {
	FetchSeries(seriesID string, limit int) ([]model.Observation, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.Observation
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(seriesID string, limit int) ([]model.Observation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	obs, ok := m.Series[seriesID]
	if !ok {
		return nil, fmt.Errorf("mock: no data for series %s", seriesID)
	}
	if len(obs) > limit {
		obs = obs[len(obs)-limit:]
	}
	return obs, nil
}
