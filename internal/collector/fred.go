package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"aegis/internal/model"
)

const fredBaseURL = "https://api.stlouisfed.org/fred/series/observations"

// FREDFetcher implements Fetcher using the St. Louis Fed FRED API.
type FREDFetcher struct {
	Client   *http.Client
	APIKey   string
	BaseURL  string
	CacheDir string        // empty disables caching
	CacheTTL time.Duration // how long a cached series stays fresh
}

// NewFREDFetcher creates a FRED fetcher. A non-empty cacheDir enables a
// per-series JSON file cache so repeated runs inside the TTL skip the API.
func NewFREDFetcher(apiKey, proxyURL, cacheDir string, cacheTTL time.Duration) *FREDFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FREDFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		APIKey:   apiKey,
		BaseURL:  fredBaseURL,
		CacheDir: cacheDir,
		CacheTTL: cacheTTL,
	}
}

func (f *FREDFetcher) Name() string { return "fred" }

// fredResponse is the response structure from the FRED observations API.
type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
	ErrorMessage string `json:"error_message"`
}

func (f *FREDFetcher) FetchSeries(seriesID string, limit int) ([]model.Observation, error) {
	if cached, ok := f.readCache(seriesID, limit); ok {
		return cached, nil
	}

	// Descending order so `limit` trims from the newest end.
	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", f.APIKey)
	q.Set("file_type", "json")
	q.Set("sort_order", "desc")
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequest("GET", f.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fred fetch %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fred read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fred %s: status %d, body: %s", seriesID, resp.StatusCode, string(body))
	}

	var fr fredResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("fred decode %s: %w", seriesID, err)
	}
	if fr.ErrorMessage != "" {
		return nil, fmt.Errorf("fred api error for %s: %s", seriesID, fr.ErrorMessage)
	}
	if len(fr.Observations) == 0 {
		return nil, fmt.Errorf("fred %s: no observations returned", seriesID)
	}

	obs := make([]model.Observation, 0, len(fr.Observations))
	for _, o := range fr.Observations {
		if o.Value == "." {
			continue // FRED placeholder for missing readings (holidays etc.)
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		d, err := time.Parse("2006-01-02", o.Date)
		if err != nil {
			continue
		}
		obs = append(obs, model.Observation{Date: d, Value: v})
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("fred %s: all observations missing", seriesID)
	}

	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	f.writeCache(seriesID, limit, obs)
	return obs, nil
}

func (f *FREDFetcher) cachePath(seriesID string, limit int) string {
	return filepath.Join(f.CacheDir, fmt.Sprintf("%s_%d.json", seriesID, limit))
}

func (f *FREDFetcher) readCache(seriesID string, limit int) ([]model.Observation, bool) {
	if f.CacheDir == "" {
		return nil, false
	}
	path := f.cachePath(seriesID, limit)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > f.CacheTTL {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var obs []model.Observation
	if err := json.Unmarshal(data, &obs); err != nil {
		return nil, false
	}
	return obs, true
}

func (f *FREDFetcher) writeCache(seriesID string, limit int, obs []model.Observation) {
	if f.CacheDir == "" {
		return
	}
	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return
	}
	data, err := json.Marshal(obs)
	if err != nil {
		return
	}
	_ = os.WriteFile(f.cachePath(seriesID, limit), data, 0o644)
}
