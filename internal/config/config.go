package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"aegis/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	FRED struct {
		APIKey        string `yaml:"api_key"`
		CacheDir      string `yaml:"cache_dir"`
		CacheTTLHours int    `yaml:"cache_ttl_hours"`
	} `yaml:"fred"`
	Shiller struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"shiller"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Scoring struct {
		Weights         map[string]float64 `yaml:"weights"`
		YellowThreshold float64            `yaml:"yellow_threshold"`
		RedThreshold    float64            `yaml:"red_threshold"`
	} `yaml:"scoring"`
	Alerts struct {
		RedScore        float64 `yaml:"red_score"`
		YellowScore     float64 `yaml:"yellow_score"`
		RapidRise       float64 `yaml:"rapid_rise"`
		ExtremeDimScore float64 `yaml:"extreme_dim_score"`
		ExtremeDimCount int     `yaml:"extreme_dim_count"`
	} `yaml:"alerts"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy    string `yaml:"proxy"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; env and defaults carry it.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.FRED.APIKey = v
	}
	if v := os.Getenv("AEGIS_SHILLER_CSV"); v != "" {
		cfg.Shiller.CSVPath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("AEGIS_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("AEGIS_DAILY_CRON"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("AEGIS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AEGIS_RED_SCORE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alerts.RedScore = f
		}
	}

	// Defaults
	if cfg.FRED.CacheDir == "" {
		cfg.FRED.CacheDir = "data/fred_cache"
	}
	if cfg.FRED.CacheTTLHours == 0 {
		cfg.FRED.CacheTTLHours = 12
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 9 * * 6"
	}
	if cfg.Scoring.Weights == nil {
		cfg.Scoring.Weights = map[string]float64{
			model.DimRecession:   0.30,
			model.DimCredit:      0.25,
			model.DimValuation:   0.20,
			model.DimLiquidity:   0.15,
			model.DimPositioning: 0.10,
		}
	}
	if cfg.Scoring.YellowThreshold == 0 {
		cfg.Scoring.YellowThreshold = 6.5
	}
	if cfg.Scoring.RedThreshold == 0 {
		cfg.Scoring.RedThreshold = 8.0
	}
	if cfg.Alerts.RedScore == 0 {
		cfg.Alerts.RedScore = cfg.Scoring.RedThreshold
	}
	if cfg.Alerts.YellowScore == 0 {
		cfg.Alerts.YellowScore = cfg.Scoring.YellowThreshold
	}
	if cfg.Alerts.RapidRise == 0 {
		cfg.Alerts.RapidRise = 1.0
	}
	if cfg.Alerts.ExtremeDimScore == 0 {
		cfg.Alerts.ExtremeDimScore = 8.0
	}
	if cfg.Alerts.ExtremeDimCount == 0 {
		cfg.Alerts.ExtremeDimCount = 2
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/aegis.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks required fields and the scoring invariants.
func (c *Config) Validate() error {
	if c.FRED.APIKey == "" {
		return fmt.Errorf("fred.api_key is required")
	}
	sum := 0.0
	for _, dim := range model.Dimensions() {
		w, ok := c.Scoring.Weights[dim]
		if !ok {
			return fmt.Errorf("scoring.weights missing dimension %q", dim)
		}
		if w < 0 {
			return fmt.Errorf("scoring.weights[%s] must be non-negative", dim)
		}
		sum += w
	}
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("scoring.weights must sum to 1.0, got %.3f", sum)
	}
	if c.Scoring.RedThreshold <= c.Scoring.YellowThreshold {
		return fmt.Errorf("scoring.red_threshold %.2f must exceed yellow_threshold %.2f",
			c.Scoring.RedThreshold, c.Scoring.YellowThreshold)
	}
	return nil
}
