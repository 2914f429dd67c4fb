package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/smartkisan/kisan-advisor/internal/weather"
)

const (
	defaultMinInterval    = 30 * time.Minute
	defaultRequestTimeout = 30 * time.Second
	defaultTempEpsilon    = 0.5
)

// Config holds runtime configuration for the watcher service.
type Config struct {
	DatabaseURL    string
	WeatherBaseURL string
	MinInterval    time.Duration
	RequestTimeout time.Duration
	TempEpsilon    float64
	DryRun         bool
	Development    bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	cfg.WeatherBaseURL = strings.TrimSpace(os.Getenv("WEATHER_BASE_URL"))
	if cfg.WeatherBaseURL == "" {
		cfg.WeatherBaseURL = weather.DefaultBaseURL
	}

	cfg.MinInterval = defaultMinInterval
	if v := strings.TrimSpace(os.Getenv("WATCHER_MIN_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WATCHER_MIN_INTERVAL: %w", err)
		}
		cfg.MinInterval = d
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("WATCHER_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WATCHER_REQUEST_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid WATCHER_REQUEST_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	cfg.TempEpsilon = defaultTempEpsilon
	if v := strings.TrimSpace(os.Getenv("WATCHER_TEMP_EPSILON")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid WATCHER_TEMP_EPSILON: %w", err)
		}
		cfg.TempEpsilon = f
	}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")
	cfg.Development = os.Getenv("APP_ENV") == "development"

	return cfg, nil
}
