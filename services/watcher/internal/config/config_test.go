package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartkisan/kisan-advisor/internal/weather"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/kisan")
	t.Setenv("WEATHER_BASE_URL", "")
	t.Setenv("WATCHER_MIN_INTERVAL", "")
	t.Setenv("WATCHER_REQUEST_TIMEOUT", "")
	t.Setenv("WATCHER_TEMP_EPSILON", "")
	t.Setenv("DRY_RUN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, weather.DefaultBaseURL, cfg.WeatherBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.MinInterval)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 0.5, cfg.TempEpsilon, 1e-9)
	assert.False(t, cfg.DryRun)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/kisan")
	t.Setenv("WATCHER_MIN_INTERVAL", "10m")
	t.Setenv("WATCHER_TEMP_EPSILON", "1.25")
	t.Setenv("DRY_RUN", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.MinInterval)
	assert.InDelta(t, 1.25, cfg.TempEpsilon, 1e-9)
	assert.True(t, cfg.DryRun)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/kisan")

	t.Setenv("WATCHER_MIN_INTERVAL", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "WATCHER_MIN_INTERVAL")

	t.Setenv("WATCHER_MIN_INTERVAL", "")
	t.Setenv("WATCHER_REQUEST_TIMEOUT", "0s")
	_, err = Load()
	assert.ErrorContains(t, err, "WATCHER_REQUEST_TIMEOUT")

	t.Setenv("WATCHER_REQUEST_TIMEOUT", "")
	t.Setenv("WATCHER_TEMP_EPSILON", "half")
	_, err = Load()
	assert.ErrorContains(t, err, "WATCHER_TEMP_EPSILON")
}
