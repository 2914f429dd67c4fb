package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

func TestFilterNewSnapshots(t *testing.T) {
	base := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	last := map[string]models.WeatherSnapshot{
		"punjab":      {Region: "punjab", Timestamp: base, Temperature: 25, Rainfall: 0},
		"sindh":       {Region: "sindh", Timestamp: base, Temperature: 31, Rainfall: 0},
		"khyber":      {Region: "khyber", Timestamp: base.Add(-45 * time.Minute), Temperature: 18},
		"balochistan": {Region: "balochistan", Timestamp: base.Add(10 * time.Minute), Temperature: 20},
	}
	now := base.Add(10 * time.Minute)
	candidates := []models.WeatherSnapshot{
		{Region: "punjab", Timestamp: now, Temperature: 25.4, Rainfall: 0},
		{Region: "sindh", Timestamp: now, Temperature: 31, Rainfall: 0.2},
		{Region: "khyber", Timestamp: now, Temperature: 18},
		{Region: "balochistan", Timestamp: now, Temperature: 30},
	}

	got := FilterNewSnapshots(candidates, last, 30*time.Minute, 0.5)
	assert.Equal(t, []string{"sindh", "khyber"}, Regions(got))
}

func TestFilterNewSnapshotsTemperatureChange(t *testing.T) {
	base := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	last := map[string]models.WeatherSnapshot{"punjab": {Region: "punjab", Timestamp: base, Temperature: 25}}
	cand := []models.WeatherSnapshot{{Region: "punjab", Timestamp: base.Add(time.Minute), Temperature: 25.6}}
	assert.Len(t, FilterNewSnapshots(cand, last, 30*time.Minute, 0.5), 1)
}

func TestFilterNewSnapshotsFirstObservation(t *testing.T) {
	cand := []models.WeatherSnapshot{{Region: "sindh", Timestamp: time.Now()}}
	assert.Equal(t, cand, FilterNewSnapshots(cand, nil, time.Hour, 0.5))
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, ValuesEqual(20, 20.5, 0.5))
	assert.False(t, ValuesEqual(20, 20.51, 0.5))
}

func TestSnapshotString(t *testing.T) {
	s := models.WeatherSnapshot{Region: "sindh", Temperature: 31.04, Humidity: 40, Rainfall: 1.5, Condition: "Clear sky"}
	assert.Equal(t, "sindh 31.0°C 40% 1.5mm Clear sky", SnapshotString(s))
}
