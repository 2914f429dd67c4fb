package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

// FilterNewSnapshots selects candidates that should be inserted: regions
// with no stored snapshot, snapshots older than minInterval, and changed
// readings.
func FilterNewSnapshots(
	candidates []models.WeatherSnapshot,
	last map[string]models.WeatherSnapshot,
	minInterval time.Duration,
	tempEpsilon float64,
) []models.WeatherSnapshot {
	out := make([]models.WeatherSnapshot, 0, len(candidates))
	for _, cand := range candidates {
		prev, ok := last[cand.Region]
		if !ok {
			out = append(out, cand)
			continue
		}

		if !cand.Timestamp.After(prev.Timestamp) {
			continue
		}

		if cand.Timestamp.Sub(prev.Timestamp) >= minInterval {
			out = append(out, cand)
			continue
		}

		if !ValuesEqual(prev.Temperature, cand.Temperature, tempEpsilon) || prev.Rainfall != cand.Rainfall {
			out = append(out, cand)
		}
	}
	return out
}

// ValuesEqual compares two readings with tolerance.
func ValuesEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Regions extracts region keys from snapshots.
func Regions(snaps []models.WeatherSnapshot) []string {
	keys := make([]string, 0, len(snaps))
	for _, s := range snaps {
		keys = append(keys, s.Region)
	}
	return keys
}

// SnapshotString prints a snapshot for logging.
func SnapshotString(s models.WeatherSnapshot) string {
	return fmt.Sprintf("%s %.1f°C %d%% %.1fmm %s", s.Region, s.Temperature, s.Humidity, s.Rainfall, s.Condition)
}
