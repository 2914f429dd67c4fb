package collect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/region"
	"github.com/smartkisan/kisan-advisor/internal/weather"
)

type stubFetcher struct {
	mu   sync.Mutex
	fail map[float64]bool
	days []int
}

func (s *stubFetcher) Fetch(_ context.Context, lat, _ float64, days int) (models.WeatherReport, error) {
	s.mu.Lock()
	s.days = append(s.days, days)
	s.mu.Unlock()
	if s.fail[lat] {
		return models.WeatherReport{}, errors.New("open-meteo returned 502 Bad Gateway")
	}
	return models.WeatherReport{Current: models.CurrentWeather{Temperature: lat, Humidity: 40, Condition: "Clear sky"}}, nil
}

func TestSnapshotsAllRegions(t *testing.T) {
	ts := time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)
	f := &stubFetcher{}

	snaps, err := Snapshots(context.Background(), f, region.All(), ts)
	require.NoError(t, err)
	require.Len(t, snaps, 4)

	assert.Equal(t, region.Punjab, snaps[0].Region)
	assert.Equal(t, region.Balochistan, snaps[3].Region)
	for _, s := range snaps {
		assert.Equal(t, ts, s.Timestamp)
		assert.Equal(t, weather.SourceOpenMeteo, s.Source)
	}
	assert.Equal(t, []int{1, 1, 1, 1}, f.days)
}

func TestSnapshotsSkipsFailedRegions(t *testing.T) {
	sindh := region.Lookup(region.Sindh)
	f := &stubFetcher{fail: map[float64]bool{sindh.Coordinates.Lat: true}}

	snaps, err := Snapshots(context.Background(), f, region.All(), time.Now())
	assert.ErrorContains(t, err, "fetch sindh")
	assert.Len(t, snaps, 3)
	for _, s := range snaps {
		assert.NotEqual(t, region.Sindh, s.Region)
	}
}
