package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleForecast = `{
  "current": {
    "temperature_2m": 31.6,
    "relative_humidity_2m": 44.5,
    "precipitation": 0.25,
    "wind_speed_10m": 12.4,
    "weather_code": 3
  },
  "daily": {
    "time": ["2026-10-18", "2026-10-19"],
    "weather_code": [61, 999],
    "temperature_2m_max": [33.5, 30.2],
    "temperature_2m_min": [20.4, 19.5],
    "precipitation_sum": [4.26, 0],
    "precipitation_probability_max": [70, 10]
  }
}`

func newTestServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		assert.Equal(t, "7", r.URL.Query().Get("forecast_days"))
		assert.Contains(t, r.URL.Query().Get("current"), "weather_code")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchNormalizesPayload(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, sampleForecast, nil)
	c := New(Options{BaseURL: srv.URL, CacheTTL: -1})

	report, err := c.Fetch(context.Background(), 31.5204, 74.3587, 7)
	require.NoError(t, err)

	assert.Equal(t, 32.0, report.Current.Temperature)
	assert.Equal(t, 45, report.Current.Humidity)
	assert.Equal(t, 0.25, report.Current.Rainfall)
	assert.Equal(t, 12.0, report.Current.WindSpeed)
	assert.Equal(t, "Overcast", report.Current.Condition)

	require.Len(t, report.Forecast, 2)
	assert.Equal(t, "Sun", report.Forecast[0].DayLabel)
	assert.Equal(t, 34.0, report.Forecast[0].TempMax)
	assert.Equal(t, 20.0, report.Forecast[0].TempMin)
	assert.Equal(t, 4.3, report.Forecast[0].RainMM)
	assert.Equal(t, "Slight rain", report.Forecast[0].Condition)
	assert.Equal(t, UnknownCondition, report.Forecast[1].Condition)
	assert.Equal(t, 31.5204, report.Location.Latitude)
}

func TestLookupFallsBackOnServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `oops`, nil)
	c := New(Options{BaseURL: srv.URL})

	res := c.Lookup(context.Background(), 24.8607, 67.0011, 7)
	assert.False(t, res.Live())
	assert.Equal(t, SourceMock, res.Source)
	assert.Equal(t, 28.0, res.Report.Current.Temperature)
	assert.Len(t, res.Report.Forecast, 7)

	var statusErr *StatusError
	require.True(t, errors.As(res.Err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestLookupFallsBackOnMissingSections(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"current": {"temperature_2m": 20}}`, nil)
	c := New(Options{BaseURL: srv.URL})

	res := c.Lookup(context.Background(), 31.5, 74.3, 7)
	assert.ErrorIs(t, res.Err, ErrInvalidPayload)
	assert.Equal(t, SourceMock, res.Source)
}

func TestLookupFallsBackOnMalformedBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `not json`, nil)
	c := New(Options{BaseURL: srv.URL})

	res := c.Lookup(context.Background(), 31.5, 74.3, 7)
	assert.Error(t, res.Err)
	assert.NotEmpty(t, res.Report.Current.Condition)
}

func TestFetchCachesSuccessfulResponses(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, http.StatusOK, sampleForecast, &hits)
	c := New(Options{BaseURL: srv.URL})

	for i := 0; i < 3; i++ {
		_, err := c.Fetch(context.Background(), 31.5204, 74.3587, 7)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestParseCoordinates(t *testing.T) {
	lat, lng, err := ParseCoordinates("31.5204", " 74.3587")
	require.NoError(t, err)
	assert.Equal(t, 31.5204, lat)
	assert.Equal(t, 74.3587, lng)

	for _, pair := range [][2]string{{"abc", "xyz"}, {"31.5", ""}, {"NaN", "1"}, {"1", "Inf"}} {
		_, _, err := ParseCoordinates(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidCoordinates, pair)
	}
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays("", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, days)

	days, err = ParseDays("40", 7)
	require.NoError(t, err)
	assert.Equal(t, MaxDays, days)

	_, err = ParseDays("-1", 7)
	assert.ErrorIs(t, err, ErrInvalidDays)
	_, err = ParseDays("week", 7)
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestConditionForIsStable(t *testing.T) {
	for _, code := range []int{0, 2, 45, 61, 95, 99, 4, 999, -1} {
		assert.Equal(t, ConditionFor(code), ConditionFor(code))
	}
	assert.Equal(t, "Clear sky", ConditionFor(0))
	assert.Equal(t, "Thunderstorm with heavy hail", ConditionFor(99))
	assert.Equal(t, UnknownCondition, ConditionFor(999))
}

func TestMockCodesMatchConditions(t *testing.T) {
	for range 20 {
		report := Mock(31.5, 74.3, 7, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, ConditionFor(report.Current.WeatherCode), report.Current.Condition)
		for _, day := range report.Forecast {
			assert.NotEqual(t, UnknownCondition, day.Condition)
			assert.Equal(t, ConditionFor(day.WeatherCode), day.Condition)
		}
	}
}
