// Package weather is the gateway to the Open-Meteo forecast API. Lookups
// always yield a usable report: provider failures degrade to mock data.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

const (
	DefaultBaseURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultDays      = 7
	MaxDays          = 16
	defaultTimeout   = 10 * time.Second
	defaultCacheTTL  = 5 * time.Minute
	defaultCacheSize = 256
)

// Report sources.
const (
	SourceOpenMeteo = "open-meteo"
	SourceMock      = "mock-fallback"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidDays        = errors.New("invalid days")
	ErrInvalidPayload     = errors.New("invalid response format from weather API")
)

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("open-meteo returned %s", e.Status)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
	CacheSize  int
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client fetches forecasts and caches successful responses for a short TTL.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *expirable.LRU[string, models.WeatherReport]
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a Client. A zero CacheTTL uses the five minute default; a
// negative one disables caching.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = defaultCacheTTL
	}

	c := &Client{
		http:    opts.HTTPClient,
		baseURL: opts.BaseURL,
		logger:  opts.Logger,
		now:     time.Now,
	}
	if opts.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, models.WeatherReport](opts.CacheSize, nil, opts.CacheTTL)
	}
	return c
}

// Result is the outcome of a Lookup. Report is always populated.
type Result struct {
	Report models.WeatherReport
	Source string
	Err    error
}

// Live reports whether the data came from the provider.
func (r Result) Live() bool { return r.Err == nil }

// Lookup fetches a forecast and substitutes mock data on any failure.
func (c *Client) Lookup(ctx context.Context, lat, lng float64, days int) Result {
	report, err := c.Fetch(ctx, lat, lng, days)
	if err != nil {
		c.logger.Warn("weather provider failed, serving mock data",
			zap.Float64("latitude", lat),
			zap.Float64("longitude", lng),
			zap.Error(err))
		return Result{Report: Mock(lat, lng, days, c.now()), Source: SourceMock, Err: err}
	}
	return Result{Report: report, Source: SourceOpenMeteo}
}

// Fetch retrieves current conditions and a daily forecast for days days.
func (c *Client) Fetch(ctx context.Context, lat, lng float64, days int) (models.WeatherReport, error) {
	if !finite(lat) || !finite(lng) {
		return models.WeatherReport{}, ErrInvalidCoordinates
	}
	days = clampDays(days)

	key := cacheKey(lat, lng, days)
	if c.cache != nil {
		if report, ok := c.cache.Get(key); ok {
			return report, nil
		}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.forecastURL(lat, lng, days), nil)
	if err != nil {
		return models.WeatherReport{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("request forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.WeatherReport{}, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.WeatherReport{}, fmt.Errorf("decode forecast: %w", err)
	}
	if payload.Current == nil || payload.Daily == nil {
		return models.WeatherReport{}, ErrInvalidPayload
	}

	report := payload.normalize(lat, lng, c.now().UTC())
	if c.cache != nil {
		c.cache.Add(key, report)
	}
	c.logger.Debug("weather fetched",
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lng),
		zap.Int("days", days),
		zap.Duration("elapsed", time.Since(start)))
	return report, nil
}

func (c *Client) forecastURL(lat, lng float64, days int) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,precipitation,wind_speed_10m,weather_code")
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max")
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(days))
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + q.Encode()
}

type forecastResponse struct {
	Current *struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		Precipitation float64 `json:"precipitation"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
	Daily *struct {
		Time                        []string  `json:"time"`
		WeatherCode                 []int     `json:"weather_code"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		PrecipitationSum            []float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

func (p forecastResponse) normalize(lat, lng float64, now time.Time) models.WeatherReport {
	cur := p.Current
	report := models.WeatherReport{
		Current: models.CurrentWeather{
			Temperature: roundHalfUp(cur.Temperature),
			Humidity:    int(roundHalfUp(cur.Humidity)),
			Rainfall:    cur.Precipitation,
			WindSpeed:   roundHalfUp(cur.WindSpeed),
			Condition:   ConditionFor(cur.WeatherCode),
			WeatherCode: cur.WeatherCode,
		},
		Forecast:    make([]models.ForecastDay, 0, len(p.Daily.Time)),
		Location:    models.Location{Latitude: lat, Longitude: lng},
		LastUpdated: now,
	}

	d := p.Daily
	for i, date := range d.Time {
		code := at(d.WeatherCode, i)
		report.Forecast = append(report.Forecast, models.ForecastDay{
			Date:            date,
			DayLabel:        dayLabel(date),
			TempMax:         roundHalfUp(at(d.TemperatureMax, i)),
			TempMin:         roundHalfUp(at(d.TemperatureMin, i)),
			RainMM:          roundTenth(at(d.PrecipitationSum, i)),
			RainProbability: at(d.PrecipitationProbabilityMax, i),
			Condition:       ConditionFor(code),
			WeatherCode:     code,
		})
	}
	return report
}

// ParseCoordinates validates query-string coordinates.
func ParseCoordinates(latStr, lngStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || !finite(lat) {
		return 0, 0, ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil || !finite(lng) {
		return 0, 0, ErrInvalidCoordinates
	}
	return lat, lng, nil
}

// ParseDays validates the days parameter; empty means def.
func ParseDays(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return clampDays(def), nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days <= 0 {
		return 0, ErrInvalidDays
	}
	return clampDays(days), nil
}

func clampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultDays
	case days > MaxDays:
		return MaxDays
	default:
		return days
	}
}

func cacheKey(lat, lng float64, days int) string {
	return fmt.Sprintf("%.4f,%.4f,%d", lat, lng, days)
}

func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

func roundTenth(f float64) float64 {
	return math.Floor(f*10+0.5) / 10
}

func at[T any](s []T, i int) T {
	var zero T
	if i < 0 || i >= len(s) {
		return zero
	}
	return s[i]
}
