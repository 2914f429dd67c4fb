// Package history derives trends and crop statistics from the bundled
// regional tables. Everything here is pure; a nil result means the data for
// that region or crop does not exist and the caller should skip the section.
package history

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/region"
)

const (
	trendLookbackYears  = 15
	sowingLookbackYears = 10

	temperatureThreshold = 0.5
	rainfallThreshold    = 10.0
)

var sowingReferenceMonths = []string{"march", "april", "october", "november"}

var recommendedMonths = map[string][]string{
	"wheat":     {"October", "November", "December"},
	"rice":      {"June", "July"},
	"cotton":    {"April", "May", "June"},
	"sugarcane": {"February", "March", "September", "October"},
	"maize":     {"June", "July", "January", "February"},
}

// Analyzer answers historical questions over a fixed set of tables.
type Analyzer struct {
	tables Tables
	now    func() time.Time
}

// NewAnalyzer wraps tables. now anchors the lookback windows; nil means
// time.Now.
func NewAnalyzer(tables Tables, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{tables: tables, now: now}
}

// Default loads the embedded tables.
func Default() (*Analyzer, error) {
	tables, err := LoadTables()
	if err != nil {
		return nil, err
	}
	return NewAnalyzer(tables, nil), nil
}

// Analysis bundles every section available for a crop and region.
type Analysis struct {
	Trend       *models.HistoricalTrend  `json:"weather_trends,omitempty"`
	Soil        *models.SoilProfile      `json:"soil_analysis,omitempty"`
	Performance *models.CropPerformance  `json:"crop_performance,omitempty"`
	Sowing      *models.SowingPrediction `json:"optimal_sowing,omitempty"`
}

// Analyze computes all sections. crop may be empty.
func (a *Analyzer) Analyze(crop, regionName string) Analysis {
	out := Analysis{
		Trend: a.WeatherTrend(regionName),
		Soil:  a.SoilAnalysis(regionName),
	}
	if strings.TrimSpace(crop) != "" {
		out.Performance = a.CropPerformance(crop, regionName)
		out.Sowing = a.PredictOptimalSowing(crop, regionName)
	}
	return out
}

// HistoricalWeather returns the years in [now-years, now) present in the table.
func (a *Analyzer) HistoricalWeather(regionName string, years int) map[int]YearWeather {
	data, ok := a.tables.Weather[tableRegion(regionName)]
	if !ok {
		return nil
	}
	current := a.now().Year()
	out := make(map[int]YearWeather)
	for y := current - years; y < current; y++ {
		if yw, ok := data[y]; ok {
			out[y] = yw
		}
	}
	return out
}

// WeatherTrend compares the earliest and latest year within the lookback.
func (a *Analyzer) WeatherTrend(regionName string) *models.HistoricalTrend {
	historical := a.HistoricalWeather(regionName, trendLookbackYears)
	if historical == nil {
		return nil
	}

	trend := &models.HistoricalTrend{
		Temperature: models.TemperatureTrend{Trend: models.TrendStable},
		Rainfall:    models.RainfallTrend{Trend: models.TrendStable},
	}
	years := sortedYears(historical)
	if len(years) < 2 {
		return trend
	}
	first, last := historical[years[0]], historical[years[len(years)-1]]

	tempChange := round(yearlyAverage(last, tempOf)-yearlyAverage(first, tempOf), 2)
	trend.Temperature.ChangeValue = tempChange
	trend.Temperature.Trend = direction(tempChange, temperatureThreshold)

	firstRain, lastRain := yearlyTotal(first, rainOf), yearlyTotal(last, rainOf)
	if firstRain != 0 {
		rainChange := round((lastRain-firstRain)/firstRain*100, 1)
		trend.Rainfall.ChangePercent = rainChange
		trend.Rainfall.Trend = direction(rainChange, rainfallThreshold)
	}
	return trend
}

// CropPerformance summarises yields for a crop in a region.
func (a *Analyzer) CropPerformance(crop, regionName string) *models.CropPerformance {
	byRegion, ok := a.tables.Yields[cropKey(crop)]
	if !ok {
		return nil
	}
	byYear, ok := byRegion[tableRegion(regionName)]
	if !ok || len(byYear) == 0 {
		return nil
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	points := make([]models.YearYield, 0, len(years))
	var sum float64
	for _, y := range years {
		rec := byYear[y]
		points = append(points, models.YearYield{Year: y, Yield: rec.YieldPerAcre, Quality: rec.Quality})
		sum += rec.YieldPerAcre
	}
	avg := sum / float64(len(points))

	best, worst := points[0], points[0]
	for _, p := range points[1:] {
		if p.Yield > best.Yield {
			best = p
		}
		if p.Yield < worst.Yield {
			worst = p
		}
	}

	trend := models.TrendDeclining
	if points[len(points)-1].Yield > avg {
		trend = models.TrendImproving
	}

	return &models.CropPerformance{
		AverageYield: round(avg, 1),
		BestYear:     best,
		WorstYear:    worst,
		Trend:        trend,
		DataPoints:   points,
	}
}

// SoilAnalysis returns the static soil profile for a region.
func (a *Analyzer) SoilAnalysis(regionName string) *models.SoilProfile {
	profile, ok := a.tables.Soil[tableRegion(regionName)]
	if !ok {
		return nil
	}
	return &profile
}

// PredictOptimalSowing averages reference-month temperatures over the years
// whose harvest quality was excellent.
func (a *Analyzer) PredictOptimalSowing(crop, regionName string) *models.SowingPrediction {
	historical := a.HistoricalWeather(regionName, sowingLookbackYears)
	perf := a.CropPerformance(crop, regionName)
	if historical == nil || perf == nil {
		return nil
	}

	var bestYears []int
	for _, p := range perf.DataPoints {
		if p.Quality == "excellent" {
			bestYears = append(bestYears, p.Year)
		}
	}

	var temps []float64
	for _, y := range bestYears {
		if yw, ok := historical[y]; ok {
			temps = append(temps, monthsAverage(yw, sowingReferenceMonths))
		}
	}
	if len(temps) == 0 {
		return nil
	}

	confidence := "medium"
	if len(bestYears) > 3 {
		confidence = "high"
	}
	top := bestYears
	if len(top) > 3 {
		top = top[:3]
	}

	return &models.SowingPrediction{
		Crop:                cropKey(crop),
		Region:              tableRegion(regionName),
		OptimalTemperature:  round(mean(temps), 1),
		RecommendedMonths:   RecommendedMonths(crop),
		Confidence:          confidence,
		HistoricalBestYears: append([]int(nil), top...),
	}
}

// RecommendedMonths lists the customary sowing months for a crop.
func RecommendedMonths(crop string) []string {
	if months, ok := recommendedMonths[cropKey(crop)]; ok {
		return append([]string(nil), months...)
	}
	return []string{"Varies by region"}
}

// QualityPattern classifies a yield history by its quality labels.
func QualityPattern(points []models.YearYield) string {
	var excellent, good int
	for _, p := range points {
		switch p.Quality {
		case "excellent":
			excellent++
		case "good":
			good++
		}
	}
	switch {
	case excellent > good:
		return "Mostly Excellent"
	case good > excellent:
		return "Mostly Good"
	default:
		return "Variable Performance"
	}
}

func tableRegion(name string) string {
	if key, ok := region.Canonical(name); ok {
		return key
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func cropKey(crop string) string {
	return strings.ToLower(strings.TrimSpace(crop))
}

func direction(change, threshold float64) string {
	switch {
	case change > threshold:
		return models.TrendIncreasing
	case change < -threshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func sortedYears(m map[int]YearWeather) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func tempOf(m MonthlyWeather) float64 { return m.AvgTemp }
func rainOf(m MonthlyWeather) float64 { return m.Rainfall }

func sortedMonths(yw YearWeather) []string {
	names := make([]string, 0, len(yw))
	for name := range yw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func yearlyTotal(yw YearWeather, metric func(MonthlyWeather) float64) float64 {
	var total float64
	for _, name := range sortedMonths(yw) {
		total += metric(yw[name])
	}
	return total
}

func yearlyAverage(yw YearWeather, metric func(MonthlyWeather) float64) float64 {
	if len(yw) == 0 {
		return 0
	}
	return yearlyTotal(yw, metric) / float64(len(yw))
}

// monthsAverage treats a missing month as zero.
func monthsAverage(yw YearWeather, months []string) float64 {
	var sum float64
	for _, m := range months {
		sum += yw[m].AvgTemp
	}
	return sum / float64(len(months))
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
