package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

func fixedNow() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

func twoYearTables(firstTemp, lastTemp, firstRain, lastRain float64) Tables {
	return Tables{
		Weather: map[string]map[int]YearWeather{
			"punjab": {
				2020: {"january": {AvgTemp: firstTemp, Rainfall: firstRain}},
				2024: {"january": {AvgTemp: lastTemp, Rainfall: lastRain}},
			},
		},
	}
}

func TestWeatherTrendTemperatureThresholds(t *testing.T) {
	cases := []struct {
		name      string
		last      float64
		wantTrend string
	}{
		{"plus 0.6 increases", 20.6, models.TrendIncreasing},
		{"plus 0.4 is stable", 20.4, models.TrendStable},
		{"minus 0.5 boundary is stable", 19.5, models.TrendStable},
		{"minus 0.6 decreases", 19.4, models.TrendDecreasing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAnalyzer(twoYearTables(20.0, tc.last, 100, 100), fixedNow)
			trend := a.WeatherTrend("punjab")
			require.NotNil(t, trend)
			assert.Equal(t, tc.wantTrend, trend.Temperature.Trend)
		})
	}
}

func TestWeatherTrendRainfallThresholds(t *testing.T) {
	cases := map[float64]string{
		111: models.TrendIncreasing,
		110: models.TrendStable,
		90:  models.TrendStable,
		89:  models.TrendDecreasing,
	}
	for last, want := range cases {
		a := NewAnalyzer(twoYearTables(20, 20, 100, last), fixedNow)
		trend := a.WeatherTrend("Punjab")
		require.NotNil(t, trend)
		assert.Equal(t, want, trend.Rainfall.Trend, "last=%v", last)
	}
}

func TestWeatherTrendNeedsTwoYears(t *testing.T) {
	tables := Tables{Weather: map[string]map[int]YearWeather{
		"sindh": {2023: {"june": {AvgTemp: 40, Rainfall: 5}}},
	}}
	a := NewAnalyzer(tables, fixedNow)

	trend := a.WeatherTrend("sindh")
	require.NotNil(t, trend)
	assert.Equal(t, models.TrendStable, trend.Temperature.Trend)
	assert.Zero(t, trend.Temperature.ChangeValue)

	assert.Nil(t, a.WeatherTrend("balochistan"))
}

func TestWeatherTrendIgnoresYearsOutsideLookback(t *testing.T) {
	tables := Tables{Weather: map[string]map[int]YearWeather{
		"punjab": {
			1990: {"january": {AvgTemp: 10}},
			2020: {"january": {AvgTemp: 20}},
			2024: {"january": {AvgTemp: 20.2}},
		},
	}}
	trend := NewAnalyzer(tables, fixedNow).WeatherTrend("punjab")
	require.NotNil(t, trend)
	assert.Equal(t, models.TrendStable, trend.Temperature.Trend)
}

func TestCropPerformance(t *testing.T) {
	tables := Tables{Yields: map[string]map[string]map[int]YieldRecord{
		"wheat": {"punjab": {
			2021: {YieldPerAcre: 30, Quality: "good"},
			2022: {YieldPerAcre: 34, Quality: "excellent"},
			2023: {YieldPerAcre: 34, Quality: "excellent"},
			2024: {YieldPerAcre: 28, Quality: "poor"},
		}},
	}}
	perf := NewAnalyzer(tables, fixedNow).CropPerformance("Wheat", "punjab")
	require.NotNil(t, perf)

	assert.Equal(t, 31.5, perf.AverageYield)
	assert.Equal(t, 2022, perf.BestYear.Year, "ties resolve to the first year")
	assert.Equal(t, 2024, perf.WorstYear.Year)
	assert.Equal(t, models.TrendDeclining, perf.Trend)
	assert.Len(t, perf.DataPoints, 4)

	assert.Nil(t, NewAnalyzer(tables, fixedNow).CropPerformance("rice", "punjab"))
	assert.Nil(t, NewAnalyzer(tables, fixedNow).CropPerformance("wheat", "sindh"))
}

func TestPredictOptimalSowing(t *testing.T) {
	year := func(temp float64) YearWeather {
		return YearWeather{
			"march":    {AvgTemp: temp},
			"april":    {AvgTemp: temp},
			"october":  {AvgTemp: temp},
			"november": {AvgTemp: temp},
		}
	}
	tables := Tables{
		Weather: map[string]map[int]YearWeather{"punjab": {
			2019: year(20), 2020: year(22), 2021: year(24), 2022: year(26), 2023: year(30),
		}},
		Yields: map[string]map[string]map[int]YieldRecord{"wheat": {"punjab": {
			2019: {YieldPerAcre: 33, Quality: "excellent"},
			2020: {YieldPerAcre: 33, Quality: "excellent"},
			2021: {YieldPerAcre: 33, Quality: "excellent"},
			2022: {YieldPerAcre: 33, Quality: "excellent"},
			2023: {YieldPerAcre: 25, Quality: "average"},
		}}},
	}

	pred := NewAnalyzer(tables, fixedNow).PredictOptimalSowing("wheat", "punjab")
	require.NotNil(t, pred)
	assert.Equal(t, 23.0, pred.OptimalTemperature)
	assert.Equal(t, "high", pred.Confidence)
	assert.Equal(t, []int{2019, 2020, 2021}, pred.HistoricalBestYears)
	assert.Equal(t, []string{"October", "November", "December"}, pred.RecommendedMonths)
}

func TestPredictOptimalSowingMediumConfidence(t *testing.T) {
	tables := Tables{
		Weather: map[string]map[int]YearWeather{"sindh": {2022: {"march": {AvgTemp: 28}}}},
		Yields: map[string]map[string]map[int]YieldRecord{"rice": {"sindh": {
			2022: {YieldPerAcre: 27, Quality: "excellent"},
		}}},
	}
	pred := NewAnalyzer(tables, fixedNow).PredictOptimalSowing("rice", "sindh")
	require.NotNil(t, pred)
	assert.Equal(t, "medium", pred.Confidence)
	assert.Equal(t, 7.0, pred.OptimalTemperature)
}

func TestEmbeddedTablesLoad(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	a.now = fixedNow

	analysis := a.Analyze("wheat", "Khyber Pakhtunkhwa")
	assert.NotNil(t, analysis.Trend)
	assert.NotNil(t, analysis.Soil)
	assert.NotNil(t, analysis.Performance)
	assert.NotNil(t, a.SoilAnalysis("balochistan"))
	assert.Nil(t, a.SoilAnalysis("gilgit"))
}

func TestQualityPattern(t *testing.T) {
	assert.Equal(t, "Mostly Excellent", QualityPattern([]models.YearYield{{Quality: "excellent"}}))
	assert.Equal(t, "Mostly Good", QualityPattern([]models.YearYield{{Quality: "good"}, {Quality: "poor"}}))
	assert.Equal(t, "Variable Performance", QualityPattern(nil))
}
