package models

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
	TrendImproving  = "improving"
	TrendDeclining  = "declining"
)

// TemperatureTrend is the first-to-last-year temperature delta in °C.
type TemperatureTrend struct {
	Trend       string  `json:"trend"`
	ChangeValue float64 `json:"change"`
}

// RainfallTrend is the first-to-last-year rainfall delta in percent.
type RainfallTrend struct {
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"change"`
}

// HistoricalTrend summarises the regional weather history.
type HistoricalTrend struct {
	Temperature TemperatureTrend `json:"temperature"`
	Rainfall    RainfallTrend    `json:"rainfall"`
}

// YearYield is one year of crop output.
type YearYield struct {
	Year    int     `json:"year"`
	Yield   float64 `json:"yield"`
	Quality string  `json:"quality"`
}

// CropPerformance is the derived yield view for a crop in a region.
type CropPerformance struct {
	AverageYield float64     `json:"average_yield"`
	BestYear     YearYield   `json:"best_performance"`
	WorstYear    YearYield   `json:"worst_performance"`
	Trend        string      `json:"trend"`
	DataPoints   []YearYield `json:"data_points"`
}

// SowingPrediction estimates sowing conditions from the best historical years.
type SowingPrediction struct {
	Crop                string   `json:"crop"`
	Region              string   `json:"region"`
	OptimalTemperature  float64  `json:"optimal_temperature"`
	RecommendedMonths   []string `json:"recommended_months"`
	Confidence          string   `json:"confidence"`
	HistoricalBestYears []int    `json:"historical_best_years"`
}

// Range is an inclusive numeric range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NutrientLevel is a qualitative soil nutrient rating.
type NutrientLevel struct {
	Level string `json:"level"`
}

// NutrientLevels groups the primary macronutrients.
type NutrientLevels struct {
	Nitrogen   NutrientLevel `json:"nitrogen"`
	Phosphorus NutrientLevel `json:"phosphorus"`
	Potassium  NutrientLevel `json:"potassium"`
}

// SoilProfile is the static soil record for a region.
type SoilProfile struct {
	SoilTypes      []string       `json:"soil_types"`
	PHRange        Range          `json:"ph_range"`
	NutrientLevels NutrientLevels `json:"nutrient_levels"`
	OrganicMatter  string         `json:"organic_matter,omitempty"`
}

// PrimarySoil returns the first listed soil type or "".
func (s SoilProfile) PrimarySoil() string {
	if len(s.SoilTypes) == 0 {
		return ""
	}
	return s.SoilTypes[0]
}
