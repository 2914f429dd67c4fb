package history

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

// MonthlyWeather is one month of regional history.
type MonthlyWeather struct {
	AvgTemp  float64 `json:"avg_temp"`
	Rainfall float64 `json:"rainfall"`
	Humidity float64 `json:"humidity"`
}

// YearWeather maps lowercase month names to monthly records.
type YearWeather map[string]MonthlyWeather

// YieldRecord is one year of output for a crop in a region.
type YieldRecord struct {
	YieldPerAcre float64 `json:"yield_per_acre"`
	Quality      string  `json:"quality"`
}

// Tables holds the bundled reference data. It is never mutated after load.
type Tables struct {
	// region -> year -> month
	Weather map[string]map[int]YearWeather
	// crop -> region -> year
	Yields map[string]map[string]map[int]YieldRecord
	// region -> profile
	Soil map[string]models.SoilProfile
}

// LoadTables decodes the embedded JSON tables.
func LoadTables() (Tables, error) {
	var t Tables
	if err := decodeEmbedded("data/historical_weather.json", &t.Weather); err != nil {
		return Tables{}, err
	}
	if err := decodeEmbedded("data/crop_yield_data.json", &t.Yields); err != nil {
		return Tables{}, err
	}
	if err := decodeEmbedded("data/soil_data.json", &t.Soil); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func decodeEmbedded(name string, dst any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
