package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Text is a string field that tolerates models answering with a list or a
// number where prose was requested.
type Text string

// UnmarshalJSON accepts a string, number, bool or array of those.
func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var list []any
	if err := json.Unmarshal(b, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, scalarString(item))
		}
		*t = Text(strings.Join(parts, ", "))
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Text(scalarString(v))
	return nil
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// IrrigationAdvice is the irrigation section of an advice payload.
type IrrigationAdvice struct {
	Recommendation Text `json:"recommendation"`
	Schedule       Text `json:"schedule"`
	WaterAmount    Text `json:"water_amount"`
	Urgency        Text `json:"urgency"`
}

// FertilizerAdvice is the fertilizer section of an advice payload.
type FertilizerAdvice struct {
	Recommendation Text `json:"recommendation"`
	Type           Text `json:"type"`
	Quantity       Text `json:"quantity"`
	Timing         Text `json:"timing"`
}

// PestControlAdvice is the pest control section of an advice payload.
type PestControlAdvice struct {
	Recommendation  Text `json:"recommendation"`
	CommonPests     Text `json:"common_pests"`
	OrganicOptions  Text `json:"organic_options"`
	ChemicalOptions Text `json:"chemical_options"`
}

// SowingHarvestAdvice is the sowing and harvest section of an advice payload.
type SowingHarvestAdvice struct {
	OptimalTiming    Text `json:"optimal_timing"`
	Preparation      Text `json:"preparation"`
	HarvestWindow    Text `json:"harvest_window"`
	YieldExpectation Text `json:"yield_expectation"`
}

// WeatherAlerts is the weather alert section of an advice payload.
type WeatherAlerts struct {
	CurrentRisks Text `json:"current_risks"`
	Precautions  Text `json:"precautions"`
	Timeline     Text `json:"timeline"`
}

// AdvicePayload is the structured recommendation the dashboard renders.
// Field names and nesting are part of the public contract.
type AdvicePayload struct {
	Irrigation    IrrigationAdvice    `json:"irrigation"`
	Fertilizer    FertilizerAdvice    `json:"fertilizer"`
	PestControl   PestControlAdvice   `json:"pest_control"`
	SowingHarvest SowingHarvestAdvice `json:"sowing_harvest"`
	WeatherAlerts WeatherAlerts       `json:"weather_alerts"`
	Summary       Text                `json:"summary"`
	Confidence    Text                `json:"confidence"`
}

// MissingSections lists every section that has no content at all.
func (a AdvicePayload) MissingSections() []string {
	var missing []string
	if a.Irrigation == (IrrigationAdvice{}) {
		missing = append(missing, "irrigation")
	}
	if a.Fertilizer == (FertilizerAdvice{}) {
		missing = append(missing, "fertilizer")
	}
	if a.PestControl == (PestControlAdvice{}) {
		missing = append(missing, "pest_control")
	}
	if a.SowingHarvest == (SowingHarvestAdvice{}) {
		missing = append(missing, "sowing_harvest")
	}
	if a.WeatherAlerts == (WeatherAlerts{}) {
		missing = append(missing, "weather_alerts")
	}
	if strings.TrimSpace(string(a.Summary)) == "" {
		missing = append(missing, "summary")
	}
	return missing
}

// Validate reports an error when any required section is empty.
func (a AdvicePayload) Validate() error {
	if missing := a.MissingSections(); len(missing) > 0 {
		return fmt.Errorf("advice missing sections: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DataSources flags which inputs informed an advice response.
type DataSources struct {
	RealTimeWeather  bool `json:"real_time_weather"`
	HistoricalTrends bool `json:"historical_trends"`
	SoilAnalysis     bool `json:"soil_analysis"`
	CropPerformance  bool `json:"crop_performance"`
}
