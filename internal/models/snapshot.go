package models

import "time"

// WeatherSnapshot is one recorded observation of current conditions for a
// region, written by the watcher.
type WeatherSnapshot struct {
	Region      string    `json:"region"`
	Timestamp   time.Time `json:"ts"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
	Rainfall    float64   `json:"rainfall"`
	WindSpeed   float64   `json:"wind_speed"`
	Condition   string    `json:"condition"`
	WeatherCode int       `json:"weather_code"`
	Source      string    `json:"source"`
}

// SnapshotFromCurrent stamps current conditions with a region and time.
func SnapshotFromCurrent(region string, ts time.Time, source string, c CurrentWeather) WeatherSnapshot {
	return WeatherSnapshot{
		Region:      region,
		Timestamp:   ts,
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		Rainfall:    c.Rainfall,
		WindSpeed:   c.WindSpeed,
		Condition:   c.Condition,
		WeatherCode: c.WeatherCode,
		Source:      source,
	}
}
