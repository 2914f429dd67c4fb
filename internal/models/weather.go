package models

import "time"

// CurrentWeather is the normalized current-conditions snapshot.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"condition"`
	WeatherCode int     `json:"weatherCode"`
}

// ForecastDay is one entry of the daily forecast series.
type ForecastDay struct {
	Date            string  `json:"date"`
	DayLabel        string  `json:"day"`
	TempMax         float64 `json:"temp"`
	TempMin         float64 `json:"minTemp"`
	RainMM          float64 `json:"rain"`
	RainProbability float64 `json:"rainProbability"`
	Condition       string  `json:"condition"`
	WeatherCode     int     `json:"weatherCode"`
}

// Location echoes the coordinates a report was produced for.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherReport is the payload returned under "data" by the weather endpoint.
type WeatherReport struct {
	Current     CurrentWeather `json:"current"`
	Forecast    []ForecastDay  `json:"forecast"`
	Location    Location       `json:"location"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// WeatherBrief is the reduced view of current conditions used by the chat flow.
type WeatherBrief struct {
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"windSpeed"`
	Condition   string  `json:"condition"`
	Region      string  `json:"region"`
}

// Brief reduces a report to the fields the chat prompt needs.
func (r WeatherReport) Brief(region string) WeatherBrief {
	return WeatherBrief{
		Temperature: r.Current.Temperature,
		Humidity:    r.Current.Humidity,
		Rainfall:    r.Current.Rainfall,
		WindSpeed:   r.Current.WindSpeed,
		Condition:   r.Current.Condition,
		Region:      region,
	}
}
