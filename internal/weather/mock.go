package weather

import (
	"math/rand/v2"
	"time"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

// mockCodes are the WMO codes the synthetic forecast draws from.
var mockCodes = []int{0, 1, 2, 3}

// Mock builds a plausible report used when the provider is unavailable.
// Current conditions are fixed; the forecast is lightly randomised.
func Mock(lat, lng float64, days int, now time.Time) models.WeatherReport {
	days = clampDays(days)
	now = now.UTC()

	forecast := make([]models.ForecastDay, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i)
		code := mockCodes[rand.IntN(len(mockCodes))]
		forecast = append(forecast, models.ForecastDay{
			Date:            date.Format("2006-01-02"),
			DayLabel:        date.Format("Mon"),
			TempMax:         float64(26 + rand.IntN(5)),
			TempMin:         float64(16 + rand.IntN(5)),
			RainMM:          float64(rand.IntN(20)),
			RainProbability: float64(rand.IntN(50)),
			Condition:       ConditionFor(code),
			WeatherCode:     code,
		})
	}

	return models.WeatherReport{
		Current: models.CurrentWeather{
			Temperature: 28,
			Humidity:    65,
			Rainfall:    12,
			WindSpeed:   15,
			Condition:   ConditionFor(2),
			WeatherCode: 2,
		},
		Forecast:    forecast,
		Location:    models.Location{Latitude: lat, Longitude: lng},
		LastUpdated: now,
	}
}
