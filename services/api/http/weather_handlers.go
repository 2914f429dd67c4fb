package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartkisan/kisan-advisor/internal/weather"
)

// handleWeather proxies the forecast provider.
// GET /weather?latitude=..&longitude=..&days=7
func (s *Server) handleWeather(c *gin.Context) {
	lat, lng, err := weather.ParseCoordinates(c.Query("latitude"), c.Query("longitude"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid coordinates",
			"message": "Please provide valid latitude and longitude values",
		})
		return
	}
	days, err := weather.ParseDays(c.Query("days"), s.cfg.DefaultDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid days",
			"message": "days must be a positive integer",
		})
		return
	}

	ctx, cancel := s.upstreamContext(c)
	defer cancel()

	res := s.weather.Lookup(ctx, lat, lng, days)
	if !res.Live() {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   res.Err.Error(),
			"data":    res.Report,
			"source":  res.Source,
			"note":    "Using mock data due to API failure",
		})
		return
	}

	c.Header("Cache-Control", "s-maxage=300, stale-while-revalidate")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    res.Report,
		"source":  res.Source,
	})
}
