package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartkisan/kisan-advisor/internal/advisor"
	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/region"
	"github.com/smartkisan/kisan-advisor/internal/weather"
)

// coordinateBody accepts numbers or numeric strings; the dashboard stores
// coordinates as strings.
type coordinateBody struct {
	Lat any `json:"lat"`
	Lng any `json:"lng"`
}

// empty reports whether either value is missing; the region's location is
// used instead.
func (b *coordinateBody) empty() bool {
	return coordinateString(b.Lat) == "" || coordinateString(b.Lng) == ""
}

func coordinateString(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

type adviceRequest struct {
	CropType         string          `json:"cropType"`
	Region           string          `json:"region"`
	Language         string          `json:"language"`
	SpecificQuestion string          `json:"specificQuestion"`
	Coordinates      *coordinateBody `json:"coordinates"`
}

// handleAdvice returns structured farming advice.
// POST /advice
func (s *Server) handleAdvice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
		return
	}

	var coords *region.Coordinates
	if req.Coordinates != nil && !req.Coordinates.empty() {
		lat, lng, err := weather.ParseCoordinates(coordinateString(req.Coordinates.Lat), coordinateString(req.Coordinates.Lng))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid coordinates"})
			return
		}
		coords = &region.Coordinates{Lat: lat, Lng: lng}
	}

	// The advisor bounds each upstream call on its own.
	ctx := c.Request.Context()

	res := s.advisor.Advise(ctx, advisor.AdviceRequest{
		Crop:             req.CropType,
		Region:           req.Region,
		Language:         models.ParseLanguage(req.Language),
		SpecificQuestion: req.SpecificQuestion,
		Coordinates:      coords,
	})

	if res.Outcome == advisor.OutcomeDegraded {
		c.JSON(http.StatusInternalServerError, gin.H{
			"id":           res.ID,
			"error":        res.Err.Error(),
			"advice":       res.Advice,
			"source":       res.Source,
			"timestamp":    s.timestamp(),
			"weather_used": false,
		})
		return
	}

	body := gin.H{
		"id":           res.ID,
		"success":      true,
		"advice":       res.Advice,
		"source":       res.Source,
		"timestamp":    s.timestamp(),
		"weather_used": res.WeatherUsed,
		"data_sources": res.DataSources,
	}
	if res.Current != nil {
		body["current_weather"] = gin.H{
			"temperature": res.Current.Temperature,
			"rainfall":    res.Current.Rainfall,
			"condition":   res.Current.Condition,
		}
	}
	c.JSON(http.StatusOK, body)
}
