package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartkisan/kisan-advisor/internal/advice"
	"github.com/smartkisan/kisan-advisor/internal/advisor"
	"github.com/smartkisan/kisan-advisor/internal/convo"
	"github.com/smartkisan/kisan-advisor/internal/models"
)

type chatRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []models.ChatTurn `json:"conversationHistory"`
	Language            string            `json:"language"`
	UserRegion          string            `json:"userRegion"`
}

const unconfiguredNote = "Please set OPENROUTER_API_KEY or GEMINI_API_KEY to enable live AI answers"

// handleChat answers a conversational message.
// POST /chat
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	lang := models.ParseLanguage(req.Language)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chat handler panicked", zap.Any("panic", r))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":        fmt.Sprint(r),
				"fallback":     advice.Reply(req.Message, lang, nil),
				"timestamp":    s.timestamp(),
				"context":      convo.Extract(req.ConversationHistory, req.Message),
				"weather_used": false,
			})
		}
	}()

	// The advisor bounds each upstream call on its own.
	ctx := c.Request.Context()

	res := s.advisor.Chat(ctx, advisor.ChatRequest{
		Message:    req.Message,
		History:    req.ConversationHistory,
		Language:   lang,
		UserRegion: req.UserRegion,
	})

	body := gin.H{
		"id":           res.ID,
		"response":     res.Response,
		"timestamp":    s.timestamp(),
		"source":       res.Source,
		"context":      res.Context,
		"weather_used": res.WeatherUsed,
	}
	if res.Weather != nil {
		body["current_weather"] = res.Weather
	}
	switch res.Outcome {
	case advisor.OutcomeUnconfigured:
		body["note"] = unconfiguredNote
	case advisor.OutcomeDegraded:
		body["error"] = res.Err.Error()
	}
	c.JSON(http.StatusOK, body)
}
