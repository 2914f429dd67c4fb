package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

const defaultUserID = "default"

func userID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-User-ID")); id != "" {
		return id
	}
	return defaultUserID
}

// handleGetSettings returns stored settings or the defaults.
// GET /settings
func (s *Server) handleGetSettings(c *gin.Context) {
	settings := models.DefaultSettings()

	if s.store != nil {
		ctx, cancel := s.upstreamContext(c)
		defer cancel()

		stored, err := s.store.GetSettings(ctx, userID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch settings"})
			return
		}
		if stored != nil {
			settings = *stored
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

type settingsRequest struct {
	Settings *models.Settings `json:"settings"`
}

// handleSaveSettings validates and stores settings.
// POST /settings
func (s *Server) handleSaveSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Settings == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required settings fields"})
		return
	}
	if missing := req.Settings.MissingRequired(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required settings fields",
			"missing": missing,
		})
		return
	}

	if s.store != nil {
		ctx, cancel := s.upstreamContext(c)
		defer cancel()

		if err := s.store.SaveSettings(ctx, userID(c), *req.Settings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save settings"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Settings saved successfully",
		"settings": req.Settings,
	})
}
