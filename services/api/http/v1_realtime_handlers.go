package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleV1RealtimeNow returns the latest recorded snapshot per region
// GET /api/v1/realtime/now
func (s *Server) handleV1RealtimeNow(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot storage is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	latest, err := s.store.LatestSnapshots(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(latest) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no snapshot data available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": latest,
		"meta": gin.H{
			"regions_count": len(latest),
			"generated_at":  s.now().UTC().Format(time.RFC3339),
		},
	})
}
