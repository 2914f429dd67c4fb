package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartkisan/kisan-advisor/internal/region"
	"github.com/smartkisan/kisan-advisor/services/api/db"
)

const maxSnapshotOffset = 1 << 30

// handleV1ListRegions returns every supported region
// GET /api/v1/regions
func (s *Server) handleV1ListRegions(c *gin.Context) {
	regions := region.All()
	c.JSON(http.StatusOK, gin.H{
		"data": regions,
		"meta": gin.H{
			"count": len(regions),
		},
	})
}

// handleV1RegionHistory returns the historical analysis for a region
// GET /api/v1/regions/:region/history?crop=wheat
func (s *Server) handleV1RegionHistory(c *gin.Context) {
	key, ok := region.Canonical(c.Param("region"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		return
	}

	crop := c.Query("crop")
	analysis := s.analyst.Analyze(crop, key)
	c.JSON(http.StatusOK, gin.H{
		"data": analysis,
		"meta": gin.H{
			"region": key,
			"crop":   crop,
		},
	})
}

// handleV1RegionSnapshots returns paginated recorded weather snapshots
// GET /api/v1/regions/:region/snapshots?page=1&limit=20&start=2026-01-01T00:00:00Z&end=2026-12-31T23:59:59Z
func (s *Server) handleV1RegionSnapshots(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot storage is not configured"})
		return
	}
	key, ok := region.Canonical(c.Param("region"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		return
	}

	// Parse pagination parameters
	page := 1
	if p := c.Query("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil && val > 0 {
			page = val
		}
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= s.cfg.DefaultLimit {
			limit = val
		}
	}

	// Cap the page so the offset cannot overflow.
	if maxPage := maxSnapshotOffset/limit + 1; page > maxPage {
		page = maxPage
	}
	offset := (page - 1) * limit

	// Parse optional time range filters
	var startTime, endTime *time.Time
	if start := c.Query("start"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			startTime = &t
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start time format, expected RFC3339"})
			return
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			endTime = &t
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end time format, expected RFC3339"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := s.store.ListSnapshots(ctx, db.SnapshotQuery{
		Region: key,
		Limit:  limit,
		Offset: offset,
		Start:  startTime,
		End:    endTime,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result.Snapshots,
		"pagination": gin.H{
			"page":        page,
			"limit":       limit,
			"total_count": result.TotalCount,
			"total_pages": (result.TotalCount + limit - 1) / limit,
		},
	})
}
