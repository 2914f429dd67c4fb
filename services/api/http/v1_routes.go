package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/regions, /api/v1/realtime
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Region endpoints - catalogue, historical analysis and recorded snapshots
	regions := v1.Group("/regions")
	{
		regions.GET("", s.handleV1ListRegions)
		regions.GET("/:region/history", s.handleV1RegionHistory)
		regions.GET("/:region/snapshots", s.handleV1RegionSnapshots)
	}

	// Realtime endpoints - latest recorded data
	realtime := v1.Group("/realtime")
	{
		realtime.GET("/now", s.handleV1RealtimeNow)
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
