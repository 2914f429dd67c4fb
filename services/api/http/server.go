package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartkisan/kisan-advisor/internal/advisor"
	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/services/api/config"
	"github.com/smartkisan/kisan-advisor/services/api/db"
)

// Store is the persistence the handlers need. A nil Store disables the
// endpoints that depend on it.
type Store interface {
	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
	SaveSettings(ctx context.Context, userID string, settings models.Settings) error
	ListSnapshots(ctx context.Context, q db.SnapshotQuery) (*db.SnapshotPage, error)
	LatestSnapshots(ctx context.Context) ([]models.WeatherSnapshot, error)
}

// Deps are the collaborators a Server routes requests to.
type Deps struct {
	Advisor *advisor.Service
	Weather advisor.WeatherSource
	Analyst advisor.Analyst
	Store   Store
	Logger  *zap.Logger
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg     config.Config
	advisor *advisor.Service
	weather advisor.WeatherSource
	analyst advisor.Analyst
	store   Store
	logger  *zap.Logger
	engine  *gin.Engine
	now     func() time.Time
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.Recovery())
	engine.Use(accessLogMiddleware(deps.Logger))
	engine.Use(corsMiddleware())

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server := &Server{
		cfg:     cfg,
		advisor: deps.Advisor,
		weather: deps.Weather,
		analyst: deps.Analyst,
		store:   deps.Store,
		logger:  deps.Logger,
		engine:  engine,
		now:     time.Now,
	}
	server.registerRoutes()
	server.registerV1Routes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/weather", s.handleWeather)
	s.engine.POST("/chat", s.handleChat)
	s.engine.POST("/advice", s.handleAdvice)
	s.engine.GET("/settings", s.handleGetSettings)
	s.engine.POST("/settings", s.handleSaveSettings)

	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"error":   "Method not allowed",
			"message": c.Request.Method + " is not supported on " + c.Request.URL.Path,
		})
	})
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// timestamp formats now the way every envelope reports it.
func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func (s *Server) upstreamContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.UpstreamTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// accessLogMiddleware writes one structured line per request.
func accessLogMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
