package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/smartkisan/kisan-advisor/internal/advisor"
	"github.com/smartkisan/kisan-advisor/internal/completion"
	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/weather"
	"github.com/smartkisan/kisan-advisor/services/api/config"
	"github.com/smartkisan/kisan-advisor/services/api/db"
	httpserver "github.com/smartkisan/kisan-advisor/services/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	analyzer, err := history.Default()
	if err != nil {
		logger.Fatal("failed to load historical tables", zap.Error(err))
	}

	weatherClient := weather.New(weather.Options{
		BaseURL:   cfg.WeatherBaseURL,
		Timeout:   cfg.UpstreamTimeout,
		CacheTTL:  cfg.WeatherCacheTTL,
		CacheSize: cfg.WeatherCacheSize,
		Logger:    logger.Named("weather"),
	})

	llm, err := completion.New(ctx, cfg.Completion)
	switch {
	case errors.Is(err, completion.ErrNotConfigured):
		logger.Warn("no completion API key set, answering from fallbacks",
			zap.String("provider", cfg.Completion.Provider))
		llm = nil
	case err != nil:
		logger.Fatal("completion client error", zap.Error(err))
	default:
		logger.Info("completion provider ready", zap.String("provider", llm.Name()))
	}

	deps := httpserver.Deps{
		Weather: weatherClient,
		Analyst: analyzer,
		Logger:  logger.Named("http"),
	}

	var recorder advisor.Recorder
	if cfg.DatabaseURL != "" {
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connection error", zap.Error(err))
		}
		defer store.Close()
		deps.Store = store
		recorder = store
	} else {
		logger.Info("DATABASE_URL not set, persistence disabled")
	}

	deps.Advisor = advisor.New(weatherClient, analyzer, llm, recorder, logger.Named("advisor"), advisor.Options{
		HistoryWindow: cfg.ChatHistoryWindow,
		ForecastDays:  cfg.DefaultDays,
		Timeout:       cfg.UpstreamTimeout,
	})

	srv := httpserver.New(cfg, deps)
	logger.Info("REST API listening", zap.String("addr", cfg.ListenAddr()))

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
