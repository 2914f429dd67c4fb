package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/smartkisan/kisan-advisor/internal/region"
	"github.com/smartkisan/kisan-advisor/internal/schema"
	"github.com/smartkisan/kisan-advisor/internal/weather"
	"github.com/smartkisan/kisan-advisor/services/watcher/internal/collect"
	"github.com/smartkisan/kisan-advisor/services/watcher/internal/config"
	"github.com/smartkisan/kisan-advisor/services/watcher/internal/db"
	"github.com/smartkisan/kisan-advisor/services/watcher/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("watcher config", zap.Error(err))
	}

	logger := newLogger(cfg.Development)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("watcher failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(development bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+10*time.Second)
	defer cancel()

	// No caching: every run must reach the provider.
	client := weather.New(weather.Options{
		BaseURL:  cfg.WeatherBaseURL,
		Timeout:  cfg.RequestTimeout,
		CacheTTL: -1,
		Logger:   logger,
	})
	retrievalTS := time.Now().UTC().Truncate(time.Second)

	candidates, err := collect.Snapshots(ctx, client, region.All(), retrievalTS)
	if err != nil {
		logger.Warn("some regions could not be fetched", zap.Error(err))
	}
	if len(candidates) == 0 {
		return err
	}
	logger.Info("fetched current conditions", zap.Int("regions", len(candidates)))

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := schema.Ensure(ctx, pool); err != nil {
		return err
	}

	lastMap, err := db.FetchLastSnapshots(ctx, pool, utils.Regions(candidates))
	if err != nil {
		return err
	}

	pending := utils.FilterNewSnapshots(candidates, lastMap, cfg.MinInterval, cfg.TempEpsilon)
	if len(pending) == 0 {
		logger.Info("no new snapshots to insert", zap.Time("retrieval", retrievalTS))
		return nil
	}

	logger.Info("prepared new snapshots", zap.Int("count", len(pending)), zap.Bool("dry_run", cfg.DryRun))

	if cfg.DryRun {
		for _, snap := range pending {
			logger.Info("dry-run: would insert", zap.String("snapshot", utils.SnapshotString(snap)))
		}
		return nil
	}

	if err := db.InsertSnapshots(ctx, pool, pending); err != nil {
		return err
	}

	logger.Info("inserted snapshots", zap.Int("count", len(pending)))
	return nil
}
