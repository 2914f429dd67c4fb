// Package schema owns the Postgres DDL shared by the API and the watcher.
package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var statements = []string{
	`CREATE SCHEMA IF NOT EXISTS kisan`,
	`CREATE TABLE IF NOT EXISTS kisan.settings (
		user_id    TEXT PRIMARY KEY,
		settings   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS kisan.interactions (
		id         UUID PRIMARY KEY,
		endpoint   TEXT NOT NULL,
		crop       TEXT,
		region     TEXT,
		language   TEXT NOT NULL,
		source     TEXT NOT NULL,
		outcome    TEXT NOT NULL,
		error      TEXT,
		latency_ms BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS kisan.weather_snapshots (
		id           BIGSERIAL PRIMARY KEY,
		region       TEXT NOT NULL,
		ts           TIMESTAMPTZ NOT NULL,
		temperature  DOUBLE PRECISION NOT NULL,
		humidity     INTEGER NOT NULL,
		rainfall     DOUBLE PRECISION NOT NULL,
		wind_speed   DOUBLE PRECISION NOT NULL,
		condition    TEXT NOT NULL,
		weather_code INTEGER NOT NULL,
		source       TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (region, ts)
	)`,
	`CREATE INDEX IF NOT EXISTS weather_snapshots_region_ts_idx
		ON kisan.weather_snapshots (region, ts DESC)`,
}

// Ensure creates every table that does not exist yet.
func Ensure(ctx context.Context, db Execer) error {
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
