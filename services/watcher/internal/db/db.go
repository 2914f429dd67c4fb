package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

// FetchLastSnapshots loads the most recent stored snapshot per region.
func FetchLastSnapshots(ctx context.Context, pool *pgxpool.Pool, regions []string) (map[string]models.WeatherSnapshot, error) {
	result := make(map[string]models.WeatherSnapshot, len(regions))
	if len(regions) == 0 {
		return result, nil
	}

	rows, err := pool.Query(ctx, `
SELECT DISTINCT ON (region) region, ts, temperature, rainfall
FROM kisan.weather_snapshots
WHERE region = ANY($1)
ORDER BY region, ts DESC`, regions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var snap models.WeatherSnapshot
		if err := rows.Scan(&snap.Region, &snap.Timestamp, &snap.Temperature, &snap.Rainfall); err != nil {
			return nil, err
		}
		result[snap.Region] = snap
	}

	return result, rows.Err()
}

// InsertSnapshots writes new snapshots to weather_snapshots.
func InsertSnapshots(ctx context.Context, pool *pgxpool.Pool, snaps []models.WeatherSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO kisan.weather_snapshots (region, ts, temperature, humidity, rainfall, wind_speed, condition, weather_code, source, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
ON CONFLICT (region, ts) DO UPDATE
SET temperature = EXCLUDED.temperature,
    humidity = EXCLUDED.humidity,
    rainfall = EXCLUDED.rainfall,
    wind_speed = EXCLUDED.wind_speed,
    condition = EXCLUDED.condition,
    weather_code = EXCLUDED.weather_code`

	for _, s := range snaps {
		batch.Queue(query, s.Region, s.Timestamp, s.Temperature, s.Humidity, s.Rainfall, s.WindSpeed, s.Condition, s.WeatherCode, s.Source)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range snaps {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}
