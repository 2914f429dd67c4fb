package db

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

// SnapshotQuery filters recorded weather snapshots for one region.
type SnapshotQuery struct {
	Region string
	Limit  int
	Offset int
	Start  *time.Time
	End    *time.Time
}

// SnapshotPage is one page of snapshots plus the total match count.
type SnapshotPage struct {
	Snapshots  []models.WeatherSnapshot `json:"snapshots"`
	TotalCount int                      `json:"total_count"`
}

const snapshotColumns = "region, ts, temperature, humidity, rainfall, wind_speed, condition, weather_code, source"

// ListSnapshots returns snapshots newest first.
func (s *Store) ListSnapshots(ctx context.Context, q SnapshotQuery) (*SnapshotPage, error) {
	conditions := []string{"region = $1"}
	args := []any{q.Region}

	if q.Start != nil {
		conditions = append(conditions, "ts >= $"+strconv.Itoa(len(args)+1))
		args = append(args, *q.Start)
	}
	if q.End != nil {
		conditions = append(conditions, "ts <= $"+strconv.Itoa(len(args)+1))
		args = append(args, *q.End)
	}
	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countSQL := "SELECT COUNT(*) FROM kisan.weather_snapshots " + whereClause
	var totalCount int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&totalCount); err != nil {
		return nil, err
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	args = append(args, q.Limit, q.Offset)

	query := strings.Builder{}
	query.WriteString("SELECT " + snapshotColumns + " ")
	query.WriteString("FROM kisan.weather_snapshots ")
	query.WriteString(whereClause + " ")
	query.WriteString("ORDER BY ts DESC ")
	query.WriteString("LIMIT $" + strconv.Itoa(limitPos) + " OFFSET $" + strconv.Itoa(offsetPos))

	rows, err := s.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	snapshots, err := scanSnapshots(rows)
	if err != nil {
		return nil, err
	}
	return &SnapshotPage{Snapshots: snapshots, TotalCount: totalCount}, nil
}

const latestSnapshotsSQL = `
    SELECT DISTINCT ON (region) ` + snapshotColumns + `
    FROM kisan.weather_snapshots
    ORDER BY region, ts DESC
`

// LatestSnapshots returns the newest snapshot per region.
func (s *Store) LatestSnapshots(ctx context.Context) ([]models.WeatherSnapshot, error) {
	rows, err := s.pool.Query(ctx, latestSnapshotsSQL)
	if err != nil {
		return nil, err
	}
	return scanSnapshots(rows)
}

func scanSnapshots(rows pgx.Rows) ([]models.WeatherSnapshot, error) {
	defer rows.Close()

	out := make([]models.WeatherSnapshot, 0)
	for rows.Next() {
		var m models.WeatherSnapshot
		if err := rows.Scan(
			&m.Region,
			&m.Timestamp,
			&m.Temperature,
			&m.Humidity,
			&m.Rainfall,
			&m.WindSpeed,
			&m.Condition,
			&m.WeatherCode,
			&m.Source,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
