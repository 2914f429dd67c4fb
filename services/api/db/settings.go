package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

const getSettingsSQL = `
    SELECT settings
    FROM kisan.settings
    WHERE user_id = $1
`

// GetSettings returns the stored settings for userID, or nil when none exist.
func (s *Store) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	var raw []byte
	if err := s.pool.QueryRow(ctx, getSettingsSQL, userID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var out models.Settings
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

const upsertSettingsSQL = `
    INSERT INTO kisan.settings (user_id, settings, updated_at)
    VALUES ($1, $2, now())
    ON CONFLICT (user_id) DO UPDATE
    SET settings = EXCLUDED.settings,
        updated_at = EXCLUDED.updated_at
`

// SaveSettings upserts the settings record for userID.
func (s *Store) SaveSettings(ctx context.Context, userID string, settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, upsertSettingsSQL, userID, raw)
	return err
}
