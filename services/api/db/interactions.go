package db

import (
	"context"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

const insertInteractionSQL = `
    INSERT INTO kisan.interactions
        (id, endpoint, crop, region, language, source, outcome, error, latency_ms, created_at)
    VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9, $10)
    ON CONFLICT (id) DO NOTHING
`

// RecordInteraction stores one answered request.
func (s *Store) RecordInteraction(ctx context.Context, in models.Interaction) error {
	_, err := s.pool.Exec(ctx, insertInteractionSQL,
		in.ID,
		in.Endpoint,
		in.Crop,
		in.Region,
		string(in.Language),
		in.Source,
		in.Outcome,
		in.Error,
		in.Latency.Milliseconds(),
		in.CreatedAt,
	)
	return err
}
