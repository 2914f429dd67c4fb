package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	stmts  []string
	failAt int
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	if r.failAt > 0 && len(r.stmts) == r.failAt {
		return pgconn.CommandTag{}, errors.New("permission denied")
	}
	return pgconn.CommandTag{}, nil
}

func TestEnsureRunsSchemaFirst(t *testing.T) {
	rec := &recordingExecer{}
	require.NoError(t, Ensure(context.Background(), rec))
	require.Len(t, rec.stmts, len(statements))
	assert.True(t, strings.HasPrefix(rec.stmts[0], "CREATE SCHEMA"))
	for _, stmt := range rec.stmts[1:] {
		assert.Contains(t, stmt, "kisan.")
	}
}

func TestEnsureStopsOnError(t *testing.T) {
	rec := &recordingExecer{failAt: 2}
	err := Ensure(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure schema")
	assert.Len(t, rec.stmts, 2)
}
