package completion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

func TestGeminiContentsMapsRoles(t *testing.T) {
	history := []models.ChatTurn{
		{Role: "user", Content: "I grow wheat"},
		{Role: "assistant", Content: "Good choice"},
		{Role: "system", Content: "ignored role"},
	}

	contents := geminiContents(history, "when to sow?")
	require.Len(t, contents, 4)

	wantRoles := []string{"user", "model", "user", "user"}
	wantText := []string{"I grow wheat", "Good choice", "ignored role", "when to sow?"}
	for i, c := range contents {
		assert.EqualValues(t, wantRoles[i], c.Role, i)
		require.Len(t, c.Parts, 1)
		assert.Equal(t, wantText[i], c.Parts[0].Text)
	}
}

func TestGeminiContentsWithoutHistory(t *testing.T) {
	contents := geminiContents(nil, "hello")
	require.Len(t, contents, 1)
	assert.EqualValues(t, "user", contents[0].Role)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
