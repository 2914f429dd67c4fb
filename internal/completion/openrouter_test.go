package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

func TestOpenRouterCompleteSendsMessagesInOrder(t *testing.T) {
	var got chatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultReferer, r.Header.Get("HTTP-Referer"))
		assert.Equal(t, appTitle, r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello farmer"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenRouterClient(OpenRouterOptions{APIKey: "key", BaseURL: srv.URL + "/"})
	history := []models.ChatTurn{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	out, err := c.Complete(context.Background(), ChatRequest("sys", history, "wheat?", 1200))
	require.NoError(t, err)
	assert.Equal(t, "hello farmer", out)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, chatMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, chatMessage{Role: "user", Content: "wheat?"}, got.Messages[3])
	assert.Equal(t, DefaultOpenRouterModel, got.Model)
	assert.Equal(t, 1200, got.MaxTokens)
	assert.InDelta(t, 0.1, got.PresencePenalty, 1e-6)
}

func TestOpenRouterCompleteStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOpenRouterClient(OpenRouterOptions{APIKey: "key", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), AdviceRequest("sys", "user", 2000))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Contains(t, se.Body, "overloaded")
}

func TestOpenRouterCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenRouterClient(OpenRouterOptions{APIKey: "key", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), AdviceRequest("sys", "user", 10))
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenRouterWithoutKeyIsNotConfigured(t *testing.T) {
	c := NewOpenRouterClient(OpenRouterOptions{})
	_, err := c.Complete(context.Background(), Request{})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestNewSelectsProvider(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: ProviderOpenRouter})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(context.Background(), Config{Provider: ProviderGemini})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(context.Background(), Config{Provider: "bard", OpenRouterAPIKey: "k"})
	assert.Error(t, err)

	c, err := New(context.Background(), Config{OpenRouterAPIKey: "k", OpenRouterModel: "m"})
	require.NoError(t, err)
	assert.Equal(t, "OpenRouter:m", c.Name())
}
