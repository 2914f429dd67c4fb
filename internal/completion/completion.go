// Package completion talks to the hosted language models that write chat
// replies and structured advice.
package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

var (
	// ErrNotConfigured is returned when no API key is available.
	ErrNotConfigured = errors.New("completion: provider not configured")
	// ErrEmptyCompletion is returned when the provider answers without text.
	ErrEmptyCompletion = errors.New("completion: empty completion")
)

// StatusError is a non-2xx answer from a provider.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.Code, e.Body)
}

// Request is one completion call.
type Request struct {
	System      string
	History     []models.ChatTurn
	User        string
	MaxTokens   int
	Temperature float32
	TopP        float32
	// Penalties are only sent when non-zero.
	PresencePenalty  float32
	FrequencyPenalty float32
}

// ChatRequest returns the sampling parameters used for conversational replies.
func ChatRequest(system string, history []models.ChatTurn, user string, maxTokens int) Request {
	return Request{
		System:           system,
		History:          history,
		User:             user,
		MaxTokens:        maxTokens,
		Temperature:      0.7,
		TopP:             0.9,
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
	}
}

// AdviceRequest returns the sampling parameters used for structured advice.
func AdviceRequest(system, user string, maxTokens int) Request {
	return Request{
		System:      system,
		User:        user,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
		TopP:        0.9,
	}
}

// Client produces a single completion.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Provider names accepted by New.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Config selects and configures a provider.
type Config struct {
	Provider string

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string
	OpenRouterReferer string

	GeminiAPIKey string
	GeminiModel  string
}

// New builds the configured client. A missing key yields ErrNotConfigured so
// callers can run in mock mode.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, ErrNotConfigured
		}
		c, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderOpenRouter, "":
		if cfg.OpenRouterAPIKey == "" {
			return nil, ErrNotConfigured
		}
		return NewOpenRouterClient(OpenRouterOptions{
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.OpenRouterModel,
			BaseURL: cfg.OpenRouterBaseURL,
			Referer: cfg.OpenRouterReferer,
		}), nil
	default:
		return nil, fmt.Errorf("completion: unknown provider %q", cfg.Provider)
	}
}
