package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "mistralai/mistral-7b-instruct:free"
	DefaultReferer           = "https://smartkisan.app"
	appTitle                 = "SmartKisan AI"
)

// OpenRouterOptions configures an OpenRouterClient.
type OpenRouterOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	Referer    string
	HTTPClient *http.Client
}

// OpenRouterClient calls the OpenAI-compatible chat completions endpoint.
type OpenRouterClient struct {
	http    *http.Client
	apiKey  string
	model   string
	url     string
	referer string
}

func NewOpenRouterClient(opts OpenRouterOptions) *OpenRouterClient {
	if opts.Model == "" {
		opts.Model = DefaultOpenRouterModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOpenRouterBaseURL
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &OpenRouterClient{
		http:    opts.HTTPClient,
		apiKey:  opts.APIKey,
		model:   opts.Model,
		url:     strings.TrimRight(opts.BaseURL, "/") + "/chat/completions",
		referer: opts.Referer,
	}
}

func (c *OpenRouterClient) Name() string { return "OpenRouter:" + c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens,omitempty"`
	Temperature      float32       `json:"temperature"`
	TopP             float32       `json:"top_p,omitempty"`
	PresencePenalty  float32       `json:"presence_penalty,omitempty"`
	FrequencyPenalty float32       `json:"frequency_penalty,omitempty"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends system, history and user messages in that order.
func (c *OpenRouterClient) Complete(ctx context.Context, r Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	msgs := make([]chatMessage, 0, len(r.History)+2)
	msgs = append(msgs, chatMessage{Role: "system", Content: r.System})
	for _, turn := range r.History {
		msgs = append(msgs, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: r.User})

	b, err := json.Marshal(chatReq{
		Model:            c.model,
		Messages:         msgs,
		MaxTokens:        r.MaxTokens,
		Temperature:      r.Temperature,
		TopP:             r.TopP,
		PresencePenalty:  r.PresencePenalty,
		FrequencyPenalty: r.FrequencyPenalty,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", appTitle)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &StatusError{Provider: "openrouter", Code: resp.StatusCode, Body: string(body)}
	}

	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}
