package completion

import (
	"context"
	"strings"

	genai "google.golang.org/genai"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

// Complete sends the system prompt as the system instruction.
func (g *GeminiClient) Complete(ctx context.Context, r Request) (string, error) {
	contents := geminiContents(r.History, r.User)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(r.System, genai.RoleUser),
		Temperature:       genai.Ptr(r.Temperature),
		TopP:              genai.Ptr(r.TopP),
		MaxOutputTokens:   int32(r.MaxTokens),
	}
	if r.PresencePenalty != 0 {
		cfg.PresencePenalty = genai.Ptr(r.PresencePenalty)
	}
	if r.FrequencyPenalty != 0 {
		cfg.FrequencyPenalty = genai.Ptr(r.FrequencyPenalty)
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	txt := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(txt) == "" {
		return "", ErrEmptyCompletion
	}
	return txt, nil
}

// geminiContents maps prior assistant turns to the model role and appends
// the current user message.
func geminiContents(history []models.ChatTurn, user string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return append(contents, genai.NewContentFromText(user, genai.RoleUser))
}
