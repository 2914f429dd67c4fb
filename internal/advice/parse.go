// Package advice turns model output into the structured advice payload and
// provides the deterministic answers used when no model output is usable.
package advice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

// ErrMalformedAdvice is returned when a completion cannot be read as an
// advice payload.
var ErrMalformedAdvice = errors.New("advice: malformed completion")

const defaultConfidence = "medium"

// Parse extracts the advice object from raw completion text. Models often
// wrap JSON in code fences or prose, so everything outside the outermost
// braces is ignored.
func Parse(raw string) (models.AdvicePayload, error) {
	var out models.AdvicePayload

	text := stripFences(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return out, fmt.Errorf("%w: no JSON object", ErrMalformedAdvice)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return models.AdvicePayload{}, fmt.Errorf("%w: %v", ErrMalformedAdvice, err)
	}
	if err := out.Validate(); err != nil {
		return models.AdvicePayload{}, fmt.Errorf("%w: %v", ErrMalformedAdvice, err)
	}
	if strings.TrimSpace(string(out.Confidence)) == "" {
		out.Confidence = defaultConfidence
	}
	return out, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	return strings.ReplaceAll(s, "```", "")
}
