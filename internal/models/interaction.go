package models

import "time"

// Interaction is one answered chat or advice request, kept for auditing.
type Interaction struct {
	ID        string        `json:"id"`
	Endpoint  string        `json:"endpoint"`
	Crop      string        `json:"crop,omitempty"`
	Region    string        `json:"region,omitempty"`
	Language  Language      `json:"language"`
	Source    string        `json:"source"`
	Outcome   string        `json:"outcome"`
	Error     string        `json:"error,omitempty"`
	Latency   time.Duration `json:"latency"`
	CreatedAt time.Time     `json:"created_at"`
}
