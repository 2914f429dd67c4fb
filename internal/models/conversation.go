package models

import "strings"

// Language selects one of the two supported phrasings.
type Language string

const (
	English Language = "en"
	Urdu    Language = "ur"
)

// ParseLanguage maps anything other than "ur" to English.
func ParseLanguage(s string) Language {
	if strings.EqualFold(strings.TrimSpace(s), string(Urdu)) {
		return Urdu
	}
	return English
}

// IsUrdu reports whether Urdu phrasing should be used.
func (l Language) IsUrdu() bool { return l == Urdu }

// ChatTurn is one prior message of a conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Growth stages recognised in conversation.
const (
	StageSowing     = "sowing"
	StageVegetative = "vegetative"
	StageFlowering  = "flowering"
	StageHarvest    = "harvest"
	StageUnknown    = "unknown"
)

// Conversation tones.
const (
	ToneFriendly = "friendly"
	ToneCasual   = "casual"
)

// ChallengeNone marks an explicit "no challenges" statement.
const ChallengeNone = "none"

// ConversationContext is what the extractor learned about the farmer.
type ConversationContext struct {
	Crop           string   `json:"crop,omitempty"`
	Region         string   `json:"region,omitempty"`
	GrowthStage    string   `json:"growthStage,omitempty"`
	SoilType       string   `json:"soilType,omitempty"`
	IrrigationType string   `json:"irrigationType,omitempty"`
	Challenges     []string `json:"challenges"`
	Tone           string   `json:"conversationTone"`
}

// HasChallenges reports whether real challenges (not "none") were mentioned.
func (c ConversationContext) HasChallenges() bool {
	for _, ch := range c.Challenges {
		if ch != ChallengeNone {
			return true
		}
	}
	return false
}
