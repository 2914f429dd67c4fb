// Package convo extracts farming context from a chat history by folding a
// keyword reducer over every message. Single-valued fields take the last
// match; challenges accumulate, and an explicit "no challenge" resets them.
package convo

import (
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

type rule struct {
	value    string
	keywords []string
}

// Rules are evaluated in order, so a later rule overrides an earlier one
// when the same message matches both.
var (
	cropRules = []rule{
		{"wheat", []string{"wheat", "گندم"}},
		{"rice", []string{"rice", "چاول"}},
		{"cotton", []string{"cotton", "کپاس"}},
		{"sugarcane", []string{"sugarcane", "گنا"}},
		{"maize", []string{"maize", "مکئی"}},
	}
	regionRules = []rule{
		{"punjab", []string{"punjab", "پنجاب"}},
		{"sindh", []string{"sindh", "سندھ"}},
		{"khyber pakhtunkhwa", []string{"khyber", "خیبر"}},
		{"balochistan", []string{"balochistan", "بلوچستان"}},
	}
	stageRules = []rule{
		{models.StageSowing, []string{"sowing", "بوائی", "planting"}},
		{models.StageVegetative, []string{"vegetative", "نشوونما"}},
		{models.StageFlowering, []string{"flowering", "پھول"}},
		{models.StageHarvest, []string{"harvest", "کٹائی"}},
		{models.StageUnknown, []string{"idk", "not sure", "پتہ نہیں"}},
	}
	soilRules = []rule{
		{"sandy", []string{"sandy", "ریتیلی"}},
		{"clay", []string{"clay", "چکنی"}},
		{"loam", []string{"loam", "بھاری"}},
	}
	irrigationRules = []rule{
		{"canal", []string{"canal", "نہر"}},
		{"tube well", []string{"tube well", "ٹیوب ویل"}},
		{"rainfed", []string{"rain", "بارش"}},
	}
	challengeRules = []rule{
		{"pests", []string{"pest", "کیڑے", "insect"}},
		{"diseases", []string{"disease", "بیماری"}},
		{"irrigation", []string{"water", "پانی", "irrigation"}},
		{"soil_health", []string{"soil", "مٹی", "fertili"}},
		{"weather", []string{"weather", "موسم"}},
	}
	noChallengeKeywords = []string{"no challenge", "کوئی مسئلہ نہیں"}
	toneRules           = []rule{
		{models.ToneCasual, []string{"bro", "بھائی", "dude"}},
		{models.ToneFriendly, []string{"hello", "hi", "ہیلو"}},
	}
)

// New returns the empty context every conversation starts from.
func New() models.ConversationContext {
	return models.ConversationContext{
		Challenges: []string{},
		Tone:       models.ToneFriendly,
	}
}

// Extract folds the whole history plus the current message into a context.
// It never fails; fields nobody mentioned stay empty.
func Extract(history []models.ChatTurn, current string) models.ConversationContext {
	ctx := New()
	for _, turn := range history {
		ctx = Reduce(ctx, turn.Content)
	}
	return Reduce(ctx, current)
}

// Reduce applies one message to ctx and returns the updated context.
func Reduce(ctx models.ConversationContext, message string) models.ConversationContext {
	content := strings.ToLower(message)

	ctx.Crop = lastMatch(content, cropRules, ctx.Crop)
	ctx.Region = lastMatch(content, regionRules, ctx.Region)
	ctx.GrowthStage = lastMatch(content, stageRules, ctx.GrowthStage)
	ctx.SoilType = lastMatch(content, soilRules, ctx.SoilType)
	ctx.IrrigationType = lastMatch(content, irrigationRules, ctx.IrrigationType)

	challenges := append([]string(nil), ctx.Challenges...)
	for _, r := range challengeRules {
		if containsAny(content, r.keywords) {
			challenges = addChallenge(challenges, r.value)
		}
	}
	if containsAny(content, noChallengeKeywords) {
		challenges = []string{models.ChallengeNone}
	}
	if challenges == nil {
		challenges = []string{}
	}
	ctx.Challenges = challenges

	ctx.Tone = lastMatch(content, toneRules, ctx.Tone)
	return ctx
}

// addChallenge keeps set semantics; a {none} set is reopened by a real
// challenge instead of growing to {none, x}.
func addChallenge(set []string, value string) []string {
	if len(set) == 1 && set[0] == models.ChallengeNone {
		set = set[:0]
	}
	for _, existing := range set {
		if existing == value {
			return set
		}
	}
	return append(set, value)
}

func lastMatch(content string, rules []rule, current string) string {
	for _, r := range rules {
		if containsAny(content, r.keywords) {
			current = r.value
		}
	}
	return current
}

func containsAny(content string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(content, k) {
			return true
		}
	}
	return false
}
