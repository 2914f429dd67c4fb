// Package prompt assembles the system/user prompt pairs sent to the
// completion provider. English and Urdu use fixed parallel phrasings.
package prompt

import (
	"fmt"
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/models"
)

// Prompt is the two-part input to a completion.
type Prompt struct {
	System string
	User   string
}

type phrase struct{ en, ur string }

func (p phrase) in(lang models.Language) string {
	if lang.IsUrdu() {
		return p.ur
	}
	return p.en
}

var (
	heatStress = phrase{
		"• HIGH TEMPERATURE: Risk of heat stress on crops, increase irrigation frequency",
		"• زیادہ درجہ حرارت: فصلوں پر حرارتی دباؤ کا خطرہ، آبپاشی کی فریکوئنسی بڑھائیں",
	}
	coldStress = phrase{
		"• LOW TEMPERATURE: Risk of cold stress, protect sensitive crops",
		"• کم درجہ حرارت: سردی کے دباؤ کا خطرہ، حساس فصلوں کو محفوظ کریں",
	}
	heavyRain = phrase{
		"• HEAVY RAINFALL: Reduce irrigation, monitor for waterlogging and fungal diseases",
		"• شدید بارش: آبپاشی کم کریں، پانی کے کھڑے ہونے اور fungal بیماریوں کی نگرانی کریں",
	}
	moderateRain = phrase{
		"• MODERATE RAINFALL: Adjust irrigation schedule, good for soil moisture",
		"• معتدل بارش: آبپاشی کا شیڈول ایڈجسٹ کریں، مٹی کی نمی کے لیے اچھا ہے",
	}
	noRain = phrase{
		"• NO RECENT RAIN: Irrigation needed, check soil moisture regularly",
		"• حالیہ بارش نہیں: آبپاشی درکار، مٹی کی نمی باقاعدہ چیک کریں",
	}
	fungalRisk = phrase{
		"• HIGH HUMIDITY: Increased risk of fungal diseases, monitor crops closely",
		"• زیادہ نمی: fungal بیماریوں کا بڑھتا ہوا خطرہ، فصلوں کی قریب سے نگرانی کریں",
	}
	droughtRisk = phrase{
		"• LOW HUMIDITY: Increased irrigation needs, watch for drought stress",
		"• کم نمی: آبپاشی کی ضروریات میں اضافہ، خشک سالی کے دباؤ پر نظر رکھیں",
	}
	normalWeather = phrase{
		"• Normal weather conditions for this season",
		"• اس موسم کے لیے عام موسمی حالات",
	}
)

// ImpactNotes applies the weather threshold table. Rainfall between 5 and
// 20mm inclusive of 20 counts as moderate; rain in (0, 5] emits nothing.
func ImpactNotes(temperature, rainfall float64, humidity int, lang models.Language) []string {
	var notes []string

	switch {
	case temperature > 35:
		notes = append(notes, heatStress.in(lang))
	case temperature < 10:
		notes = append(notes, coldStress.in(lang))
	}

	switch {
	case rainfall > 20:
		notes = append(notes, heavyRain.in(lang))
	case rainfall > 5:
		notes = append(notes, moderateRain.in(lang))
	case rainfall == 0:
		notes = append(notes, noRain.in(lang))
	}

	switch {
	case humidity > 80:
		notes = append(notes, fungalRisk.in(lang))
	case humidity < 40:
		notes = append(notes, droughtRisk.in(lang))
	}
	return notes
}

func impactBlock(temperature, rainfall float64, humidity int, lang models.Language) string {
	notes := ImpactNotes(temperature, rainfall, humidity, lang)
	if len(notes) == 0 {
		return normalWeather.in(lang)
	}
	return strings.Join(notes, "\n")
}

// historicalBlock renders trend, soil and yield sections that are present.
func historicalBlock(a history.Analysis) string {
	var b strings.Builder
	b.WriteString("HISTORICAL CONTEXT (For Comparison):\n")
	if a.Trend != nil {
		fmt.Fprintf(&b, "- Temperature Trend: %s (%+.2f°C)\n", a.Trend.Temperature.Trend, a.Trend.Temperature.ChangeValue)
		fmt.Fprintf(&b, "- Rainfall Trend: %s (%+.1f%%)\n", a.Trend.Rainfall.Trend, a.Trend.Rainfall.ChangePercent)
	}
	if a.Soil != nil {
		fmt.Fprintf(&b, "- Soil Types: %s\n", strings.Join(a.Soil.SoilTypes, ", "))
		fmt.Fprintf(&b, "- pH Level: %.1f-%.1f\n", a.Soil.PHRange.Min, a.Soil.PHRange.Max)
		fmt.Fprintf(&b, "- Nutrient Levels: N-%s, P-%s, K-%s\n",
			a.Soil.NutrientLevels.Nitrogen.Level,
			a.Soil.NutrientLevels.Phosphorus.Level,
			a.Soil.NutrientLevels.Potassium.Level)
	}
	if a.Performance != nil {
		fmt.Fprintf(&b, "- Avg Yield: %.1f q/acre\n", a.Performance.AverageYield)
		fmt.Fprintf(&b, "- Performance: %s\n", a.Performance.Trend)
		fmt.Fprintf(&b, "- Quality History: %s\n", history.QualityPattern(a.Performance.DataPoints))
	}
	if a.Sowing != nil {
		fmt.Fprintf(&b, "- Optimal Sowing Temperature: %.1f°C (%s confidence)\n", a.Sowing.OptimalTemperature, a.Sowing.Confidence)
		fmt.Fprintf(&b, "- Recommended Sowing Months: %s\n", strings.Join(a.Sowing.RecommendedMonths, ", "))
	}
	if a.Trend == nil && a.Soil == nil && a.Performance == nil && a.Sowing == nil {
		b.WriteString("- General agricultural knowledge available.\n")
	}
	return b.String()
}

var stageNames = map[string]phrase{
	models.StageSowing:     {"sowing/planting stage", "بوائی کا مرحلہ"},
	models.StageVegetative: {"growth stage", "نشوونما کا مرحلہ"},
	models.StageFlowering:  {"flowering stage", "پھول آنے کا مرحلہ"},
	models.StageHarvest:    {"harvest stage", "کٹائی کا مرحلہ"},
}

var unknownStage = phrase{"unknown stage", "نامعلوم مرحلہ"}

var challengeNames = map[string]string{
	"pests":       "کیڑے",
	"diseases":    "بیماریاں",
	"irrigation":  "آبپاشی",
	"soil_health": "مٹی کی صحت",
	"weather":     "موسم",
}

// contextBlock renders the conversation context lines.
func contextBlock(c models.ConversationContext, lang models.Language) string {
	var b strings.Builder
	if c.Crop != "" {
		fmt.Fprintf(&b, "- Crop: %s\n", c.Crop)
	}
	if c.Region != "" {
		fmt.Fprintf(&b, "- Region: %s\n", c.Region)
	}
	if c.GrowthStage != "" {
		stage, ok := stageNames[c.GrowthStage]
		if !ok {
			stage = unknownStage
		}
		fmt.Fprintf(&b, "- Growth Stage: %s\n", stage.in(lang))
	}
	if c.SoilType != "" {
		fmt.Fprintf(&b, "- Soil Type: %s\n", c.SoilType)
	}
	if c.IrrigationType != "" {
		fmt.Fprintf(&b, "- Irrigation: %s\n", c.IrrigationType)
	}
	if c.HasChallenges() {
		names := make([]string, 0, len(c.Challenges))
		for _, ch := range c.Challenges {
			if lang.IsUrdu() {
				if ur, ok := challengeNames[ch]; ok {
					ch = ur
				}
			}
			names = append(names, ch)
		}
		fmt.Fprintf(&b, "- Challenges: %s\n", strings.Join(names, ", "))
	}
	tone := c.Tone
	if tone == "" {
		tone = models.ToneFriendly
	}
	fmt.Fprintf(&b, "- Conversation Style: %s", tone)
	return b.String()
}

var urduCropNames = map[string]string{
	"wheat":     "گندم",
	"rice":      "چاول",
	"cotton":    "کپاس",
	"sugarcane": "گنا",
	"maize":     "مکئی",
}

// CropName returns the crop name in the requested language.
func CropName(crop string, lang models.Language) string {
	if lang.IsUrdu() {
		if ur, ok := urduCropNames[strings.ToLower(crop)]; ok {
			return ur
		}
	}
	return crop
}
