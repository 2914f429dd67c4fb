package prompt

import (
	"fmt"
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/models"
)

// ChatInput is everything the conversational prompt draws on.
type ChatInput struct {
	Message  string
	Context  models.ConversationContext
	Language models.Language
	Weather  *models.WeatherBrief
	Analysis history.Analysis
}

const chatPersona = `You are SmartKisan AI - a friendly, conversational farming assistant for Pakistani farmers. You're having a real-time conversation with a farmer.

AGRICULTURAL EXPERTISE:
- You have deep knowledge of Pakistani agriculture, crops, and regional conditions
- You understand soil types, irrigation methods, and crop cycles
- You can predict optimal planting times based on weather patterns
- You provide specific, actionable advice for Pakistani farming conditions
- You consider regional variations in climate and soil`

const chatStyle = `CONVERSATION STYLE:
- Be NATURAL and CONVERSATIONAL - talk like a real person, not a robot
- Remember context from previous messages in this conversation
- Ask follow-up questions to understand their situation better
- Show empathy and understanding of their challenges
- Use simple, clear language that farmers can understand
- If they mention crops/regions, use that context in your response

RESPONSE FORMATTING (IMPORTANT - USE THIS STYLE):
- Use **bold** for important terms and key recommendations
- Use bullet points • for lists and step-by-step advice
- Use emojis to make it engaging 🌱💧🌞
- Structure information clearly with line breaks
- Include weather-specific advice based on current conditions
- Provide timing recommendations based on seasonal patterns

WEATHER-BASED RECOMMENDATIONS:
- Adjust irrigation advice based on recent rainfall
- Consider temperature for pest/disease risks
- Use humidity levels for fungal disease warnings
- Factor in wind conditions for spraying schedules`

var (
	chatLanguageNote = phrase{
		"Reply in English.",
		"Reply in Urdu (اردو میں جواب دیں).",
	}
	weatherUnavailable = phrase{
		"Weather data unavailable - use general seasonal advice",
		"موسمیاتی ڈیٹا دستیاب نہیں - عمومی موسمی مشورے استعمال کریں",
	}
	noContextYet = "No specific context yet. Start a friendly conversation."
)

// BuildChat assembles the conversational prompt. The user part is the raw
// message.
func BuildChat(in ChatInput) Prompt {
	var b strings.Builder
	b.WriteString(chatPersona)
	b.WriteString("\n\nCURRENT WEATHER CONTEXT (USE THIS FOR REAL-TIME ADVICE):\n")
	b.WriteString(chatWeatherBlock(in.Weather, in.Language))
	b.WriteString("\n\n")
	b.WriteString(historicalBlock(in.Analysis))
	b.WriteString("\nCURRENT CONTEXT:\n")
	if ctx := contextBlock(in.Context, in.Language); ctx != "" {
		b.WriteString(ctx)
	} else {
		b.WriteString(noContextYet)
	}
	b.WriteString("\n\n")
	b.WriteString(chatStyle)
	b.WriteString("\n\n")
	b.WriteString(chatLanguageNote.in(in.Language))
	b.WriteString("\nRemember: this is a real conversation with a Pakistani farmer who needs help right now.")

	return Prompt{System: b.String(), User: in.Message}
}

func chatWeatherBlock(w *models.WeatherBrief, lang models.Language) string {
	if w == nil {
		return weatherUnavailable.in(lang)
	}
	impact := impactBlock(w.Temperature, w.Rainfall, w.Humidity, lang)
	region := strings.ToUpper(w.Region)
	if lang.IsUrdu() {
		return fmt.Sprintf("%s میں موجودہ موسم:\n• درجہ حرارت: %v°C\n• نمی: %d%%\n• حالیہ بارش: %v ملی میٹر\n• ہوا کی رفتار: %v کلومیٹر/گھنٹہ\n• حالت: %s\n\nموسم کے اثرات کا تجزیہ:\n%s",
			region, w.Temperature, w.Humidity, w.Rainfall, w.WindSpeed, w.Condition, impact)
	}
	return fmt.Sprintf("CURRENT WEATHER IN %s:\n• Temperature: %v°C\n• Humidity: %d%%\n• Recent Rainfall: %vmm\n• Wind Speed: %v km/h\n• Condition: %s\n\nWEATHER IMPACT ANALYSIS:\n%s",
		region, w.Temperature, w.Humidity, w.Rainfall, w.WindSpeed, w.Condition, impact)
}
