package prompt

import (
	"fmt"
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/models"
)

// AdviceInput is everything the structured advice prompt draws on.
type AdviceInput struct {
	Crop             string
	Region           string
	Language         models.Language
	Current          *models.CurrentWeather
	Forecast         []models.ForecastDay
	Analysis         history.Analysis
	SpecificQuestion string
}

const advicePersona = "You are SmartKisan AI, an expert agricultural advisor specializing in Pakistani farming conditions. Provide REAL-TIME, weather-aware farming advice."

// AdviceSchema is the exact JSON shape the model must answer with.
const AdviceSchema = `{
  "irrigation": {
    "recommendation": "specific advice based on CURRENT rainfall and temperature",
    "schedule": "adjust based on upcoming forecast",
    "water_amount": "adjust based on recent rainfall",
    "urgency": "high/medium/low based on conditions"
  },
  "fertilizer": {
    "recommendation": "advice considering CURRENT soil moisture and temperature",
    "type": "fertilizer types suitable for current weather",
    "quantity": "amount per acre",
    "timing": "when to apply considering weather forecast"
  },
  "pest_control": {
    "recommendation": "pest risks based on CURRENT humidity and temperature",
    "common_pests": "pests likely in current conditions",
    "organic_options": "natural remedies",
    "chemical_options": "if necessary"
  },
  "sowing_harvest": {
    "optimal_timing": "adjust based on CURRENT conditions vs historical",
    "preparation": "field preparation considering current weather",
    "harvest_window": "when to harvest",
    "yield_expectation": "expected yield given current conditions"
  },
  "weather_alerts": {
    "current_risks": "immediate weather risks to crops",
    "precautions": "protective measures needed NOW",
    "timeline": "when to expect issues based on forecast"
  },
  "summary": "brief overall summary focusing on CURRENT situation",
  "confidence": "high/medium/low"
}`

const adviceGuidelines = `KEY GUIDELINES FOR REAL-TIME ADVICE:
- Base ALL recommendations on CURRENT weather conditions
- Adjust irrigation based on RECENT rainfall and FORECAST
- Consider temperature impact on fertilizer effectiveness
- Account for humidity in pest/disease risk assessment
- Suggest immediate actions for current weather risks
- Compare current conditions to historical averages
- Provide time-sensitive recommendations`

var adviceLanguageNote = phrase{
	"Write every JSON string value in English.",
	"Write every JSON string value in Urdu. Keep the JSON keys in English.",
}

// BuildAdvice assembles the structured-advice prompt.
func BuildAdvice(in AdviceInput) Prompt {
	var b strings.Builder
	b.WriteString(advicePersona)
	b.WriteString("\n\nCRITICAL WEATHER CONTEXT - USE THIS FOR ALL RECOMMENDATIONS:\n")
	b.WriteString(adviceWeatherBlock(in.Current, in.Forecast, in.Language))
	b.WriteString("\nRESPONSE FORMAT REQUIREMENTS:\nYou MUST return your response in this exact JSON format, with no text before or after it:\n")
	b.WriteString(AdviceSchema)
	b.WriteString("\n\n")
	b.WriteString(adviceGuidelines)
	b.WriteString("\n\nADDITIONAL CONTEXT:\n")
	b.WriteString(contextBlock(models.ConversationContext{
		Crop:   in.Crop,
		Region: in.Region,
		Tone:   models.ToneFriendly,
	}, in.Language))
	b.WriteString("\n")
	b.WriteString(historicalBlock(in.Analysis))
	if q := strings.TrimSpace(in.SpecificQuestion); q != "" {
		fmt.Fprintf(&b, "\nUSER'S SPECIFIC QUESTION: %s\n", q)
	}
	b.WriteString("\n")
	b.WriteString(adviceLanguageNote.in(in.Language))

	return Prompt{System: b.String(), User: adviceUserPrompt(in)}
}

func adviceUserPrompt(in AdviceInput) string {
	if in.Language.IsUrdu() {
		return fmt.Sprintf("مندرجہ بالا موجودہ موسمی حالات کو مدنظر رکھتے ہوئے %s میں %s کے لیے رئیل ٹائم کاشتکاری کا مشورہ دیں۔ اصل موسم کی بنیاد پر فوری اقدامات اور ایڈجسٹمنٹ پر توجہ مرکوز کریں۔",
			in.Region, CropName(in.Crop, in.Language))
	}
	return fmt.Sprintf("Generate REAL-TIME farming advice for %s in %s considering the current weather conditions shown above. Focus on immediate actions and adjustments needed based on actual weather.",
		in.Crop, in.Region)
}

func adviceWeatherBlock(cur *models.CurrentWeather, forecast []models.ForecastDay, lang models.Language) string {
	if cur == nil {
		return "WEATHER DATA UNAVAILABLE - Using general recommendations\n"
	}

	var b strings.Builder
	b.WriteString("CURRENT WEATHER CONDITIONS (REAL-TIME):\n")
	fmt.Fprintf(&b, "- Temperature: %v°C\n", cur.Temperature)
	fmt.Fprintf(&b, "- Rainfall: %vmm\n", cur.Rainfall)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", cur.Humidity)
	fmt.Fprintf(&b, "- Wind Speed: %v km/h\n", cur.WindSpeed)
	fmt.Fprintf(&b, "- Condition: %s\n\n", cur.Condition)

	fmt.Fprintf(&b, "%d-DAY WEATHER FORECAST:\n", len(forecast))
	for i, day := range forecast {
		if i == 3 {
			fmt.Fprintf(&b, "- ... and %d more days\n", len(forecast)-3)
			break
		}
		fmt.Fprintf(&b, "- %s: %v°C, %vmm rain, %v%% rain chance\n", day.DayLabel, day.TempMax, day.RainMM, day.RainProbability)
	}

	b.WriteString("\nIMMEDIATE WEATHER IMPACT ANALYSIS:\n")
	b.WriteString(impactBlock(cur.Temperature, cur.Rainfall, cur.Humidity, lang))
	b.WriteString("\n")
	return b.String()
}
