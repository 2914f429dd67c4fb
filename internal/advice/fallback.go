package advice

import (
	"fmt"
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/history"
	"github.com/smartkisan/kisan-advisor/internal/models"
	"github.com/smartkisan/kisan-advisor/internal/prompt"
)

// Urgency and risk levels stay in English in both languages; the dashboard
// keys its badges on them.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Conditions is everything the rule-based advisor reads. Current is always
// present because weather lookups degrade to mock data.
type Conditions struct {
	Crop        string
	Region      string
	Language    models.Language
	Current     models.CurrentWeather
	Forecast    []models.ForecastDay
	Soil        *models.SoilProfile
	Performance *models.CropPerformance
}

type text struct{ en, ur string }

func (t text) in(lang models.Language) models.Text {
	if lang.IsUrdu() {
		return models.Text(t.ur)
	}
	return models.Text(t.en)
}

// IrrigationUrgency ranks how soon the field needs water.
func IrrigationUrgency(c models.CurrentWeather) string {
	switch {
	case c.Rainfall > 15:
		return LevelLow
	case c.Rainfall > 5:
		return LevelMedium
	case c.Temperature > 30:
		return LevelHigh
	default:
		return LevelMedium
	}
}

// PestRisk ranks pest pressure from humidity and temperature.
func PestRisk(c models.CurrentWeather) string {
	switch {
	case c.Humidity > 75 && c.Temperature > 25:
		return LevelHigh
	case c.Humidity > 65:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Structured builds a complete advice payload from weather thresholds alone.
// Every section is populated for every input.
func Structured(c Conditions) models.AdvicePayload {
	lang := c.Language
	cur := c.Current
	crop := strings.ToLower(strings.TrimSpace(c.Crop))
	if crop == "" {
		crop = "wheat"
	}

	return models.AdvicePayload{
		Irrigation: models.IrrigationAdvice{
			Recommendation: irrigationAdvice(cur).in(lang),
			Schedule:       irrigationSchedule(cur, c.Forecast).in(lang),
			WaterAmount:    waterAmount(cur).in(lang),
			Urgency:        models.Text(IrrigationUrgency(cur)),
		},
		Fertilizer: models.FertilizerAdvice{
			Recommendation: fertilizerAdvice(cur, c.Soil).in(lang),
			Type:           "NPK 50:25:25",
			Quantity:       text{"50kg/acre", "50 کلوگرام فی ایکڑ"}.in(lang),
			Timing:         fertilizerTiming(cur, c.Forecast).in(lang),
		},
		PestControl: models.PestControlAdvice{
			Recommendation:  pestAdvice(PestRisk(cur)).in(lang),
			CommonPests:     commonPests(crop, cur).in(lang),
			OrganicOptions:  text{"Neem oil, Garlic spray", "نیم کا تیل، لہسن کا سپرے"}.in(lang),
			ChemicalOptions: text{"Use only if infestation severe", "صرف شدید انفیکشن کی صورت میں استعمال کریں"}.in(lang),
		},
		SowingHarvest: models.SowingHarvestAdvice{
			OptimalTiming:    optimalTiming(crop, cur, lang),
			Preparation:      fieldPreparation(cur).in(lang),
			HarvestWindow:    harvestWindow(crop).in(lang),
			YieldExpectation: yieldExpectation(cur, c.Performance, lang),
		},
		WeatherAlerts: models.WeatherAlerts{
			CurrentRisks: currentRisks(cur, lang),
			Precautions:  precautions(cur).in(lang),
			Timeline:     riskTimeline(c.Forecast, lang),
		},
		Summary:    summary(crop, c.Region, cur, lang),
		Confidence: LevelHigh,
	}
}

func irrigationAdvice(c models.CurrentWeather) text {
	switch {
	case c.Rainfall > 20:
		return text{
			"Recent heavy rainfall detected. Skip next irrigation to prevent waterlogging.",
			"حالیہ شدید بارش کا پتہ چلا ہے۔ پانی کے کھڑے ہونے سے روکنے کے لیے اگلی آبپاشی چھوڑ دیں۔",
		}
	case c.Rainfall > 5:
		return text{
			"Moderate rainfall received. Reduce irrigation frequency and monitor soil moisture.",
			"معتدل بارش ہوئی ہے۔ آبپاشی کی فریکوئنسی کم کریں اور مٹی کی نمی پر نظر رکھیں۔",
		}
	case c.Temperature > 32:
		return text{
			"High temperatures increasing water demand. Maintain regular irrigation schedule.",
			"زیادہ درجہ حرارت پانی کی مانگ بڑھا رہا ہے۔ باقاعدہ آبپاشی کا شیڈول برقرار رکھیں۔",
		}
	default:
		return text{
			"Normal conditions. Continue with standard irrigation practices.",
			"عام حالات۔ معیاری آبپاشی کے طریقوں کو جاری رکھیں۔",
		}
	}
}

func expectedRain(forecast []models.ForecastDay, days int) float64 {
	var total float64
	for i, d := range forecast {
		if i == days {
			break
		}
		total += d.RainMM
	}
	return total
}

func irrigationSchedule(c models.CurrentWeather, forecast []models.ForecastDay) text {
	switch {
	case expectedRain(forecast, 3) > 10:
		return text{
			"Rain expected in the next 3 days. Delay irrigation and reassess after the rain.",
			"اگلے 3 دنوں میں بارش متوقع ہے۔ آبپاشی مؤخر کریں اور بارش کے بعد دوبارہ جائزہ لیں۔",
		}
	case c.Temperature > 30:
		return text{
			"Irrigate every 5-7 days, early morning or evening.",
			"ہر 5-7 دن بعد، صبح سویرے یا شام کو آبپاشی کریں۔",
		}
	default:
		return text{
			"Irrigate every 10-12 days depending on soil moisture.",
			"مٹی کی نمی کے مطابق ہر 10-12 دن بعد آبپاشی کریں۔",
		}
	}
}

func waterAmount(c models.CurrentWeather) text {
	switch {
	case c.Rainfall > 15:
		return text{"Reduce to 1-1.5 acre-inches", "1-1.5 ایکڑ انچ تک کم کریں"}
	case c.Temperature > 30:
		return text{"3-3.5 acre-inches per irrigation", "ہر آبپاشی میں 3-3.5 ایکڑ انچ"}
	default:
		return text{"2.5-3 acre-inches per irrigation", "ہر آبپاشی میں 2.5-3 ایکڑ انچ"}
	}
}

func fertilizerAdvice(c models.CurrentWeather, soil *models.SoilProfile) text {
	if c.Rainfall > 20 {
		return text{
			"Hold fertilizer until the field drains to avoid nutrient runoff.",
			"غذائی اجزاء کے بہاؤ سے بچنے کے لیے کھیت خشک ہونے تک کھاد روک دیں۔",
		}
	}
	if soil != nil && strings.EqualFold(soil.NutrientLevels.Nitrogen.Level, "low") {
		return text{
			"Soil nitrogen is low in this region. Apply urea in split doses with irrigation.",
			"اس علاقے میں مٹی میں نائٹروجن کم ہے۔ آبپاشی کے ساتھ یوریا تقسیم شدہ مقدار میں ڈالیں۔",
		}
	}
	if c.Temperature > 35 {
		return text{
			"Avoid applying fertilizer in peak heat. Apply in the cool hours after irrigation.",
			"شدید گرمی میں کھاد نہ ڈالیں۔ آبپاشی کے بعد ٹھنڈے اوقات میں ڈالیں۔",
		}
	}
	return text{
		"Apply balanced NPK based on a soil test.",
		"مٹی کی جانچ کی بنیاد پر متوازن NPK ڈالیں۔",
	}
}

func fertilizerTiming(c models.CurrentWeather, forecast []models.ForecastDay) text {
	if expectedRain(forecast, 3) > 10 || c.Rainfall > 20 {
		return text{"After the expected rain passes", "متوقع بارش گزرنے کے بعد"}
	}
	return text{"Within the next week, with irrigation", "اگلے ہفتے کے اندر، آبپاشی کے ساتھ"}
}

func pestAdvice(risk string) text {
	switch risk {
	case LevelHigh:
		return text{
			"High pest and fungal risk in warm humid conditions. Scout fields every 2-3 days.",
			"گرم مرطوب حالات میں کیڑوں اور fungal بیماریوں کا زیادہ خطرہ۔ ہر 2-3 دن بعد کھیت کا معائنہ کریں۔",
		}
	case LevelMedium:
		return text{
			"Moderate pest risk. Inspect crops weekly and watch leaf undersides.",
			"کیڑوں کا معتدل خطرہ۔ ہفتہ وار فصل کا معائنہ کریں اور پتوں کے نیچے دیکھیں۔",
		}
	default:
		return text{
			"Low pest risk. Continue routine monitoring.",
			"کیڑوں کا کم خطرہ۔ معمول کی نگرانی جاری رکھیں۔",
		}
	}
}

var cropPests = map[string]text{
	"wheat":     {"Aphids, Rust, Termites", "تیلا، کنگی، دیمک"},
	"rice":      {"Stem borer, Leaf folder, Blast", "تنے کی سنڈی، پتہ لپیٹ سنڈی، بلاسٹ"},
	"cotton":    {"Whitefly, Pink bollworm, Jassid", "سفید مکھی، گلابی سنڈی، سبز تیلا"},
	"sugarcane": {"Top borer, Pyrilla, Termites", "چوٹی کی سنڈی، پائریلا، دیمک"},
	"maize":     {"Fall armyworm, Stem borer, Aphids", "فال آرمی ورم، تنے کی سنڈی، تیلا"},
}

func commonPests(crop string, c models.CurrentWeather) text {
	pests, ok := cropPests[crop]
	if !ok {
		pests = text{"Aphids, Whitefly, Termites", "تیلا، سفید مکھی، دیمک"}
	}
	if c.Humidity > 80 {
		pests.en += ", Fungal diseases"
		pests.ur += "، fungal بیماریاں"
	}
	return pests
}

func optimalTiming(crop string, c models.CurrentWeather, lang models.Language) models.Text {
	months := strings.Join(history.RecommendedMonths(crop), ", ")
	switch {
	case c.Temperature > 35:
		return text{
			fmt.Sprintf("%s. Current heat is above ideal; wait for cooler days before sowing.", months),
			fmt.Sprintf("%s۔ موجودہ گرمی مثالی سے زیادہ ہے؛ بوائی سے پہلے ٹھنڈے دنوں کا انتظار کریں۔", months),
		}.in(lang)
	case c.Rainfall > 20:
		return text{
			fmt.Sprintf("%s. Let the soil reach workable moisture before sowing.", months),
			fmt.Sprintf("%s۔ بوائی سے پہلے مٹی کو مناسب نمی تک آنے دیں۔", months),
		}.in(lang)
	default:
		return text{
			fmt.Sprintf("%s. Current conditions are suitable.", months),
			fmt.Sprintf("%s۔ موجودہ حالات موزوں ہیں۔", months),
		}.in(lang)
	}
}

func fieldPreparation(c models.CurrentWeather) text {
	if c.Rainfall > 15 {
		return text{
			"Ensure drainage channels are clear before ploughing.",
			"ہل چلانے سے پہلے نکاسی کی نالیاں صاف کریں۔",
		}
	}
	return text{
		"Plough twice, level the field and apply farmyard manure.",
		"دو بار ہل چلائیں، کھیت ہموار کریں اور گوبر کی کھاد ڈالیں۔",
	}
}

var harvestWindows = map[string]text{
	"wheat":     {"Apr-May", "اپریل-مئی"},
	"rice":      {"Oct-Nov", "اکتوبر-نومبر"},
	"cotton":    {"Sep-Nov", "ستمبر-نومبر"},
	"sugarcane": {"Nov-Mar", "نومبر-مارچ"},
	"maize":     {"Sep-Oct", "ستمبر-اکتوبر"},
}

func harvestWindow(crop string) text {
	if w, ok := harvestWindows[crop]; ok {
		return w
	}
	return text{"Varies by crop", "فصل کے مطابق مختلف"}
}

func yieldExpectation(c models.CurrentWeather, perf *models.CropPerformance, lang models.Language) models.Text {
	stress := c.Temperature > 35 || c.Rainfall > 20
	if perf != nil {
		if stress {
			return text{
				fmt.Sprintf("Below the historical average of %.1f q/acre if stress persists", perf.AverageYield),
				fmt.Sprintf("دباؤ برقرار رہا تو تاریخی اوسط %.1f کونٹل فی ایکڑ سے کم", perf.AverageYield),
			}.in(lang)
		}
		return text{
			fmt.Sprintf("Around the historical average of %.1f q/acre", perf.AverageYield),
			fmt.Sprintf("تاریخی اوسط %.1f کونٹل فی ایکڑ کے قریب", perf.AverageYield),
		}.in(lang)
	}
	if stress {
		return text{"Slightly reduced due to weather stress", "موسمی دباؤ کی وجہ سے قدرے کم"}.in(lang)
	}
	return text{"Normal yield expected", "معمول کی پیداوار متوقع"}.in(lang)
}

func currentRisks(c models.CurrentWeather, lang models.Language) models.Text {
	notes := prompt.ImpactNotes(c.Temperature, c.Rainfall, c.Humidity, lang)
	if len(notes) == 0 {
		return text{"No immediate weather risks", "فوری طور پر کوئی موسمی خطرہ نہیں"}.in(lang)
	}
	for i, n := range notes {
		notes[i] = strings.TrimSpace(strings.TrimPrefix(n, "•"))
	}
	return models.Text(strings.Join(notes, "; "))
}

func precautions(c models.CurrentWeather) text {
	switch {
	case c.Temperature > 35:
		return text{
			"Irrigate in the evening and avoid spraying during midday heat.",
			"شام کو آبپاشی کریں اور دوپہر کی گرمی میں سپرے سے گریز کریں۔",
		}
	case c.Rainfall > 20:
		return text{
			"Open drainage paths and postpone spraying until leaves dry.",
			"نکاسی کے راستے کھولیں اور پتے خشک ہونے تک سپرے مؤخر کریں۔",
		}
	case c.Humidity > 80:
		return text{
			"Improve air flow between rows and apply preventive fungicide if needed.",
			"قطاروں کے درمیان ہوا کا گزر بہتر کریں اور ضرورت ہو تو احتیاطی fungicide ڈالیں۔",
		}
	default:
		return text{
			"Routine field monitoring is sufficient.",
			"معمول کی نگرانی کافی ہے۔",
		}
	}
}

func riskTimeline(forecast []models.ForecastDay, lang models.Language) models.Text {
	for _, d := range forecast {
		if d.RainMM > 10 || d.RainProbability > 60 {
			return text{
				fmt.Sprintf("Rain likely on %s (%vmm, %v%% chance)", d.DayLabel, d.RainMM, d.RainProbability),
				fmt.Sprintf("%s کو بارش کا امکان (%v ملی میٹر، %v%% امکان)", d.DayLabel, d.RainMM, d.RainProbability),
			}.in(lang)
		}
		if d.TempMax > 38 {
			return text{
				fmt.Sprintf("Heat stress possible on %s (%v°C)", d.DayLabel, d.TempMax),
				fmt.Sprintf("%s کو حرارتی دباؤ ممکن (%v°C)", d.DayLabel, d.TempMax),
			}.in(lang)
		}
	}
	return text{"Stable conditions expected this week", "اس ہفتے مستحکم حالات متوقع"}.in(lang)
}

func summary(crop, regionName string, c models.CurrentWeather, lang models.Language) models.Text {
	if regionName == "" {
		regionName = "punjab"
	}
	return text{
		fmt.Sprintf("Current conditions for %s in %s: %v°C, %s, %vmm rain. Irrigation urgency is %s and pest risk is %s.",
			crop, regionName, c.Temperature, c.Condition, c.Rainfall, IrrigationUrgency(c), PestRisk(c)),
		fmt.Sprintf("%s میں %s کے لیے موجودہ حالات: %v°C، %s، %v ملی میٹر بارش۔ آبپاشی کی فوری ضرورت %s اور کیڑوں کا خطرہ %s ہے۔",
			regionName, prompt.CropName(crop, lang), c.Temperature, c.Condition, c.Rainfall, IrrigationUrgency(c), PestRisk(c)),
	}.in(lang)
}
