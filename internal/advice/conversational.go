package advice

import (
	"fmt"
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

type cannedAnswers struct {
	greeting, wheat, rice, cotton, irrigation, fertilizer, fallback string
}

var canned = map[models.Language]cannedAnswers{
	models.English: {
		greeting:   "Hello! I'm SmartKisan AI, your farming assistant. I can help with crop advice, weather patterns, irrigation schedules, pest control, and more. What would you like to know?",
		wheat:      "For wheat in Pakistan: \n• **Ideal sowing**: Nov-Dec \n• **Seed rate**: 50kg/acre \n• **Water**: 4-6 irrigations \n• **Harvest**: Apr-May \n• **Yield**: 25-40 quintals/acre",
		rice:       "Rice cultivation tips: \n• **Sowing time**: June-July \n• **Water need**: 1200-1500mm/season \n• **Standing water**: 2-5cm during growth \n• **Harvest**: Oct-Nov",
		cotton:     "Cotton farming guide: \n• **Sowing**: Apr-May \n• **Temperature**: 25-35°C ideal \n• **Fertilizer**: NPK 50:25:25 kg/acre \n• **Pest control**: Regular monitoring needed",
		irrigation: "Irrigation tips: \n• **Water early morning** \n• **Check soil moisture** regularly \n• **Adjust based on rainfall** \n• **Avoid waterlogging**",
		fertilizer: "Fertilizer advice: \n• **Soil test** before application \n• **Use balanced NPK** \n• **Organic compost** improves soil health \n• **Split applications** better than single dose",
		fallback:   "I understand you're asking about farming. For personalized advice, please tell me:\n• Your **crop type**\n• Your **region**\n• Specific **issue or question**\nI'll provide detailed guidance!",
	},
	models.Urdu: {
		greeting:   "ہیلو! میں اسمارٹ کسان AI ہوں، آپ کا کاشتکاری معاون۔ میں فصل کے مشورے، موسم کے نمونے، آبپاشی کے شیڈول، کیڑوں کا کنٹرول، اور مزید میں مدد کر سکتا ہوں۔ آپ کیا جاننا چاہیں گے؟",
		wheat:      "پاکستان میں گندم کے لیے: \n• **مثالی بوائی**: نومبر-دسمبر \n• **بیج کی مقدار**: 50 کلوگرام فی ایکڑ \n• **پانی**: 4-6 آبپاشیاں \n• **کٹائی**: اپریل-مئی \n• **پیداوار**: 25-40 کونٹل فی ایکڑ",
		rice:       "چاول کی کاشت کے نکات: \n• **بوائی کا وقت**: جون-جولائی \n• **پانی کی ضرورت**: 1200-1500mm فی سیزن \n• **کھڑا پانی**: نشوونما کے دوران 2-5cm \n• **کٹائی**: اکتوبر-نومبر",
		cotton:     "کپاس کی کاشت گائیڈ: \n• **بوائی**: اپریل-مئی \n• **درجہ حرارت**: 25-35°C مثالی \n• **کھاد**: NPK 50:25:25 کلوگرام فی ایکڑ \n• **کیڑوں کا کنٹرول**: باقاعدہ نگرانی درکار",
		irrigation: "آبپاشی کے نکات: \n• **صبح سویرے پانی دیں** \n• **مٹی کی نمی** باقاعدہ چیک کریں \n• **بارش کے مطابق** ایڈجسٹ کریں \n• **پانی کے کھڑے ہونے سے** گریز کریں",
		fertilizer: "کھاد کا مشورہ: \n• **استعمال سے پہلے مٹی کی جانچ** کریں \n• **متوازن NPK** استعمال کریں \n• **نامیاتی کمپوسٹ** مٹی کی صحت بہتر بناتی ہے \n• **تقسیم شدہ استعمال** واحد خوراک سے بہتر ہے",
		fallback:   "میں سمجھتا ہوں کہ آپ کاشتکاری کے بارے میں پوچھ رہے ہیں۔ ذاتی نوعیت کے مشورے کے لیے، براہ کرم مجھے بتائیں:\n• آپ کی **فصل کی قسم**\n• آپ کا **علاقہ**\n• مخصوص **مسئلہ یا سوال**\nمیں تفصیلی رہنمائی فراہم کروں گا!",
	},
}

var (
	greetingWords   = []string{"hello", "hi", "ہیلو", "سلام"}
	wheatWords      = []string{"wheat", "گندم"}
	riceWords       = []string{"rice", "چاول"}
	cottonWords     = []string{"cotton", "کپاس"}
	irrigationWords = []string{"irrigation", "آبپاشی", "پانی"}
	fertilizerWords = []string{"fertilizer", "کھاد"}
)

// Reply picks a canned answer by keyword, first match wins. When weather is
// known a one-line summary is appended. The result is never empty.
func Reply(message string, lang models.Language, weather *models.WeatherBrief) string {
	answers := canned[lang]
	if answers.fallback == "" {
		answers = canned[models.English]
	}

	msg := strings.ToLower(message)
	var text string
	switch {
	case containsAny(msg, greetingWords):
		text = answers.greeting
	case containsAny(msg, wheatWords):
		text = answers.wheat
	case containsAny(msg, riceWords):
		text = answers.rice
	case containsAny(msg, cottonWords):
		text = answers.cotton
	case containsAny(msg, irrigationWords):
		text = answers.irrigation
	case containsAny(msg, fertilizerWords):
		text = answers.fertilizer
	default:
		text = answers.fallback
	}

	if weather != nil {
		text += weatherLine(weather, lang)
	}
	return text
}

func weatherLine(w *models.WeatherBrief, lang models.Language) string {
	if lang.IsUrdu() {
		return fmt.Sprintf("\n\n🌦️ %s میں موجودہ موسم: %v°C، %s، %v ملی میٹر بارش", w.Region, w.Temperature, w.Condition, w.Rainfall)
	}
	return fmt.Sprintf("\n\n🌦️ Current weather in %s: %v°C, %s, %vmm rain", w.Region, w.Temperature, w.Condition, w.Rainfall)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
