package advice

import (
	"regexp"
	"strings"

	"github.com/smartkisan/kisan-advisor/internal/models"
)

var modelArtifacts = strings.NewReplacer("<s>", "", "</s>", "", "[INST]", "", "[/INST]", "")

type topicEmoji struct {
	trigger string
	pattern *regexp.Regexp
	emoji   string
}

var (
	englishTopics = []topicEmoji{
		{"irrigation", regexp.MustCompile(`(?i)irrigation`), "💧"},
		{"fertilizer", regexp.MustCompile(`(?i)fertilizer`), "🌿"},
		{"weather", regexp.MustCompile(`(?i)weather`), "🌦️"},
	}
	urduTopics = []topicEmoji{
		{"آبپاشی", regexp.MustCompile(`آبپاشی`), "💧"},
		{"کھاد", regexp.MustCompile(`کھاد`), "🌿"},
		{"موسم", regexp.MustCompile(`موسم`), "🌦️"},
	}
)

// Polish removes instruction-template tokens some models echo back and tags
// topic words with an emoji when the reply carries none for that topic.
func Polish(reply string, lang models.Language) string {
	cleaned := strings.TrimSpace(modelArtifacts.Replace(reply))

	topics := englishTopics
	if lang.IsUrdu() {
		topics = urduTopics
	}
	for _, t := range topics {
		if strings.Contains(cleaned, t.trigger) && !strings.Contains(cleaned, t.emoji) {
			cleaned = t.pattern.ReplaceAllString(cleaned, "$0 "+t.emoji)
		}
	}
	return cleaned
}
