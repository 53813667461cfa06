package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"companion-llm/internal/domain"
)

const (
	themeWindow        = 50
	maxThemes          = 5
	maxMoments         = 5
	momentPreviewRunes = 100
)

type themeRule struct {
	theme string
	re    *regexp.Regexp
}

func themeOf(theme string, keywords ...string) themeRule {
	return themeRule{theme: theme, re: regexp.MustCompile(`(?i)\b(` + strings.Join(keywords, "|") + `)\b`)}
}

// El orden de la tabla desempata temas con la misma frecuencia.
var themeRules = []themeRule{
	themeOf("work", "work", "job", "boss", "office", "career", "coworkers?", "meeting"),
	themeOf("school", "school", "exams?", "class", "homework", "study", "studying", "college", "university"),
	themeOf("family", "family", "mom", "dad", "parents", "brother", "sister", "kids", "children"),
	themeOf("friendships", "friends?", "buddy", "hang out"),
	themeOf("relationships", "girlfriend", "boyfriend", "partner", "dating", "date", "breakup", "marriage"),
	themeOf("health", "health", "sick", "doctor", "sleep", "tired", "exercise", "gym"),
	themeOf("finances", "money", "rent", "bills", "debt", "salary", "budget"),
	themeOf("hobbies", "music", "games?", "movies?", "books?", "hobby", "painting", "cooking"),
	themeOf("travel", "travel", "trip", "vacation", "flight"),
	themeOf("emotional wellbeing", "stress", "stressed", "anxious", "worried", "sad", "lonely", "overwhelmed"),
}

var (
	gratitudePattern = regexp.MustCompile(`(?i)\b(thanks|thank you|grateful|appreciate)\b`)
)

var milestoneMessages = []struct {
	threshold int
	label     string
}{
	{1, "First message exchanged"},
	{10, "10 messages exchanged"},
	{50, "50 messages exchanged"},
	{100, "100 messages exchanged"},
}

var milestoneDays = []struct {
	threshold int
	label     string
}{
	{7, "One week together"},
	{30, "One month together"},
	{90, "Three months together"},
	{365, "One year together"},
}

// MemorySummarizer resume el historial de una relacion para el prompt.
type MemorySummarizer struct{}

var DefaultMemorySummarizer = MemorySummarizer{}

func (s MemorySummarizer) Summarize(convCtx domain.ConversationContext) domain.MemorySummary {
	return domain.MemorySummary{
		Themes:             s.ExtractThemes(convCtx.RecentMessages),
		UserTraits:         s.InferUserTraits(convCtx.RecentMessages),
		SignificantMoments: s.SignificantMoments(convCtx.ImportantMoments),
		Milestones:         s.RelationshipMilestones(convCtx.TotalMessages, convCtx.RelationshipDuration),
	}
}

// ExtractThemes cuenta en cuantos mensajes aparece cada tema y devuelve los mas frecuentes.
func (MemorySummarizer) ExtractThemes(messages []domain.Message) []string {
	if len(messages) > themeWindow {
		messages = messages[len(messages)-themeWindow:]
	}
	counts := make(map[string]int)
	for _, m := range messages {
		for _, rule := range themeRules {
			if rule.re.MatchString(m.Content) {
				counts[rule.theme]++
			}
		}
	}

	themes := make([]string, 0, len(counts))
	for _, rule := range themeRules {
		if counts[rule.theme] > 0 {
			themes = append(themes, rule.theme)
		}
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return counts[themes[i]] > counts[themes[j]]
	})
	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}

// InferUserTraits usa solo los mensajes del usuario.
func (MemorySummarizer) InferUserTraits(messages []domain.Message) []string {
	var userMsgs []domain.Message
	for _, m := range messages {
		if m.IsFromUser() {
			userMsgs = append(userMsgs, m)
		}
	}
	if len(userMsgs) == 0 {
		return []string{}
	}

	questions, exclamations, negatives, totalLen := 0, 0, 0, 0
	grateful := false
	for _, m := range userMsgs {
		if strings.Contains(m.Content, "?") {
			questions++
		}
		if strings.Contains(m.Content, "!") {
			exclamations++
		}
		if m.EmotionalTone.IsNegative() {
			negatives++
		}
		if gratitudePattern.MatchString(m.Content) {
			grateful = true
		}
		totalLen += utf8.RuneCountInString(m.Content)
	}

	n := float64(len(userMsgs))
	traits := []string{}
	if float64(questions)/n > 0.3 {
		traits = append(traits, "curious")
	}
	if float64(totalLen)/n > 100 {
		traits = append(traits, "expressive")
	}
	if float64(exclamations)/n > 0.3 {
		traits = append(traits, "enthusiastic")
	}
	if grateful {
		traits = append(traits, "appreciative")
	}
	if len(userMsgs) >= 2 && negatives*2 >= len(userMsgs) {
		traits = append(traits, "going through a difficult time")
	}
	return traits
}

// SignificantMoments toma los momentos mas recientes y los recorta.
func (MemorySummarizer) SignificantMoments(important []domain.Message) []string {
	if len(important) > maxMoments {
		important = important[len(important)-maxMoments:]
	}
	out := make([]string, 0, len(important))
	for _, m := range important {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		out = append(out, truncateRunes(content, momentPreviewRunes))
	}
	return out
}

// RelationshipMilestones lista todos los umbrales alcanzados.
func (MemorySummarizer) RelationshipMilestones(totalMessages, durationDays int) []string {
	out := []string{}
	for _, m := range milestoneMessages {
		if totalMessages >= m.threshold {
			out = append(out, m.label)
		}
	}
	for _, m := range milestoneDays {
		if durationDays >= m.threshold {
			out = append(out, m.label)
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
