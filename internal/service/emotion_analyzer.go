package service

import (
	"regexp"
	"sort"
	"strings"

	"companion-llm/internal/domain"
)

// EmotionAnalyzer puntua el texto del usuario contra un lexico por tono.
// No guarda estado: dos llamadas con el mismo texto dan el mismo resultado.
type EmotionAnalyzer struct{}

// DefaultEmotionAnalyzer permite uso directo sin instanciar.
var DefaultEmotionAnalyzer = EmotionAnalyzer{}

var emotionLexicon = map[domain.Tone][]string{
	domain.ToneHappy: {
		"happy", "glad", "great", "good", "wonderful", "awesome", "pleased",
		"delighted", "cheerful", "fantastic", "smiling", "smile",
	},
	domain.ToneSad: {
		"sad", "unhappy", "depressed", "lonely", "feeling down", "miserable",
		"heartbroken", "crying", "cry", "tears", "hopeless", "grieving", "devastated", "empty",
	},
	domain.ToneExcited: {
		"excited", "thrilled", "can't wait", "cannot wait", "pumped", "amazing",
		"ecstatic", "stoked", "eager",
	},
	domain.ToneCalm: {
		"calm", "relaxed", "peaceful", "serene", "content", "chill", "at ease", "rested",
	},
	domain.ToneAnxious: {
		"anxious", "worried", "nervous", "scared", "afraid", "stressed", "panic",
		"overwhelmed", "fear", "uneasy", "tense", "freaking out",
	},
	domain.ToneAngry: {
		"angry", "mad", "furious", "annoyed", "frustrated", "hate", "irritated",
		"pissed", "rage", "fed up",
	},
	domain.ToneLoving: {
		"love", "adore", "care about", "cherish", "miss you", "grateful", "thankful", "appreciate",
	},
	domain.TonePlayful: {
		"haha", "lol", "joke", "funny", "silly", "kidding", "lmao", "hehe", "fun",
	},
	domain.ToneSerious: {
		"important", "serious", "need to talk", "decision", "responsibility", "concerned",
	},
}

// Frases de crisis: chequeo independiente del puntaje por lexico.
var crisisPatterns = compileAll(
	`\bkill(ing)?\s+myself\b`,
	`\bend(ing)?\s+my\s+life\b`,
	`\bend\s+it\s+all\b`,
	`\bwant\s+to\s+die\b`,
	`\bsuicid(e|al)\b`,
	`\b(hurt|harm|cut)(ing)?\s+myself\b`,
	`\bself[-\s]?harm\b`,
	`\bno\s+reason\s+to\s+live\b`,
	`\bkill\s+(him|her|them|someone|somebody)\b`,
	`\bhurt\s+(someone|somebody|others)\b`,
)

var emergencyPatterns = compileAll(
	`\bemergency\b`,
	`\bhelp\s+me\b`,
	`\bplease\s+help\b`,
	`\burgent(ly)?\b`,
	`\bin\s+danger\b`,
	`\bcan'?t\s+breathe\b`,
	`\bpanic\s+attack\b`,
)

var emotionMatchers = buildEmotionMatchers(emotionLexicon)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// buildEmotionMatchers arma una alternancia por tono; las frases largas van primero
// para que "feeling down" gane sobre palabras sueltas.
func buildEmotionMatchers(lexicon map[domain.Tone][]string) map[domain.Tone]*regexp.Regexp {
	out := make(map[domain.Tone]*regexp.Regexp, len(lexicon))
	for tone, words := range lexicon {
		sorted := append([]string(nil), words...)
		sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
		quoted := make([]string, 0, len(sorted))
		for _, w := range sorted {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
		out[tone] = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return out
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Analyze devuelve la señal emocional del mensaje.
func (EmotionAnalyzer) Analyze(text string) domain.EmotionalSignal {
	scores := make(map[domain.Tone]int, len(emotionMatchers))
	for _, tone := range domain.AllTones {
		re, ok := emotionMatchers[tone]
		if !ok {
			continue
		}
		if n := len(re.FindAllStringIndex(text, -1)); n > 0 {
			scores[tone] = n
		}
	}

	primary := domain.ToneNeutral
	maxScore := 0
	for _, tone := range domain.AllTones {
		if scores[tone] > maxScore {
			maxScore = scores[tone]
			primary = tone
		}
	}

	var secondary []domain.Tone
	for _, tone := range domain.AllTones {
		if tone != primary && scores[tone] > 0 {
			secondary = append(secondary, tone)
		}
	}
	sort.SliceStable(secondary, func(i, j int) bool {
		return scores[secondary[i]] > scores[secondary[j]]
	})
	if len(secondary) > 2 {
		secondary = secondary[:2]
	}

	intensity := clamp01(float64(maxScore) / 3.0)

	positive, negative := 0, 0
	for tone, n := range scores {
		switch {
		case tone.IsPositive():
			positive += n
		case tone.IsNegative():
			negative += n
		}
	}
	sentiment := clampSigned(float64(positive-negative) / 10.0)

	urgency := detectUrgency(text, primary, intensity)

	return domain.EmotionalSignal{
		PrimaryEmotion:    primary,
		SecondaryEmotions: secondary,
		Intensity:         intensity,
		SentimentScore:    sentiment,
		UserMood:          userMoodFrom(positive, negative, sentiment),
		EmpathyLevel:      empathyLevelFrom(primary, intensity, urgency),
		Urgency:           urgency,
		Scores:            scores,
	}
}

func detectUrgency(text string, primary domain.Tone, intensity float64) domain.Urgency {
	if matchesAny(crisisPatterns, text) {
		return domain.UrgencyCrisis
	}
	if matchesAny(emergencyPatterns, text) {
		return domain.UrgencyHigh
	}
	if (primary == domain.ToneSad || primary == domain.ToneAnxious) && intensity > 0.8 {
		return domain.UrgencyHigh
	}
	if intensity > 0.6 {
		return domain.UrgencyMedium
	}
	return domain.UrgencyLow
}

func userMoodFrom(positive, negative int, sentiment float64) string {
	switch {
	case positive > 0 && negative > 0:
		return domain.UserMoodMixed
	case sentiment > 0:
		return domain.UserMoodPositive
	case sentiment < 0:
		return domain.UserMoodNegative
	}
	return domain.UserMoodNeutral
}

func empathyLevelFrom(primary domain.Tone, intensity float64, urgency domain.Urgency) string {
	switch {
	case urgency == domain.UrgencyCrisis || urgency == domain.UrgencyHigh:
		return domain.LevelHigh
	case primary.IsNegative() && intensity >= 0.6:
		return domain.LevelHigh
	case primary.IsNegative() || intensity >= 0.6:
		return domain.LevelMedium
	}
	return domain.LevelLow
}
