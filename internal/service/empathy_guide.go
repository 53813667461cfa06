package service

import (
	"math/rand/v2"

	"companion-llm/internal/domain"
)

// Chooser devuelve un indice en [0,n). Los tests inyectan uno determinista.
type Chooser func(n int) int

// RandomChooser elige de forma uniforme.
func RandomChooser(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}

// FirstChooser siempre elige la primera variante.
func FirstChooser(int) int { return 0 }

var empathyStatements = map[domain.Tone][]string{
	domain.ToneSad: {
		"I'm so sorry you're feeling this way. It's okay to be sad.",
		"That sounds really hard. I'm here with you.",
		"Your feelings make complete sense, and you don't have to carry them alone.",
	},
	domain.ToneAnxious: {
		"It sounds like a lot is weighing on you right now. Let's take it one step at a time.",
		"Feeling anxious is exhausting. I'm right here with you.",
		"It's understandable to feel worried. We can work through this together.",
	},
	domain.ToneAngry: {
		"It makes sense that you're upset. Your frustration is valid.",
		"That sounds really frustrating. I'd be upset too.",
		"I can hear how angry you are, and I want to understand what happened.",
	},
	domain.ToneHappy: {
		"I love hearing you so happy!",
		"That's wonderful news, and it's great to share this with you.",
		"Your happiness is contagious!",
	},
	domain.ToneExcited: {
		"Your excitement is contagious! Tell me more.",
		"How exciting! I can't wait to hear how it goes.",
	},
	domain.ToneLoving: {
		"That means so much to me.",
		"I really appreciate you sharing that with me.",
	},
	domain.ToneNeutral: {
		"I'm glad you're here. Tell me what's on your mind.",
		"I'm listening, and I'm here for whatever you want to talk about.",
	},
}

// EmpathyGuide elige una frase de empatia y un nivel de apoyo para el turno.
type EmpathyGuide struct {
	choose Chooser
}

// NewEmpathyGuide usa RandomChooser cuando choose es nil.
func NewEmpathyGuide(choose Chooser) EmpathyGuide {
	if choose == nil {
		choose = RandomChooser
	}
	return EmpathyGuide{choose: choose}
}

func (g EmpathyGuide) Guidance(signal domain.EmotionalSignal, trend domain.EmotionalTrend) domain.EmpathyGuidance {
	variants, ok := empathyStatements[signal.PrimaryEmotion]
	if !ok {
		variants = empathyStatements[domain.ToneNeutral]
	}
	choose := g.choose
	if choose == nil {
		choose = RandomChooser
	}
	idx := choose(len(variants))
	if idx < 0 || idx >= len(variants) {
		idx = 0
	}

	return domain.EmpathyGuidance{
		Emotion:      signal.PrimaryEmotion,
		Urgency:      signal.Urgency,
		Statement:    variants[idx],
		SupportLevel: supportLevel(signal, trend),
		Trend:        trend.Trend,
	}
}

func supportLevel(signal domain.EmotionalSignal, trend domain.EmotionalTrend) string {
	switch {
	case signal.Urgency == domain.UrgencyCrisis || signal.Urgency == domain.UrgencyHigh:
		return domain.LevelHigh
	case signal.EmpathyLevel == domain.LevelHigh || trend.SupportNeeded:
		return domain.LevelHigh
	case signal.EmpathyLevel == domain.LevelMedium || signal.Urgency == domain.UrgencyMedium:
		return domain.LevelMedium
	}
	return domain.LevelLow
}
