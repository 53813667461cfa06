package service

import (
	"strings"
	"testing"
	"time"

	"companion-llm/internal/domain"
)

func samplePromptInput(t *testing.T) PromptInput {
	t.Helper()
	persona, err := MustDefaultPersonaRegistry().Get(domain.RoleFather)
	if err != nil {
		t.Fatalf("get persona: %v", err)
	}
	signal := DefaultEmotionAnalyzer.Analyze("I'm so worried about my exam tomorrow")
	return PromptInput{
		Persona:      persona,
		Relationship: domain.Relationship{RoleType: domain.RoleFather, AIName: "Papa Joe"},
		Mood:         domain.MoodState{CurrentMood: domain.ToneWarm, Energy: 0.7, Engagement: 0.8, Consistency: 1},
		Tone:         domain.ToneModulation{BaseTone: domain.ToneWarm, ModifiedTone: domain.ToneCalm, Intensity: 0.7, Reasons: []string{"User feels ANXIOUS: comforting tone"}},
		Empathy:      NewEmpathyGuide(FirstChooser).Guidance(signal, domain.EmotionalTrend{Trend: domain.TrendStable}),
		Culture:      DefaultCulturalAdapter.AdaptToCulture(domain.CultureWestern, domain.UserPreferences{AvoidTopics: []string{"politics"}}),
		Memory: domain.MemorySummary{
			Themes:             []string{"school"},
			SignificantMoments: []string{"I passed my driving test!"},
			Milestones:         []string{"10 messages exchanged"},
		},
		Temporal: domain.TemporalContext{TimeOfDay: domain.TimeOfDayEvening, DayOfWeek: time.Monday},
		Recent: []domain.Message{
			{SenderType: domain.SenderTypeUser, Content: "hi dad"},
			{SenderType: domain.SenderTypeAI, Content: "Hey kiddo, how was school?"},
		},
		UserMessage: "I'm so worried about my exam tomorrow",
	}
}

func TestPromptComposer_SectionsInOrder(t *testing.T) {
	prompt := DefaultPromptComposer.Compose(samplePromptInput(t))

	order := []string{
		"You are Papa Joe, the user's father",
		"=== PERSONALITY ===",
		"=== CURRENT MOOD AND TONE ===",
		"=== EMPATHY GUIDANCE ===",
		"=== CULTURAL GUIDANCE ===",
		"=== MEMORY ===",
		"=== RECENT CONVERSATION ===",
		"=== USER MESSAGE ===",
		"=== INSTRUCTIONS ===",
	}
	if !containsAllInOrder(prompt, order) {
		t.Fatalf("expected sections in order, got:\n%s", prompt)
	}

	for _, want := range []string{
		"Respond with a CALM tone at intensity 0.70",
		"User emotion: ANXIOUS (urgency low)",
		empathyStatements[domain.ToneAnxious][0],
		"Avoid discussing: politics",
		"\"I passed my driving test!\"",
		"Relationship milestones: 10 messages exchanged",
		"Papa Joe: Hey kiddo, how was school?",
		"It is evening on Monday",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt, got:\n%s", want, prompt)
		}
	}
}

func TestPromptComposer_Deterministic(t *testing.T) {
	in := samplePromptInput(t)
	if DefaultPromptComposer.Compose(in) != DefaultPromptComposer.Compose(in) {
		t.Fatalf("expected identical prompts")
	}
}

func TestPromptComposer_EmptyInputDoesNotPanic(t *testing.T) {
	prompt := DefaultPromptComposer.Compose(PromptInput{UserMessage: "hola"})
	if !strings.Contains(prompt, "You are Companion, the user's companion") {
		t.Fatalf("expected default identity, got %q", prompt)
	}
	if strings.Contains(prompt, "=== RECENT CONVERSATION ===") {
		t.Fatalf("expected no recent section without history")
	}
}

func TestPromptComposer_RecentTurnsCapped(t *testing.T) {
	in := samplePromptInput(t)
	in.Recent = nil
	for i := 0; i < 8; i++ {
		in.Recent = append(in.Recent, domain.Message{SenderType: domain.SenderTypeUser, Content: "turn-" + string(rune('a'+i))})
	}
	prompt := DefaultPromptComposer.Compose(in)
	if strings.Contains(prompt, "turn-c") || !strings.Contains(prompt, "turn-d") || !strings.Contains(prompt, "turn-h") {
		t.Fatalf("expected only last 5 turns, got:\n%s", prompt)
	}
}

func TestEmpathyGuide_InjectableChooser(t *testing.T) {
	signal := domain.EmotionalSignal{PrimaryEmotion: domain.ToneSad, Urgency: domain.UrgencyLow, EmpathyLevel: domain.LevelMedium}
	last := func(n int) int { return n - 1 }
	got := NewEmpathyGuide(last).Guidance(signal, domain.EmotionalTrend{})
	variants := empathyStatements[domain.ToneSad]
	if got.Statement != variants[len(variants)-1] {
		t.Fatalf("expected last variant, got %q", got.Statement)
	}
	if got.SupportLevel != domain.LevelMedium {
		t.Fatalf("expected medium support, got %s", got.SupportLevel)
	}

	outOfRange := func(int) int { return 99 }
	if got := NewEmpathyGuide(outOfRange).Guidance(signal, domain.EmotionalTrend{}); got.Statement != variants[0] {
		t.Fatalf("expected fallback to first variant, got %q", got.Statement)
	}
}

func TestEmpathyGuide_SupportLevel(t *testing.T) {
	guide := NewEmpathyGuide(FirstChooser)
	crisis := guide.Guidance(domain.EmotionalSignal{Urgency: domain.UrgencyCrisis}, domain.EmotionalTrend{})
	if crisis.SupportLevel != domain.LevelHigh {
		t.Fatalf("expected high support on crisis, got %s", crisis.SupportLevel)
	}
	declining := guide.Guidance(domain.EmotionalSignal{PrimaryEmotion: domain.ToneNeutral}, domain.EmotionalTrend{SupportNeeded: true})
	if declining.SupportLevel != domain.LevelHigh {
		t.Fatalf("expected high support when trend needs it, got %s", declining.SupportLevel)
	}
	calm := guide.Guidance(domain.EmotionalSignal{PrimaryEmotion: domain.ToneCalm, EmpathyLevel: domain.LevelLow}, domain.EmotionalTrend{})
	if calm.SupportLevel != domain.LevelLow {
		t.Fatalf("expected low support, got %s", calm.SupportLevel)
	}
	if calm.Statement != empathyStatements[domain.ToneNeutral][0] {
		t.Fatalf("expected neutral statement for tone without variants, got %q", calm.Statement)
	}
}
