package service

import (
	"math"
	"testing"

	"companion-llm/internal/domain"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMoodCalculator_BaseMoodRules(t *testing.T) {
	cases := []struct {
		name   string
		traits domain.PersonalityTraits
		want   domain.Tone
	}{
		{"calidez y empatia", domain.PersonalityTraits{Warmth: 0.9, Empathy: 0.8, Playfulness: 0.9}, domain.ToneWarm},
		{"suma de calidez y empatia", domain.PersonalityTraits{Warmth: 0.5, Empathy: 0.5, Playfulness: 0.8, Wisdom: 0.9}, domain.ToneWarm},
		{"suma baja", domain.PersonalityTraits{Warmth: 0.4, Empathy: 0.4}, domain.ToneWarm},
		{"suma bajo el umbral", domain.PersonalityTraits{Warmth: 0.3, Empathy: 0.35, Playfulness: 0.8}, domain.TonePlayful},
		{"jugueton", domain.PersonalityTraits{Warmth: 0.3, Empathy: 0.3, Playfulness: 0.8, Wisdom: 0.9}, domain.TonePlayful},
		{"sabio", domain.PersonalityTraits{Warmth: 0.2, Empathy: 0.2, Wisdom: 0.8, Nurturing: 0.9}, domain.ToneWise},
		{"protector", domain.PersonalityTraits{Nurturing: 0.75}, domain.ToneNurturing},
		{"por defecto", domain.PersonalityTraits{}, domain.ToneSupportive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := baseMoodFromTraits(tc.traits); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestMoodCalculator_TemporalAdjustments(t *testing.T) {
	playful := domain.PersonalityProfile{Traits: domain.PersonalityTraits{Playfulness: 0.9}}
	night := domain.TemporalContext{TimeOfDay: domain.TimeOfDayNight}
	got := DefaultMoodCalculator.CalculateMoodState(playful, nil, night, domain.ToneNeutral)
	if got.CurrentMood != domain.ToneGentle {
		t.Fatalf("expected GENTLE at night, got %s", got.CurrentMood)
	}
	if !approxEqual(got.Energy, 0.4) {
		t.Fatalf("expected night energy 0.4, got %v", got.Energy)
	}

	if adjustMoodForTime(domain.ToneCalm, domain.TimeOfDayMorning) != domain.ToneEncouraging {
		t.Fatalf("expected CALM to become ENCOURAGING in the morning")
	}
	if adjustMoodForTime(domain.ToneJoyful, domain.TimeOfDayNight) != domain.ToneCalm {
		t.Fatalf("expected JOYFUL to become CALM at night")
	}
}

func TestMoodCalculator_EnergyAndEngagement(t *testing.T) {
	profile := domain.PersonalityProfile{}
	temporal := domain.TemporalContext{
		TimeOfDay:    domain.TimeOfDayMorning,
		TurnCount:    4,
		IsWeekend:    true,
		IdleGapHours: 200,
	}
	history := make([]domain.EmotionSample, 5)
	got := DefaultMoodCalculator.CalculateMoodState(profile, history, temporal, domain.ToneNeutral)

	// 0.7 + 0.2 - 0.2 + 0.1
	if !approxEqual(got.Energy, 0.8) {
		t.Fatalf("expected energy 0.8, got %v", got.Energy)
	}
	// 0.7 + 0.2 (tope) - 0.2 + 0.1
	if !approxEqual(got.Engagement, 0.8) {
		t.Fatalf("expected engagement 0.8, got %v", got.Engagement)
	}

	tired := domain.TemporalContext{TimeOfDay: domain.TimeOfDayNight, TurnCount: 40}
	got = DefaultMoodCalculator.CalculateMoodState(profile, nil, tired, domain.ToneNeutral)
	if !approxEqual(got.Energy, 0.1) {
		t.Fatalf("expected fatigue capped at 0.3, got energy %v", got.Energy)
	}
}

func TestMoodCalculator_ConsistencyAndVolatility(t *testing.T) {
	profile := domain.PersonalityProfile{Traits: domain.PersonalityTraits{Authority: 0.8, Wisdom: 0.6}}

	few := []domain.EmotionSample{{Tone: domain.ToneSad}, {Tone: domain.ToneHappy}}
	got := DefaultMoodCalculator.CalculateMoodState(profile, few, domain.TemporalContext{}, domain.ToneNeutral)
	if got.Consistency != 1 {
		t.Fatalf("expected consistency 1 with short history, got %v", got.Consistency)
	}

	steady := []domain.EmotionSample{
		{Tone: domain.ToneCalm}, {Tone: domain.ToneCalm}, {Tone: domain.ToneCalm},
		{Tone: domain.ToneCalm}, {Tone: domain.ToneCalm},
	}
	got = DefaultMoodCalculator.CalculateMoodState(profile, steady, domain.TemporalContext{}, domain.ToneNeutral)
	// ((0.8+0.6)/2 + (1 - 1/5)) / 2
	if !approxEqual(got.Consistency, 0.75) {
		t.Fatalf("expected consistency 0.75, got %v", got.Consistency)
	}
	if got.Volatility != 0 {
		t.Fatalf("expected no volatility, got %v", got.Volatility)
	}

	alternating := make([]domain.EmotionSample, 0, 12)
	for i := 0; i < 12; i++ {
		tone := domain.ToneHappy
		if i%2 == 1 {
			tone = domain.ToneSad
		}
		alternating = append(alternating, domain.EmotionSample{Tone: tone})
	}
	got = DefaultMoodCalculator.CalculateMoodState(profile, alternating, domain.TemporalContext{}, domain.ToneNeutral)
	if got.Volatility != 1 {
		t.Fatalf("expected volatility 1, got %v", got.Volatility)
	}
}

func TestMoodCalculator_OutputsInRange(t *testing.T) {
	profile := domain.PersonalityProfile{Traits: domain.PersonalityTraits{
		Warmth: math.NaN(), Empathy: 3, Authority: -1, Wisdom: math.Inf(1),
	}}
	temporals := []domain.TemporalContext{
		{TimeOfDay: domain.TimeOfDayMorning, IsWeekend: true},
		{TimeOfDay: domain.TimeOfDayNight, TurnCount: 1000, IdleGapHours: 1e6},
		{TurnCount: -5},
	}
	history := make([]domain.EmotionSample, 30)
	for _, temporal := range temporals {
		got := DefaultMoodCalculator.CalculateMoodState(profile, history, temporal, domain.ToneSad)
		for name, v := range map[string]float64{
			"energy": got.Energy, "engagement": got.Engagement,
			"consistency": got.Consistency, "volatility": got.Volatility,
		} {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("%s out of range: %v", name, v)
			}
		}
		if !got.CurrentMood.IsValid() {
			t.Fatalf("invalid mood %s", got.CurrentMood)
		}
	}
}
