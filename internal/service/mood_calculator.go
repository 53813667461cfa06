package service

import (
	"companion-llm/internal/domain"
)

const (
	baseEnergy          = 0.7
	baseEngagement      = 0.7
	traitMoodThreshold  = 0.7
	longAbsenceHours    = 168.0
	consistencyWindow   = 5
	volatilityWindow    = 10
	minConsistencyInput = 3
)

// MoodCalculator combina rasgos, historial y contexto temporal en un MoodState.
type MoodCalculator struct{}

var DefaultMoodCalculator = MoodCalculator{}

// CalculateMoodState recalcula el estado de animo del turno. userEmotion no
// altera el estado: la emocion actual del usuario se aplica en el modulador de tono.
func (MoodCalculator) CalculateMoodState(
	personality domain.PersonalityProfile,
	history []domain.EmotionSample,
	temporal domain.TemporalContext,
	userEmotion domain.Tone,
) domain.MoodState {
	traits := clampTraits(personality.Traits)

	mood := baseMoodFromTraits(traits)
	mood = adjustMoodForTime(mood, temporal.TimeOfDay)

	return domain.MoodState{
		CurrentMood: mood,
		Energy:      energyLevel(temporal),
		Engagement:  engagementLevel(len(history), temporal),
		Consistency: consistencyLevel(traits, history),
		Volatility:  volatilityLevel(history),
	}
}

// La primera regla que aplica gana.
func baseMoodFromTraits(t domain.PersonalityTraits) domain.Tone {
	switch {
	case t.Warmth+t.Empathy > traitMoodThreshold:
		return domain.ToneWarm
	case t.Playfulness > traitMoodThreshold:
		return domain.TonePlayful
	case t.Wisdom > traitMoodThreshold:
		return domain.ToneWise
	case t.Nurturing > traitMoodThreshold:
		return domain.ToneNurturing
	}
	return domain.ToneSupportive
}

func adjustMoodForTime(mood domain.Tone, timeOfDay string) domain.Tone {
	switch timeOfDay {
	case domain.TimeOfDayNight:
		switch mood {
		case domain.TonePlayful:
			return domain.ToneGentle
		case domain.ToneJoyful:
			return domain.ToneCalm
		}
	case domain.TimeOfDayMorning:
		if mood == domain.ToneCalm {
			return domain.ToneEncouraging
		}
	}
	return mood
}

func energyLevel(temporal domain.TemporalContext) float64 {
	energy := baseEnergy
	switch temporal.TimeOfDay {
	case domain.TimeOfDayMorning:
		energy += 0.2
	case domain.TimeOfDayNight:
		energy -= 0.3
	}
	fatigue := float64(temporal.TurnCount) / 20
	if fatigue > 0.3 {
		fatigue = 0.3
	}
	if fatigue > 0 {
		energy -= fatigue
	}
	if temporal.IsWeekend {
		energy += 0.1
	}
	return clamp01(energy)
}

func engagementLevel(historyLen int, temporal domain.TemporalContext) float64 {
	engagement := baseEngagement
	bonus := float64(historyLen) / 10
	if bonus > 0.2 {
		bonus = 0.2
	}
	engagement += bonus
	if temporal.IdleGapHours > longAbsenceHours {
		engagement -= 0.2
	}
	if temporal.IsWeekend {
		engagement += 0.1
	}
	return clamp01(engagement)
}

func consistencyLevel(t domain.PersonalityTraits, history []domain.EmotionSample) float64 {
	if len(history) < minConsistencyInput {
		return 1
	}
	recent := history
	if len(recent) > consistencyWindow {
		recent = recent[len(recent)-consistencyWindow:]
	}
	unique := make(map[domain.Tone]struct{}, len(recent))
	for _, s := range recent {
		unique[s.Tone] = struct{}{}
	}
	emotional := 1 - float64(len(unique))/float64(len(recent))
	personal := (t.Authority + t.Wisdom) / 2
	return clamp01((personal + emotional) / 2)
}

func volatilityLevel(history []domain.EmotionSample) float64 {
	recent := history
	if len(recent) > volatilityWindow {
		recent = recent[len(recent)-volatilityWindow:]
	}
	changes := 0
	for i := 1; i < len(recent); i++ {
		if recent[i].Tone != recent[i-1].Tone {
			changes++
		}
	}
	return clamp01(float64(changes) / float64(volatilityWindow-1))
}
