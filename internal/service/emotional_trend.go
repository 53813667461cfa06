package service

import (
	"companion-llm/internal/domain"
)

const (
	trendWindow         = 10
	trendDeltaThreshold = 0.1
	lowSentimentLimit   = -0.3
)

// EmotionalTrendAggregator pliega las emociones historicas en una tendencia.
type EmotionalTrendAggregator struct{}

var DefaultEmotionalTrendAggregator = EmotionalTrendAggregator{}

// EmotionHistory extrae tono y sentimiento de los mensajes del usuario, en orden.
// Los tonos desconocidos quedan como NEUTRAL y los sentimientos fuera de rango se acotan.
func EmotionHistory(messages []domain.Message) []domain.EmotionSample {
	out := make([]domain.EmotionSample, 0, len(messages))
	for _, m := range messages {
		if !m.IsFromUser() {
			continue
		}
		tone := m.EmotionalTone
		if !tone.IsValid() {
			tone = domain.ToneNeutral
		}
		out = append(out, domain.EmotionSample{Tone: tone, Sentiment: clampSigned(m.Sentiment)})
	}
	return out
}

// Aggregate compara la mitad antigua con la reciente de la ventana.
func (EmotionalTrendAggregator) Aggregate(history []domain.EmotionSample) domain.EmotionalTrend {
	if len(history) > trendWindow {
		history = history[len(history)-trendWindow:]
	}
	n := len(history)
	trend := domain.EmotionalTrend{
		Trend:           domain.TrendStable,
		Stability:       1,
		DominantEmotion: domain.ToneNeutral,
	}
	if n == 0 {
		return trend
	}

	trend.DominantEmotion = dominantTone(history)
	trend.AverageSentiment = averageSentiment(history)

	negatives := 0
	for _, s := range history {
		if s.Tone.IsNegative() {
			negatives++
		}
	}

	if n >= 2 {
		half := n / 2
		delta := averageSentiment(history[half:]) - averageSentiment(history[:half])
		switch {
		case delta > trendDeltaThreshold:
			trend.Trend = domain.TrendImproving
		case delta < -trendDeltaThreshold:
			trend.Trend = domain.TrendDeclining
		}

		changes := 0
		for i := 1; i < n; i++ {
			if history[i].Tone != history[i-1].Tone {
				changes++
			}
		}
		trend.Stability = clamp01(1 - float64(changes)/float64(n-1))
	}

	trend.SupportNeeded = trend.Trend == domain.TrendDeclining ||
		trend.AverageSentiment < lowSentimentLimit ||
		negatives*2 >= n && negatives > 0
	return trend
}

func averageSentiment(samples []domain.EmotionSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += clampSigned(s.Sentiment)
	}
	return clampSigned(sum / float64(len(samples)))
}

func dominantTone(samples []domain.EmotionSample) domain.Tone {
	counts := make(map[domain.Tone]int, len(samples))
	for _, s := range samples {
		counts[s.Tone]++
	}
	best := domain.ToneNeutral
	bestCount := 0
	for _, tone := range domain.AllTones {
		if counts[tone] > bestCount {
			best = tone
			bestCount = counts[tone]
		}
	}
	return best
}
