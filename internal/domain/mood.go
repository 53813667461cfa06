package domain

// MoodState se recalcula en cada turno; no tiene ciclo de vida propio.
type MoodState struct {
	CurrentMood Tone    `json:"current_mood"`
	Energy      float64 `json:"energy"`
	Engagement  float64 `json:"engagement"`
	Consistency float64 `json:"consistency"`
	Volatility  float64 `json:"volatility"`
}

// ToneModulation envuelve el tono final del turno y las razones de cada ajuste.
type ToneModulation struct {
	BaseTone     Tone     `json:"base_tone"`
	ModifiedTone Tone     `json:"modified_tone"`
	Intensity    float64  `json:"intensity"`
	Reasons      []string `json:"reasons"`
}
