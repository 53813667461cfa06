package domain

// MemorySummary es el bloque de memoria que recibe el prompt.
type MemorySummary struct {
	Themes             []string `json:"themes"`
	UserTraits         []string `json:"user_traits"`
	SignificantMoments []string `json:"significant_moments"`
	Milestones         []string `json:"milestones"`
}

// EmpathyGuidance resume como responder a la emocion actual del usuario.
type EmpathyGuidance struct {
	Emotion      Tone    `json:"emotion"`
	Urgency      Urgency `json:"urgency"`
	Statement    string  `json:"statement"`
	SupportLevel string  `json:"support_level"`
	Trend        string  `json:"trend,omitempty"`
}
