package domain

// Estados terminales del pipeline por turno.
const (
	OutcomeCrisis    = "crisis"
	OutcomeFallback  = "fallback"
	OutcomeFinalized = "finalized"
)

type ResponseMetadata struct {
	ProcessingTimeMs int64    `json:"processingTime"`
	SafetyVerified   bool     `json:"safetyVerified"`
	EthicallySound   bool     `json:"ethicallySound"`
	Outcome          string   `json:"outcome"`
	UserEmotion      Tone     `json:"userEmotion,omitempty"`
	Urgency          Urgency  `json:"urgency,omitempty"`
	ToneIntensity    float64  `json:"toneIntensity"`
	ToneReasons      []string `json:"toneReasons,omitempty"`
}

// GeneratedResponse es lo que recibe el handler HTTP.
type GeneratedResponse struct {
	Content       string           `json:"content"`
	EmotionalTone Tone             `json:"emotionalTone"`
	Metadata      ResponseMetadata `json:"metadata"`
}
