package domain

const (
	UserMoodPositive = "positive"
	UserMoodNeutral  = "neutral"
	UserMoodNegative = "negative"
	UserMoodMixed    = "mixed"
)

const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Urgency escala de menor a mayor; crisis desvia el pipeline.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyCrisis Urgency = "crisis"
)

// EmotionalSignal se deriva de cada mensaje entrante y nunca se persiste solo;
// termina plegado en la metadata del mensaje.
type EmotionalSignal struct {
	PrimaryEmotion    Tone         `json:"primary_emotion"`
	SecondaryEmotions []Tone       `json:"secondary_emotions"`
	Intensity         float64      `json:"intensity"`
	SentimentScore    float64      `json:"sentiment_score"`
	UserMood          string       `json:"user_mood"`
	EmpathyLevel      string       `json:"empathy_level"`
	Urgency           Urgency      `json:"urgency"`
	Scores            map[Tone]int `json:"scores,omitempty"`
}

const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// EmotionSample es una emocion historica (tono + sentimiento) de un mensaje del usuario.
type EmotionSample struct {
	Tone      Tone    `json:"tone"`
	Sentiment float64 `json:"sentiment"`
}

type EmotionalTrend struct {
	Trend            string  `json:"trend"`
	Stability        float64 `json:"stability"`
	SupportNeeded    bool    `json:"support_needed"`
	DominantEmotion  Tone    `json:"dominant_emotion"`
	AverageSentiment float64 `json:"average_sentiment"`
}
