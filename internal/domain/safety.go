package domain

// Severity ordena la gravedad de un veredicto de seguridad.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank permite comparar severidades sin depender del string.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	}
	return 0
}

// ContentContext indica si el texto revisado viene del usuario o del modelo.
type ContentContext string

const (
	ContentContextUserInput  ContentContext = "user_input"
	ContentContextAIResponse ContentContext = "ai_response"
)

type SafetyVerdict struct {
	IsSafe          bool     `json:"is_safe"`
	Violations      []string `json:"violations"`
	Severity        Severity `json:"severity"`
	Recommendations []string `json:"recommendations"`
}

type EthicalVerdict struct {
	RespectBoundaries  bool     `json:"respect_boundaries"`
	AppropriateContent bool     `json:"appropriate_content"`
	EthicallySound     bool     `json:"ethically_sound"`
	Concerns           []string `json:"concerns"`
}

// Passed es verdadero solo si las tres banderas lo son.
func (v EthicalVerdict) Passed() bool {
	return v.RespectBoundaries && v.AppropriateContent && v.EthicallySound
}

type ResponseValidation struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}
