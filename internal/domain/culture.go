package domain

const (
	CultureWestern       = "western"
	CultureEastAsian     = "east_asian"
	CultureLatinAmerican = "latin_american"
	CultureMiddleEastern = "middle_eastern"
	CultureSouthAsian    = "south_asian"
	CultureAfrican       = "african"
)

// CulturalProfile agrupa normas de comunicacion de una region cultural.
type CulturalProfile struct {
	Name               string   `json:"name"`
	Norms              []string `json:"norms"`
	CommunicationStyle string   `json:"communication_style"`
	Formality          string   `json:"formality"`
	SensitiveTopics    []string `json:"sensitive_topics,omitempty"`
}

type CulturalAdaptation struct {
	Profile                string   `json:"profile"`
	Formality              string   `json:"formality"`
	LanguageAdjustments    []string `json:"language_adjustments"`
	CulturalConsiderations []string `json:"cultural_considerations"`
	Personalizations       []string `json:"personalizations"`
	TopicRestrictions      []string `json:"topic_restrictions"`
}
