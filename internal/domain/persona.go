package domain

// PersonalityTraits es el vector de rasgos de una persona, cada uno en [0,1].
type PersonalityTraits struct {
	Warmth      float64 `json:"warmth" yaml:"warmth"`
	Empathy     float64 `json:"empathy" yaml:"empathy"`
	Playfulness float64 `json:"playfulness" yaml:"playfulness"`
	Wisdom      float64 `json:"wisdom" yaml:"wisdom"`
	Nurturing   float64 `json:"nurturing" yaml:"nurturing"`
	Authority   float64 `json:"authority" yaml:"authority"`
}

// CommunicationStyle guarda el vocabulario propio del rol.
type CommunicationStyle struct {
	Greetings    []string `json:"greetings" yaml:"greetings"`
	Affirmations []string `json:"affirmations" yaml:"affirmations"`
}

// PersonalityProfile es inmutable: se carga una vez al iniciar el proceso.
type PersonalityProfile struct {
	Role               RoleType           `json:"role" yaml:"role"`
	Name               string             `json:"name" yaml:"name"`
	Description        string             `json:"description" yaml:"description"`
	Traits             PersonalityTraits  `json:"traits" yaml:"traits"`
	PreferredTopics    []string           `json:"preferred_topics" yaml:"preferred_topics"`
	CommunicationStyle CommunicationStyle `json:"communication_style" yaml:"communication_style"`
}
