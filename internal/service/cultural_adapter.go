package service

import (
	"fmt"
	"strings"

	"companion-llm/internal/domain"
)

const (
	normCollectivistic       = "collectivistic"
	normIndividualistic      = "individualistic"
	normRespectHierarchy     = "respect_hierarchy"
	normFamilyOriented       = "family_oriented"
	normIndirect             = "indirect_communication"
	normExpressive           = "expressive"
	normReligiousSensitivity = "religious_sensitivity"
	normCommunityOriented    = "community_oriented"
)

const (
	formalityFormal   = "formal"
	formalityModerate = "moderate"
	formalityCasual   = "casual"
)

var culturalProfiles = map[string]domain.CulturalProfile{
	domain.CultureWestern: {
		Name:               domain.CultureWestern,
		Norms:              []string{normIndividualistic},
		CommunicationStyle: "direct and friendly",
		Formality:          formalityCasual,
	},
	domain.CultureEastAsian: {
		Name:               domain.CultureEastAsian,
		Norms:              []string{normCollectivistic, normRespectHierarchy, normIndirect, normFamilyOriented},
		CommunicationStyle: "indirect and harmonious",
		Formality:          formalityFormal,
		SensitiveTopics:    []string{"public criticism", "family disputes"},
	},
	domain.CultureLatinAmerican: {
		Name:               domain.CultureLatinAmerican,
		Norms:              []string{normFamilyOriented, normCollectivistic, normExpressive},
		CommunicationStyle: "warm and expressive",
		Formality:          formalityModerate,
	},
	domain.CultureMiddleEastern: {
		Name:               domain.CultureMiddleEastern,
		Norms:              []string{normFamilyOriented, normRespectHierarchy, normReligiousSensitivity},
		CommunicationStyle: "respectful and hospitable",
		Formality:          formalityFormal,
		SensitiveTopics:    []string{"religion", "alcohol", "dating"},
	},
	domain.CultureSouthAsian: {
		Name:               domain.CultureSouthAsian,
		Norms:              []string{normFamilyOriented, normRespectHierarchy, normCollectivistic},
		CommunicationStyle: "respectful and warm",
		Formality:          formalityFormal,
		SensitiveTopics:    []string{"caste", "religion"},
	},
	domain.CultureAfrican: {
		Name:               domain.CultureAfrican,
		Norms:              []string{normCollectivistic, normCommunityOriented, normRespectHierarchy},
		CommunicationStyle: "warm and community-minded",
		Formality:          formalityModerate,
	},
}

// Se evaluan en orden; la primera coincidencia gana.
var regionKeywords = []struct {
	profile  string
	keywords []string
}{
	{domain.CultureEastAsian, []string{"china", "japan", "korea", "taiwan", "vietnam", "hong kong", "singapore", "east asia"}},
	{domain.CultureLatinAmerican, []string{"mexico", "méxico", "brazil", "brasil", "argentina", "colombia", "chile", "peru", "perú", "venezuela", "ecuador", "uruguay", "latin america", "latam"}},
	{domain.CultureMiddleEastern, []string{"saudi", "emirates", "uae", "egypt", "iran", "iraq", "israel", "turkey", "jordan", "lebanon", "qatar", "kuwait", "middle east"}},
	{domain.CultureSouthAsian, []string{"india", "pakistan", "bangladesh", "sri lanka", "nepal", "south asia"}},
	{domain.CultureAfrican, []string{"nigeria", "kenya", "ghana", "ethiopia", "tanzania", "uganda", "senegal", "africa"}},
}

var languageProfiles = map[string]string{
	"zh": domain.CultureEastAsian, "ja": domain.CultureEastAsian, "ko": domain.CultureEastAsian, "vi": domain.CultureEastAsian,
	"es": domain.CultureLatinAmerican, "pt": domain.CultureLatinAmerican,
	"ar": domain.CultureMiddleEastern, "fa": domain.CultureMiddleEastern, "he": domain.CultureMiddleEastern, "tr": domain.CultureMiddleEastern,
	"hi": domain.CultureSouthAsian, "bn": domain.CultureSouthAsian, "ur": domain.CultureSouthAsian, "ta": domain.CultureSouthAsian,
	"te": domain.CultureSouthAsian, "pa": domain.CultureSouthAsian, "mr": domain.CultureSouthAsian, "gu": domain.CultureSouthAsian,
	"sw": domain.CultureAfrican, "yo": domain.CultureAfrican, "ig": domain.CultureAfrican, "ha": domain.CultureAfrican,
	"zu": domain.CultureAfrican, "xh": domain.CultureAfrican, "am": domain.CultureAfrican,
}

// CulturalAdapter traduce perfil cultural y preferencias en guias para el prompt.
type CulturalAdapter struct{}

var DefaultCulturalAdapter = CulturalAdapter{}

// DetectCulturalProfile prioriza la region libre sobre el codigo de idioma.
func (CulturalAdapter) DetectCulturalProfile(language, region string) string {
	if r := strings.ToLower(strings.TrimSpace(region)); r != "" {
		for _, entry := range regionKeywords {
			for _, kw := range entry.keywords {
				if strings.Contains(r, kw) {
					return entry.profile
				}
			}
		}
	}

	lang := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if profile, ok := languageProfiles[lang]; ok {
		return profile
	}
	return domain.CultureWestern
}

// Profile devuelve el perfil por nombre, western si no existe.
func (CulturalAdapter) Profile(name string) domain.CulturalProfile {
	if p, ok := culturalProfiles[name]; ok {
		return p
	}
	return culturalProfiles[domain.CultureWestern]
}

// AdaptToCulture arma las cuatro listas de guia de forma determinista.
func (a CulturalAdapter) AdaptToCulture(profileName string, prefs domain.UserPreferences) domain.CulturalAdaptation {
	profile := a.Profile(profileName)
	formality := resolveFormality(profile.Formality, prefs.Formality)

	out := domain.CulturalAdaptation{
		Profile:                profile.Name,
		Formality:              formality,
		LanguageAdjustments:    []string{},
		CulturalConsiderations: []string{},
		Personalizations:       []string{},
		TopicRestrictions:      []string{},
	}

	switch formality {
	case formalityFormal:
		out.LanguageAdjustments = append(out.LanguageAdjustments, "Use formal, respectful language")
	case formalityCasual:
		out.LanguageAdjustments = append(out.LanguageAdjustments, "Use casual, relaxed language")
	default:
		out.LanguageAdjustments = append(out.LanguageAdjustments, "Balance friendliness with politeness")
	}
	out.LanguageAdjustments = append(out.LanguageAdjustments, "Communication style: "+profile.CommunicationStyle)
	if lang := strings.TrimSpace(prefs.Language); lang != "" {
		out.LanguageAdjustments = append(out.LanguageAdjustments, fmt.Sprintf("Respond in the user's preferred language (%s)", lang))
	}

	for _, norm := range profile.Norms {
		switch norm {
		case normCollectivistic:
			out.CulturalConsiderations = append(out.CulturalConsiderations, "Frame support in terms of family and group harmony")
		case normRespectHierarchy:
			out.LanguageAdjustments = append(out.LanguageAdjustments, "Use deferential phrasing when referring to elders and authority figures")
		case normFamilyOriented:
			out.CulturalConsiderations = append(out.CulturalConsiderations, "Acknowledge the importance of family in the user's life")
		case normIndirect:
			out.LanguageAdjustments = append(out.LanguageAdjustments, "Prefer gentle, indirect suggestions over blunt directives")
		case normIndividualistic:
			out.CulturalConsiderations = append(out.CulturalConsiderations, "Respect personal autonomy and individual choices")
		case normExpressive:
			out.CulturalConsiderations = append(out.CulturalConsiderations, "Open emotional expression is welcome")
		case normReligiousSensitivity:
			out.CulturalConsiderations = append(out.CulturalConsiderations, "Be respectful of religious beliefs and practices")
		case normCommunityOriented:
			out.CulturalConsiderations = append(out.CulturalConsiderations, "Recognize the role of community and shared responsibility")
		}
	}

	switch prefs.ResponseLength {
	case "short", "brief":
		out.Personalizations = append(out.Personalizations, "Keep responses brief (2-3 sentences)")
	case "long", "detailed":
		out.Personalizations = append(out.Personalizations, "Detailed, thorough responses are welcome")
	case "medium":
		out.Personalizations = append(out.Personalizations, "Keep responses moderately concise")
	}
	if prefs.Humor != nil {
		if *prefs.Humor {
			out.Personalizations = append(out.Personalizations, "Light humor is welcome")
		} else {
			out.Personalizations = append(out.Personalizations, "Avoid jokes and humor")
		}
	}
	if prefs.Emoji != nil {
		if *prefs.Emoji {
			out.Personalizations = append(out.Personalizations, "Emojis are welcome")
		} else {
			out.Personalizations = append(out.Personalizations, "Do not use emojis")
		}
	}

	for _, topic := range profile.SensitiveTopics {
		out.TopicRestrictions = append(out.TopicRestrictions, "Approach with care: "+topic)
	}
	for _, topic := range prefs.AvoidTopics {
		if topic = strings.TrimSpace(topic); topic != "" {
			out.TopicRestrictions = append(out.TopicRestrictions, "Avoid discussing: "+topic)
		}
	}

	return out
}

func resolveFormality(profileDefault, preferred string) string {
	switch preferred {
	case formalityFormal, formalityModerate, formalityCasual:
		return preferred
	}
	return profileDefault
}
