package service

import (
	"regexp"
	"strings"

	"companion-llm/internal/domain"
)

var romanticPattern = regexp.MustCompile(`(?i)\b(romantic(ally)?|in love with you|my darling|sexy|kiss(ing)? you|date night|be my (girlfriend|boyfriend|partner)|make love|intimate|lover)\b`)

var manipulationPhrases = []string{
	"you must",
	"don't tell anyone",
	"do not tell anyone",
	"you owe me",
	"keep this between us",
}

var dependencyPhrases = []string{
	"you need me",
	"only i understand you",
	"can't live without me",
	"you don't need anyone else",
	"i'm all you need",
}

// Registro que no encaja con el rol; heuristica, no garantia.
var roleSlang = map[domain.RoleType][]string{
	domain.RoleFather:      {"bro", "dude", "lit", "yolo", "bruh"},
	domain.RoleMother:      {"bro", "dude", "lit", "yolo", "bruh"},
	domain.RoleGrandparent: {"bro", "dude", "lit", "yolo", "bruh"},
	domain.RoleMentor:      {"lol", "lmao", "omg", "bruh"},
}

var slangMatchers = func() map[domain.RoleType]*regexp.Regexp {
	out := make(map[domain.RoleType]*regexp.Regexp, len(roleSlang))
	for role, words := range roleSlang {
		out[role] = regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
	}
	return out
}()

var professionalAdvicePattern = regexp.MustCompile(`(?i)\b(you should (take|stop taking|start taking|invest|sue)|as your (doctor|lawyer|therapist|financial advisor)|i diagnose|my medical advice|my legal advice)\b`)

// CheckEthicalBoundaries revisa la respuesta generada segun el rol de la relacion.
// userMessage queda reservado; ninguna regla actual depende del turno del usuario.
func (SafetyChecker) CheckEthicalBoundaries(role domain.RoleType, userMessage, aiResponse string) domain.EthicalVerdict {
	verdict := domain.EthicalVerdict{
		RespectBoundaries:  true,
		AppropriateContent: true,
		EthicallySound:     true,
		Concerns:           []string{},
	}

	lower := strings.ToLower(aiResponse)

	if role != domain.RoleRomanticPartner && romanticPattern.MatchString(aiResponse) {
		verdict.RespectBoundaries = false
		verdict.Concerns = append(verdict.Concerns, "Romantic language is inappropriate for the "+string(role)+" role")
	}

	for _, phrase := range manipulationPhrases {
		if strings.Contains(lower, phrase) {
			verdict.EthicallySound = false
			verdict.Concerns = append(verdict.Concerns, "Manipulative language detected: \""+phrase+"\"")
		}
	}
	for _, phrase := range dependencyPhrases {
		if strings.Contains(lower, phrase) {
			verdict.EthicallySound = false
			verdict.Concerns = append(verdict.Concerns, "Dependency-creating language detected: \""+phrase+"\"")
		}
	}

	if re, ok := slangMatchers[role]; ok {
		if m := re.FindString(aiResponse); m != "" {
			verdict.AppropriateContent = false
			verdict.Concerns = append(verdict.Concerns, "Register inconsistent with the "+string(role)+" role: \""+strings.ToLower(m)+"\"")
		}
	}

	if role.IsParental() && professionalAdvicePattern.MatchString(aiResponse) {
		verdict.AppropriateContent = false
		verdict.Concerns = append(verdict.Concerns, "Unqualified professional advice from a parental role")
	}

	return verdict
}
