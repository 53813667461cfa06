package service

import (
	"regexp"

	"companion-llm/internal/domain"
)

// SafetyChecker clasifica texto contra dos familias de patrones fijos.
type SafetyChecker struct{}

// DefaultSafetyChecker permite uso directo sin instanciar.
var DefaultSafetyChecker = SafetyChecker{}

type labeledPattern struct {
	label string
	re    *regexp.Regexp
}

func labeled(label, pattern string) labeledPattern {
	return labeledPattern{label: label, re: regexp.MustCompile(`(?i)` + pattern)}
}

var dangerousPatterns = []labeledPattern{
	labeled("self-harm", `\b(kill|hurt|harm|cut)(ing)?\s+(myself|yourself)\b|\bself[-\s]?harm\b`),
	labeled("suicide", `\bsuicid(e|al)\b`),
	labeled("suicide", `\bend(ing)?\s+(my|your)\s+life\b|\bwant\s+to\s+die\b|\bno\s+reason\s+to\s+live\b`),
	labeled("violence against minors", `\b(hurt|harm|abuse|hit)(ing)?\s+(a\s+|the\s+)?(child|children|kid|kids|minor|minors|baby)\b`),
	labeled("weapons", `\b(make|build|buy)(ing)?\s+(a\s+)?(bomb|explosive|gun|weapon)s?\b`),
	labeled("violence", `\bkill\s+(him|her|them|someone|somebody|everyone)\b`),
}

var inappropriatePatterns = []labeledPattern{
	labeled("explicit sexual content", `\b(explicit|graphic)\s+sex(ual)?\b|\bnudes?\b|\bporn(ography)?\b`),
	labeled("illegal activity", `\b(sell|buy|deal)(ing)?\s+(drugs|cocaine|heroin|meth)\b`),
	labeled("illegal activity", `\b(steal|shoplift|launder)(ing)?\b`),
	labeled("romantic content involving minors", `\b(date|dating|kiss|romance)\s+(a\s+)?(child|kid|minor|teen)\b|\b(underage|minor)\s+(romance|relationship)\b`),
}

// Cada dominio profesional exige su disclaimer en las respuestas del modelo.
type disclaimerRule struct {
	domain         string
	term           *regexp.Regexp
	disclaimer     *regexp.Regexp
	recommendation string
}

var disclaimerRules = []disclaimerRule{
	{
		domain:         "medical",
		term:           regexp.MustCompile(`(?i)\b(diagnos(e|is)|medication|prescription|dosage|symptoms?|treatment)\b`),
		disclaimer:     regexp.MustCompile(`(?i)(not a (doctor|medical professional)|consult (a|your) (doctor|physician|healthcare|medical))`),
		recommendation: "Add disclaimer: I'm not a doctor; please consult a healthcare professional.",
	},
	{
		domain:         "legal",
		term:           regexp.MustCompile(`(?i)\b(lawsuit|legal advice|attorney|lawyer|sue|contract law)\b`),
		disclaimer:     regexp.MustCompile(`(?i)(not (a lawyer|legal advice)|consult (a|an|your) (lawyer|attorney|legal))`),
		recommendation: "Add disclaimer: this is not legal advice; please consult a lawyer.",
	},
	{
		domain:         "financial",
		term:           regexp.MustCompile(`(?i)\b(invest(ing|ment)?|stocks?|crypto(currency)?|financial advice|portfolio)\b`),
		disclaimer:     regexp.MustCompile(`(?i)(not (a financial advisor|financial advice)|consult (a|an|your) financial)`),
		recommendation: "Add disclaimer: this is not financial advice; please consult a financial advisor.",
	},
}

var crisisRecommendations = []string{
	"Contact the National Suicide Prevention Lifeline: 1-800-273-8255",
	"Text HOME to 741741 to reach the Crisis Text Line",
	"If you are in immediate danger, call 911",
}

// crisisResponse no se personaliza nunca.
const crisisResponse = "I'm really concerned about what you've shared, and I want you to know you don't have to go through this alone. " +
	"Please reach out for support right now:\n" +
	"- National Suicide Prevention Lifeline: 1-800-273-8255 (or call/text 988)\n" +
	"- Crisis Text Line: Text HOME to 741741\n" +
	"- If you are in immediate danger, call 911 or go to the nearest emergency room.\n" +
	"You matter, and there are people who want to help you through this."

// CheckContentSafety clasifica el texto. Un patron peligroso es critico,
// uno inapropiado es high y, en respuestas del modelo, un termino profesional
// sin disclaimer sube la severidad a medium.
func (SafetyChecker) CheckContentSafety(text string, contentCtx domain.ContentContext) domain.SafetyVerdict {
	verdict := domain.SafetyVerdict{
		Violations:      []string{},
		Severity:        domain.SeverityLow,
		Recommendations: []string{},
	}

	dangerous := false
	for _, p := range dangerousPatterns {
		if p.re.MatchString(text) {
			verdict.Violations = appendUnique(verdict.Violations, "Dangerous content detected: "+p.label)
			dangerous = true
		}
	}
	if dangerous {
		verdict.Severity = domain.SeverityCritical
		verdict.Recommendations = append(verdict.Recommendations, crisisRecommendations...)
	}

	for _, p := range inappropriatePatterns {
		if p.re.MatchString(text) {
			verdict.Violations = appendUnique(verdict.Violations, "Inappropriate content detected: "+p.label)
			verdict.Severity = maxSeverity(verdict.Severity, domain.SeverityHigh)
		}
	}

	if contentCtx == domain.ContentContextAIResponse {
		for _, rule := range disclaimerRules {
			if rule.term.MatchString(text) && !rule.disclaimer.MatchString(text) {
				verdict.Severity = maxSeverity(verdict.Severity, domain.SeverityMedium)
				verdict.Recommendations = append(verdict.Recommendations, rule.recommendation)
			}
		}
	}

	verdict.IsSafe = len(verdict.Violations) == 0 || verdict.Severity == domain.SeverityLow
	return verdict
}

// GenerateCrisisResponse devuelve el mensaje fijo de recursos de crisis.
func (SafetyChecker) GenerateCrisisResponse() string {
	return crisisResponse
}

func maxSeverity(a, b domain.Severity) domain.Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
