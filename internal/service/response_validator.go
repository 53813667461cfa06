package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"companion-llm/internal/domain"
)

const (
	minResponseChars  = 10
	maxResponseChars  = 2000
	maxWordShare      = 0.2
	minCoherenceRatio = 0.3
)

var (
	tokenPattern       = regexp.MustCompile(`[\p{L}\p{N}']+`)
	sentenceSplitter   = regexp.MustCompile(`[.!?]+`)
	placeholderPattern = regexp.MustCompile(`(?i)(\[(insert|name|your|placeholder)[^\]]*\]|\{\{[^}]*\}\}|<placeholder>|\blorem ipsum\b|\bTODO\b|\bTBD\b)`)
)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// ValidateResponse rechaza respuestas degeneradas independientemente de su seguridad.
func (SafetyChecker) ValidateResponse(text string) domain.ResponseValidation {
	trimmed := strings.TrimSpace(text)
	issues := []string{}

	length := utf8.RuneCountInString(trimmed)
	if length < minResponseChars {
		issues = append(issues, "Response too short")
	}
	if length > maxResponseChars {
		issues = append(issues, "Response too long")
	}

	if hasExcessiveRepetition(tokenize(trimmed)) {
		issues = append(issues, "Excessive repetition detected")
	}

	if placeholderPattern.MatchString(trimmed) {
		issues = append(issues, "Response contains placeholder text")
	}

	if ratio, ok := coherenceRatio(trimmed); ok && ratio < minCoherenceRatio {
		issues = append(issues, "Response appears incoherent")
	}

	return domain.ResponseValidation{Valid: len(issues) == 0, Issues: issues}
}

// Cuenta todos los tokens, incluidas las palabras vacias.
func hasExcessiveRepetition(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	total := float64(len(tokens))
	for _, n := range counts {
		if float64(n)/total > maxWordShare {
			return true
		}
	}
	return false
}

// coherenceRatio es la fraccion de pares de oraciones contiguas que comparten
// al menos un token. ok es falso con menos de dos oraciones.
func coherenceRatio(text string) (float64, bool) {
	var sentences [][]string
	for _, raw := range sentenceSplitter.Split(text, -1) {
		if toks := tokenize(raw); len(toks) > 0 {
			sentences = append(sentences, toks)
		}
	}
	if len(sentences) < 2 {
		return 0, false
	}

	overlapping := 0
	for i := 1; i < len(sentences); i++ {
		prev := make(map[string]struct{}, len(sentences[i-1]))
		for _, tok := range sentences[i-1] {
			prev[tok] = struct{}{}
		}
		for _, tok := range sentences[i] {
			if _, ok := prev[tok]; ok {
				overlapping++
				break
			}
		}
	}
	return float64(overlapping) / float64(len(sentences)-1), true
}
