package service

import (
	"regexp"
	"strings"
)

var (
	fenceStartPattern = regexp.MustCompile("(?is)^\\s*```[a-z]*\\s*")
	fenceEndPattern   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanGeneratedReply quita BOM, fences, comillas envolventes y una etiqueta
// de hablante inicial ("Assistant:", "<nombre>:").
func cleanGeneratedReply(raw string, speakerNames ...string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartPattern.ReplaceAllString(s, "")
	s = fenceEndPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	s = stripSpeakerLabel(s, speakerNames)

	// Comillas solo si envuelven todo el texto.
	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) && len(s) > len(q[0])+len(q[1]) {
			inner := s[len(q[0]) : len(s)-len(q[1])]
			if !strings.Contains(inner, q[0]) && !strings.Contains(inner, q[1]) {
				s = strings.TrimSpace(inner)
			}
		}
	}
	return s
}

func stripSpeakerLabel(s string, names []string) string {
	labels := append([]string{"assistant", "ai", "companion"}, names...)
	for _, label := range labels {
		label = strings.TrimSpace(label)
		n := len(label)
		if n == 0 || len(s) <= n || s[n] != ':' {
			continue
		}
		if strings.EqualFold(s[:n], label) {
			return strings.TrimSpace(s[n+1:])
		}
	}
	return s
}
