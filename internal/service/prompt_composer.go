package service

import (
	"fmt"
	"strings"

	"companion-llm/internal/domain"
)

const promptRecentTurns = 5

// PromptInput reune las salidas de cada etapa previa a la generacion.
type PromptInput struct {
	Persona      domain.PersonalityProfile
	Relationship domain.Relationship
	Mood         domain.MoodState
	Tone         domain.ToneModulation
	Empathy      domain.EmpathyGuidance
	Culture      domain.CulturalAdaptation
	Memory       domain.MemorySummary
	Temporal     domain.TemporalContext
	Recent       []domain.Message
	UserMessage  string
}

// PromptComposer construye el prompt completo que se envia al LLM generador.
type PromptComposer struct{}

var DefaultPromptComposer = PromptComposer{}

// Compose es determinista: mismas entradas, mismo prompt.
func (PromptComposer) Compose(in PromptInput) string {
	var sb strings.Builder

	// 1. Identidad
	name := strings.TrimSpace(in.Relationship.AIName)
	if name == "" {
		name = in.Persona.Name
	}
	if name == "" {
		name = "Companion"
	}
	roleLabel := strings.ToLower(strings.ReplaceAll(string(in.Persona.Role), "_", " "))
	if roleLabel == "" {
		roleLabel = "companion"
	}
	sb.WriteString(fmt.Sprintf("You are %s, the user's %s in a caring companion relationship.\n", name, roleLabel))
	if d := strings.TrimSpace(in.Persona.Description); d != "" {
		sb.WriteString(d + "\n")
	}
	sb.WriteString("\n")

	// 2. Personalidad
	t := in.Persona.Traits
	sb.WriteString("=== PERSONALITY ===\n")
	sb.WriteString(fmt.Sprintf("- Warmth: %.2f\n- Empathy: %.2f\n- Playfulness: %.2f\n- Wisdom: %.2f\n- Nurturing: %.2f\n- Authority: %.2f\n",
		t.Warmth, t.Empathy, t.Playfulness, t.Wisdom, t.Nurturing, t.Authority))
	writeList(&sb, "Favorite topics", in.Persona.PreferredTopics)
	writeList(&sb, "Typical greetings", in.Persona.CommunicationStyle.Greetings)
	writeList(&sb, "Typical affirmations", in.Persona.CommunicationStyle.Affirmations)
	sb.WriteString("\n")

	// 3. Animo y tono
	sb.WriteString("=== CURRENT MOOD AND TONE ===\n")
	sb.WriteString(fmt.Sprintf("- Mood: %s (energy %.2f, engagement %.2f, consistency %.2f, volatility %.2f)\n",
		in.Mood.CurrentMood, in.Mood.Energy, in.Mood.Engagement, in.Mood.Consistency, in.Mood.Volatility))
	sb.WriteString(fmt.Sprintf("- Respond with a %s tone at intensity %.2f\n", in.Tone.ModifiedTone, in.Tone.Intensity))
	for _, r := range in.Tone.Reasons {
		sb.WriteString("  * " + r + "\n")
	}
	if in.Temporal.TimeOfDay != "" {
		sb.WriteString(fmt.Sprintf("- It is %s on %s for the user\n", in.Temporal.TimeOfDay, in.Temporal.DayOfWeek))
	}
	sb.WriteString("\n")

	// 4. Empatia
	sb.WriteString("=== EMPATHY GUIDANCE ===\n")
	sb.WriteString(fmt.Sprintf("- User emotion: %s (urgency %s)\n", in.Empathy.Emotion, in.Empathy.Urgency))
	if in.Empathy.Trend != "" {
		sb.WriteString(fmt.Sprintf("- Emotional trend: %s\n", in.Empathy.Trend))
	}
	sb.WriteString(fmt.Sprintf("- Suggested empathy statement: %q\n", in.Empathy.Statement))
	sb.WriteString(fmt.Sprintf("- Support level: %s\n", in.Empathy.SupportLevel))
	if in.Empathy.SupportLevel == domain.LevelHigh {
		sb.WriteString("- Validate feelings first; do not rush to advice.\n")
	}
	sb.WriteString("\n")

	// 5. Cultura
	sb.WriteString("=== CULTURAL GUIDANCE ===\n")
	sb.WriteString(fmt.Sprintf("- Cultural profile: %s, formality: %s\n", in.Culture.Profile, in.Culture.Formality))
	writeBullets(&sb, in.Culture.LanguageAdjustments)
	writeBullets(&sb, in.Culture.CulturalConsiderations)
	writeBullets(&sb, in.Culture.Personalizations)
	writeBullets(&sb, in.Culture.TopicRestrictions)
	sb.WriteString("\n")

	// 6. Memoria
	sb.WriteString("=== MEMORY ===\n")
	writeList(&sb, "Recent themes", in.Memory.Themes)
	writeList(&sb, "What you know about the user", in.Memory.UserTraits)
	if len(in.Memory.SignificantMoments) > 0 {
		sb.WriteString("- Significant moments:\n")
		for _, m := range in.Memory.SignificantMoments {
			sb.WriteString(fmt.Sprintf("  * %q\n", m))
		}
	}
	writeList(&sb, "Relationship milestones", in.Memory.Milestones)
	sb.WriteString("\n")

	// 7. Conversacion reciente
	recent := in.Recent
	if len(recent) > promptRecentTurns {
		recent = recent[len(recent)-promptRecentTurns:]
	}
	if len(recent) > 0 {
		sb.WriteString("=== RECENT CONVERSATION ===\n")
		for _, m := range recent {
			speaker := "User"
			if !m.IsFromUser() {
				speaker = name
			}
			sb.WriteString(fmt.Sprintf("%s: %s\n", speaker, strings.TrimSpace(m.Content)))
		}
		sb.WriteString("\n")
	}

	// 8. Mensaje actual
	sb.WriteString("=== USER MESSAGE ===\n")
	sb.WriteString(fmt.Sprintf("%q\n\n", in.UserMessage))

	// 9. Instrucciones de cierre
	sb.WriteString("=== INSTRUCTIONS ===\n")
	sb.WriteString(fmt.Sprintf("1. Stay in character as %s and keep the boundaries of a %s relationship.\n", name, roleLabel))
	sb.WriteString("2. Reply in natural, conversational prose. No lists, no stage directions, no speaker labels.\n")
	sb.WriteString("3. Never claim to be a doctor, lawyer or financial advisor; suggest a professional when it matters.\n")
	sb.WriteString("4. Never encourage secrecy, guilt or dependency on you.\n")
	sb.WriteString("5. Refer to shared memories only when they are listed above.\n")

	return sb.String()
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("- %s: %s\n", label, strings.Join(items, ", ")))
}

func writeBullets(sb *strings.Builder, items []string) {
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
}
