package service

import (
	"fmt"

	"companion-llm/internal/domain"
)

const initialToneIntensity = 0.7

// Mapas parciales: los tonos ausentes pasan sin cambio.
var (
	softenMap = map[domain.Tone]domain.Tone{
		domain.TonePlayful:     domain.ToneGentle,
		domain.ToneExcited:     domain.ToneCalm,
		domain.ToneJoyful:      domain.ToneWarm,
		domain.ToneEncouraging: domain.ToneSupportive,
		domain.ToneSerious:     domain.ToneGentle,
		domain.ToneProtective:  domain.ToneNurturing,
	}
	energizeMap = map[domain.Tone]domain.Tone{
		domain.ToneCalm:       domain.ToneEncouraging,
		domain.ToneGentle:     domain.TonePlayful,
		domain.ToneSupportive: domain.ToneEncouraging,
		domain.ToneWarm:       domain.ToneJoyful,
		domain.ToneNeutral:    domain.ToneHappy,
	}
	calmMap = map[domain.Tone]domain.Tone{
		domain.ToneExcited:     domain.ToneCalm,
		domain.TonePlayful:     domain.ToneGentle,
		domain.ToneJoyful:      domain.ToneWarm,
		domain.ToneEncouraging: domain.ToneSupportive,
		domain.ToneHappy:       domain.ToneCalm,
	}
	warmMap = map[domain.Tone]domain.Tone{
		domain.ToneNeutral:    domain.ToneWarm,
		domain.ToneSerious:    domain.ToneWarm,
		domain.ToneCalm:       domain.ToneWarm,
		domain.ToneSupportive: domain.ToneWarm,
		domain.ToneWise:       domain.ToneNurturing,
	}
	// El consuelo depende de la emocion del usuario, no del tono actual.
	comfortMap = map[domain.Tone]domain.Tone{
		domain.ToneSad:     domain.ToneEmpathetic,
		domain.ToneAnxious: domain.ToneCalm,
		domain.ToneAngry:   domain.ToneGentle,
	}
)

// Roles que se permiten mas energia por la manana.
var energeticMorningRoles = map[domain.RoleType]struct{}{
	domain.RoleSibling:         {},
	domain.RoleFriend:          {},
	domain.RoleRomanticPartner: {},
}

// ToneModulator aplica reglas en orden fijo sobre el tono base.
type ToneModulator struct{}

var DefaultToneModulator = ToneModulator{}

func mapTone(m map[domain.Tone]domain.Tone, t domain.Tone) domain.Tone {
	if mapped, ok := m[t]; ok {
		return mapped
	}
	return t
}

// ModulateTone el orden de las reglas importa: cada una ve el tono que dejo la anterior.
func (ToneModulator) ModulateTone(
	baseTone domain.Tone,
	mood domain.MoodState,
	temporal domain.TemporalContext,
	userEmotion domain.Tone,
	role domain.RoleType,
) domain.ToneModulation {
	if !baseTone.IsValid() {
		baseTone = domain.ToneNeutral
	}
	tone := baseTone
	intensity := initialToneIntensity
	reasons := []string{}

	if mood.Energy < 0.3 {
		tone = mapTone(softenMap, tone)
		intensity *= 0.7
		reasons = append(reasons, fmt.Sprintf("Low energy (%.2f): softened tone", mood.Energy))
	}

	if mood.Engagement > 0.8 {
		intensity = clamp01(intensity * 1.2)
		reasons = append(reasons, fmt.Sprintf("High engagement (%.2f): increased intensity", mood.Engagement))
	}

	if userEmotion.IsNegative() {
		tone = mapTone(comfortMap, userEmotion)
		reasons = append(reasons, fmt.Sprintf("User feels %s: comforting tone", userEmotion))
	}

	if _, ok := energeticMorningRoles[role]; ok && temporal.TimeOfDay == domain.TimeOfDayMorning {
		tone = mapTone(energizeMap, tone)
		reasons = append(reasons, "Morning: energized tone")
	}

	if temporal.TimeOfDay == domain.TimeOfDayNight {
		tone = mapTone(calmMap, tone)
		intensity *= 0.8
		reasons = append(reasons, "Night: calmer tone")
	}

	if temporal.IdleGapHours > longAbsenceHours {
		tone = mapTone(warmMap, tone)
		reasons = append(reasons, fmt.Sprintf("Long absence (%.0fh): warmer welcome", temporal.IdleGapHours))
	}

	if temporal.RelationshipAgeDays < 7 {
		intensity *= 0.8
		reasons = append(reasons, "New relationship: toned down intensity")
	}

	if temporal.TurnCount > 10 {
		intensity *= 0.5 + 0.5*clamp01(mood.Consistency)
		reasons = append(reasons, fmt.Sprintf("Long conversation (%d turns): intensity scaled by consistency", temporal.TurnCount))
	}

	if !tone.IsValid() {
		tone = baseTone
	}

	return domain.ToneModulation{
		BaseTone:     baseTone,
		ModifiedTone: tone,
		Intensity:    clamp01(intensity),
		Reasons:      reasons,
	}
}
