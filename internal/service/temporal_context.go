package service

import (
	"strings"
	"time"
	_ "time/tzdata"

	"companion-llm/internal/domain"
)

const sessionGap = 30 * time.Minute

// TemporalContextBuilder deriva la informacion temporal del turno.
type TemporalContextBuilder struct {
	now func() time.Time
}

// NewTemporalContextBuilder acepta un reloj inyectable; nil usa time.Now.
func NewTemporalContextBuilder(now func() time.Time) TemporalContextBuilder {
	if now == nil {
		now = time.Now
	}
	return TemporalContextBuilder{now: now}
}

// Build calcula momento del dia, antiguedad, pausa y turnos de la sesion actual
// en la zona horaria preferida del usuario (UTC por defecto).
func (b TemporalContextBuilder) Build(convCtx domain.ConversationContext) domain.TemporalContext {
	clock := b.now
	if clock == nil {
		clock = time.Now
	}
	now := clock().In(resolveLocation(convCtx.Preferences.Timezone))

	tc := domain.TemporalContext{
		Now:       now,
		TimeOfDay: timeOfDay(now.Hour()),
		DayOfWeek: now.Weekday(),
	}
	tc.IsWeekend = tc.DayOfWeek == time.Saturday || tc.DayOfWeek == time.Sunday

	if created := convCtx.Relationship.CreatedAt; !created.IsZero() && now.After(created) {
		tc.RelationshipAgeDays = int(now.Sub(created).Hours() / 24)
	}

	if convCtx.LastInteraction != nil && now.After(*convCtx.LastInteraction) {
		tc.IdleGapHours = now.Sub(*convCtx.LastInteraction).Hours()
	}

	tc.TurnCount = sessionTurnCount(convCtx.RecentMessages, now)
	return tc
}

func resolveLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return domain.TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return domain.TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return domain.TimeOfDayEvening
	}
	return domain.TimeOfDayNight
}

// sessionTurnCount cuenta la racha final de mensajes separados por menos de
// 30 minutos. Si el ultimo mensaje ya quedo fuera de esa ventana la sesion es nueva.
func sessionTurnCount(messages []domain.Message, now time.Time) int {
	if len(messages) == 0 {
		return 0
	}
	last := messages[len(messages)-1].CreatedAt
	if now.Sub(last) >= sessionGap {
		return 0
	}
	count := 1
	for i := len(messages) - 1; i > 0; i-- {
		if messages[i].CreatedAt.Sub(messages[i-1].CreatedAt) >= sessionGap {
			break
		}
		count++
	}
	return count
}
