package domain

import "strings"

// Tone es la enumeracion cerrada de tonos emocionales. Se usa tanto para
// describir la emocion del usuario como para guiar el estilo de la IA.
type Tone string

const (
	ToneHappy       Tone = "HAPPY"
	ToneSad         Tone = "SAD"
	ToneExcited     Tone = "EXCITED"
	ToneCalm        Tone = "CALM"
	ToneAnxious     Tone = "ANXIOUS"
	ToneAngry       Tone = "ANGRY"
	ToneLoving      Tone = "LOVING"
	TonePlayful     Tone = "PLAYFUL"
	ToneSerious     Tone = "SERIOUS"
	ToneSupportive  Tone = "SUPPORTIVE"
	ToneNeutral     Tone = "NEUTRAL"
	ToneWarm        Tone = "WARM"
	ToneGentle      Tone = "GENTLE"
	ToneEncouraging Tone = "ENCOURAGING"
	ToneWise        Tone = "WISE"
	ToneNurturing   Tone = "NURTURING"
	ToneJoyful      Tone = "JOYFUL"
	ToneEmpathetic  Tone = "EMPATHETIC"
	ToneProtective  Tone = "PROTECTIVE"
)

// AllTones conserva el orden de la enumeracion; los desempates dependen de el.
var AllTones = []Tone{
	ToneHappy,
	ToneSad,
	ToneExcited,
	ToneCalm,
	ToneAnxious,
	ToneAngry,
	ToneLoving,
	TonePlayful,
	ToneSerious,
	ToneSupportive,
	ToneNeutral,
	ToneWarm,
	ToneGentle,
	ToneEncouraging,
	ToneWise,
	ToneNurturing,
	ToneJoyful,
	ToneEmpathetic,
	ToneProtective,
}

// IsValid indica si el tono pertenece a la enumeracion.
func (t Tone) IsValid() bool {
	switch t {
	case ToneHappy, ToneSad, ToneExcited, ToneCalm, ToneAnxious, ToneAngry,
		ToneLoving, TonePlayful, ToneSerious, ToneSupportive, ToneNeutral,
		ToneWarm, ToneGentle, ToneEncouraging, ToneWise, ToneNurturing,
		ToneJoyful, ToneEmpathetic, ToneProtective:
		return true
	}
	return false
}

// IsNegative agrupa las emociones que disparan el mapa de consuelo.
func (t Tone) IsNegative() bool {
	switch t {
	case ToneSad, ToneAnxious, ToneAngry:
		return true
	}
	return false
}

// IsPositive agrupa las emociones que suman al sentimiento.
func (t Tone) IsPositive() bool {
	switch t {
	case ToneHappy, ToneExcited, ToneCalm, ToneLoving, TonePlayful, ToneJoyful:
		return true
	}
	return false
}

// ParseTone normaliza un string persistido; si no es valido devuelve NEUTRAL.
func ParseTone(raw string) Tone {
	t := Tone(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return ToneNeutral
	}
	return t
}

// ToneIndex devuelve la posicion del tono en AllTones (-1 si no existe).
func ToneIndex(t Tone) int {
	for i, candidate := range AllTones {
		if candidate == t {
			return i
		}
	}
	return -1
}
