// Package model provides the data model definitions for emocal.
package model

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Emotion is one of the seven canonical mood categories, or the
// SinRegistro sentinel for days without a usable record.
type Emotion int

const (
	SinRegistro Emotion = iota
	Calma
	Felicidad
	Motivacion
	Tristeza
	Ansiedad
	Frustracion
	Cansancio
)

// canonicalOrder fixes the positional mapping for the numeric codes
// "1".."7". This order is a contract with the backend team; changing it
// requires coordination with the emotion-log producer.
var canonicalOrder = [7]Emotion{
	Calma,
	Felicidad,
	Motivacion,
	Tristeza,
	Ansiedad,
	Frustracion,
	Cansancio,
}

var emotionLabels = map[Emotion]string{
	SinRegistro: "SinRegistro",
	Calma:       "Calma",
	Felicidad:   "Felicidad",
	Motivacion:  "Motivación",
	Tristeza:    "Tristeza",
	Ansiedad:    "Ansiedad",
	Frustracion: "Frustración",
	Cansancio:   "Cansancio",
}

// emotionColors is the fixed display palette. Any change here is a
// breaking visual change for every dashboard client.
var emotionColors = map[Emotion]string{
	SinRegistro: "#ebedf0",
	Calma:       "#64b5f6",
	Felicidad:   "#ffd54f",
	Motivacion:  "#81c784",
	Tristeza:    "#7986cb",
	Ansiedad:    "#ba68c8",
	Frustracion: "#e57373",
	Cansancio:   "#a1887f",
}

// Label returns the canonical display label for the emotion.
func (e Emotion) Label() string {
	if label, ok := emotionLabels[e]; ok {
		return label
	}
	return emotionLabels[SinRegistro]
}

// Color returns the fixed palette hex color for the emotion.
func (e Emotion) Color() string {
	if color, ok := emotionColors[e]; ok {
		return color
	}
	return emotionColors[SinRegistro]
}

// String implements fmt.Stringer.
func (e Emotion) String() string {
	return e.Label()
}

// MarshalJSON renders the emotion as its canonical label.
func (e Emotion) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", e.Label())), nil
}

// UnmarshalJSON accepts anything MapEmotion accepts.
func (e *Emotion) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*e = MapEmotion(s)
	return nil
}

// Emotions returns the seven canonical emotions in positional order,
// excluding the SinRegistro sentinel.
func Emotions() []Emotion {
	out := make([]Emotion, len(canonicalOrder))
	copy(out, canonicalOrder[:])
	return out
}

// stripDiacritics removes combining marks so that accented and plain
// spellings fold to the same key ("Motivación" -> "motivacion").
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldEmotionKey canonicalizes a raw mood token for table lookup.
func foldEmotionKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	folded, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		return s
	}
	return folded
}

// emotionSynonyms maps folded tokens to canonical emotions. It covers the
// positional numeric codes, English and Spanish words including gendered
// adjective forms, and the literal "neutral" which maps to Cansancio by
// product convention.
var emotionSynonyms = map[string]Emotion{
	// positional numeric codes
	"1": Calma,
	"2": Felicidad,
	"3": Motivacion,
	"4": Tristeza,
	"5": Ansiedad,
	"6": Frustracion,
	"7": Cansancio,

	// Calma
	"calma":     Calma,
	"calm":      Calma,
	"calmada":   Calma,
	"calmado":   Calma,
	"tranquila": Calma,
	"tranquilo": Calma,
	"relajada":  Calma,
	"relajado":  Calma,
	"relaxed":   Calma,
	"peaceful":  Calma,

	// Felicidad
	"felicidad": Felicidad,
	"feliz":     Felicidad,
	"happy":     Felicidad,
	"happiness": Felicidad,
	"alegre":    Felicidad,
	"alegria":   Felicidad,
	"contenta":  Felicidad,
	"contento":  Felicidad,
	"joy":       Felicidad,

	// Motivación
	"motivacion": Motivacion,
	"motivada":   Motivacion,
	"motivado":   Motivacion,
	"motivated":  Motivacion,
	"motivation": Motivacion,
	"energica":   Motivacion,
	"energico":   Motivacion,
	"energetic":  Motivacion,

	// Tristeza
	"tristeza":  Tristeza,
	"triste":    Tristeza,
	"sad":       Tristeza,
	"sadness":   Tristeza,
	"deprimida": Tristeza,
	"deprimido": Tristeza,
	"down":      Tristeza,

	// Ansiedad
	"ansiedad":  Ansiedad,
	"ansiosa":   Ansiedad,
	"ansioso":   Ansiedad,
	"anxious":   Ansiedad,
	"anxiety":   Ansiedad,
	"nerviosa":  Ansiedad,
	"nervioso":  Ansiedad,
	"nervous":   Ansiedad,
	"estres":    Ansiedad,
	"estresada": Ansiedad,
	"estresado": Ansiedad,
	"stressed":  Ansiedad,

	// Frustración
	"frustracion": Frustracion,
	"frustrada":   Frustracion,
	"frustrado":   Frustracion,
	"frustrated":  Frustracion,
	"frustration": Frustracion,
	"enojada":     Frustracion,
	"enojado":     Frustracion,
	"enfadada":    Frustracion,
	"enfadado":    Frustracion,
	"angry":       Frustracion,
	"molesta":     Frustracion,
	"molesto":     Frustracion,

	// Cansancio ("neutral" is a deliberate product-convention synonym,
	// not a generic fallback)
	"cansancio": Cansancio,
	"cansada":   Cansancio,
	"cansado":   Cansancio,
	"tired":     Cansancio,
	"fatigue":   Cansancio,
	"fatigada":  Cansancio,
	"fatigado":  Cansancio,
	"agotada":   Cansancio,
	"agotado":   Cansancio,
	"exhausted": Cansancio,
	"neutral":   Cansancio,

	// sentinel spellings, so stored labels round-trip
	"sinregistro":  SinRegistro,
	"sin registro": SinRegistro,
	"sin_registro": SinRegistro,
}

// MapEmotion maps a raw mood value of any shape onto a canonical emotion.
// Unrecognized values map to SinRegistro; this function never fails.
func MapEmotion(raw any) Emotion {
	switch v := raw.(type) {
	case nil:
		return SinRegistro
	case Emotion:
		return v
	case string:
		return mapEmotionString(v)
	case int:
		return mapEmotionCode(int64(v))
	case int64:
		return mapEmotionCode(v)
	case float64:
		// JSON numbers decode as float64
		if v == float64(int64(v)) {
			return mapEmotionCode(int64(v))
		}
		return SinRegistro
	default:
		return mapEmotionString(fmt.Sprint(v))
	}
}

func mapEmotionCode(code int64) Emotion {
	if code >= 1 && code <= int64(len(canonicalOrder)) {
		return canonicalOrder[code-1]
	}
	return SinRegistro
}

func mapEmotionString(s string) Emotion {
	key := foldEmotionKey(s)
	if key == "" {
		return SinRegistro
	}
	if e, ok := emotionSynonyms[key]; ok {
		return e
	}
	return SinRegistro
}
