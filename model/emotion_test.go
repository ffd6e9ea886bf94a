package model

import (
	"encoding/json"
	"testing"
)

func TestMapEmotion_Vocabulary(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Emotion
	}{
		{"accented Spanish", "Motivación", Motivacion},
		{"unaccented Spanish", "motivacion", Motivacion},
		{"gendered adjective uppercase", "ANSIOSA", Ansiedad},
		{"gendered adjective masculine", "ansioso", Ansiedad},
		{"English word", "happy", Felicidad},
		{"surrounding whitespace", "  calma  ", Calma},
		{"neutral maps to Cansancio", "neutral", Cansancio},
		{"empty string", "", SinRegistro},
		{"nil", nil, SinRegistro},
		{"unrecognized free text", "INVALIDO", SinRegistro},
		{"code one", "1", Calma},
		{"code three", "3", Motivacion},
		{"code seven", "7", Cansancio},
		{"code zero", "0", SinRegistro},
		{"code eight", "8", SinRegistro},
		{"numeric code as int", 5, Ansiedad},
		{"numeric code as float", float64(2), Felicidad},
		{"fractional number", 2.5, SinRegistro},
		{"sentinel label round-trips", "SinRegistro", SinRegistro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapEmotion(tt.raw); got != tt.want {
				t.Errorf("MapEmotion(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMapEmotion_PositionalCodes(t *testing.T) {
	// the "1".."7" codes follow the canonical enumeration order
	want := []Emotion{Calma, Felicidad, Motivacion, Tristeza, Ansiedad, Frustracion, Cansancio}
	for i, e := range want {
		code := string(rune('1' + i))
		if got := MapEmotion(code); got != e {
			t.Errorf("MapEmotion(%q) = %v, want %v", code, got, e)
		}
	}
}

func TestMapEmotion_LabelRoundTrip(t *testing.T) {
	// every canonical label must map back onto itself; the snapshot
	// store depends on this round-trip
	for _, e := range Emotions() {
		if got := MapEmotion(e.Label()); got != e {
			t.Errorf("MapEmotion(%q) = %v, want %v", e.Label(), got, e)
		}
	}
	if got := MapEmotion(SinRegistro.Label()); got != SinRegistro {
		t.Errorf("MapEmotion(%q) = %v, want SinRegistro", SinRegistro.Label(), got)
	}
}

func TestEmotions_CanonicalOrder(t *testing.T) {
	got := Emotions()
	want := []Emotion{Calma, Felicidad, Motivacion, Tristeza, Ansiedad, Frustracion, Cansancio}
	if len(got) != len(want) {
		t.Fatalf("Emotions() returned %d emotions, want %d", len(got), len(want))
	}
	for i, e := range want {
		if got[i] != e {
			t.Errorf("Emotions()[%d] = %v, want %v", i, got[i], e)
		}
	}
	// the returned slice is a copy; mutating it must not corrupt the table
	got[0] = SinRegistro
	if again := Emotions(); again[0] != Calma {
		t.Errorf("Emotions() shares backing storage with callers")
	}
}

func TestEmotion_Palette(t *testing.T) {
	seen := make(map[string]Emotion)
	for _, e := range Emotions() {
		color := e.Color()
		if color == "" {
			t.Errorf("emotion %v has no palette color", e)
		}
		if prev, dup := seen[color]; dup {
			t.Errorf("emotions %v and %v share color %s", prev, e, color)
		}
		seen[color] = e
	}
	if SinRegistro.Color() == "" {
		t.Error("SinRegistro has no palette color")
	}
}

func TestEmotion_JSON(t *testing.T) {
	data, err := json.Marshal(Motivacion)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"Motivación"` {
		t.Errorf("Marshal = %s, want \"Motivación\"", data)
	}

	var e Emotion
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if e != Motivacion {
		t.Errorf("Unmarshal = %v, want Motivacion", e)
	}
}
