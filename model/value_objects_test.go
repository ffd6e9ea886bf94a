package model

import (
	"testing"
	"time"
)

func TestNewWindowWeeks(t *testing.T) {
	w, err := NewWindowWeeks("")
	if err != nil {
		t.Fatalf("empty weeks should use default: %v", err)
	}
	if w.Int() != DefaultWindowWeeks {
		t.Errorf("default weeks = %d, want %d", w.Int(), DefaultWindowWeeks)
	}

	w, err = NewWindowWeeks("4")
	if err != nil {
		t.Fatalf("valid weeks rejected: %v", err)
	}
	if w.Int() != 4 {
		t.Errorf("weeks = %d, want 4", w.Int())
	}

	if _, err := NewWindowWeeks("0"); err == nil {
		t.Error("zero weeks should be rejected")
	}
	if _, err := NewWindowWeeks("abc"); err == nil {
		t.Error("non-numeric weeks should be rejected")
	}

	w, err = NewWindowWeeks("9999")
	if err != nil {
		t.Fatalf("oversized weeks rejected: %v", err)
	}
	if w.Int() != maxWindowWeeks {
		t.Errorf("oversized weeks = %d, want cap %d", w.Int(), maxWindowWeeks)
	}
}

func TestNewWindowWeeksWithDefault(t *testing.T) {
	w, err := NewWindowWeeksWithDefault("", 40)
	if err != nil {
		t.Fatalf("configured default rejected: %v", err)
	}
	if w.Int() != 40 {
		t.Errorf("weeks = %d, want configured default 40", w.Int())
	}

	// an explicit value always wins over the configured default
	w, err = NewWindowWeeksWithDefault("4", 40)
	if err != nil {
		t.Fatalf("explicit weeks rejected: %v", err)
	}
	if w.Int() != 4 {
		t.Errorf("weeks = %d, want explicit 4", w.Int())
	}

	if _, err := NewWindowWeeksWithDefault("", 0); err == nil {
		t.Error("non-positive default should be rejected")
	}

	w, err = NewWindowWeeksWithDefault("", 9999)
	if err != nil {
		t.Fatalf("oversized default rejected: %v", err)
	}
	if w.Int() != maxWindowWeeks {
		t.Errorf("oversized default = %d, want cap %d", w.Int(), maxWindowWeeks)
	}
}

func TestNewLookback(t *testing.T) {
	l, err := NewLookback("")
	if err != nil {
		t.Fatalf("empty lookback should use default: %v", err)
	}
	if l.Int() != DefaultLookback {
		t.Errorf("default lookback = %d, want %d", l.Int(), DefaultLookback)
	}

	if _, err := NewLookback("-3"); err == nil {
		t.Error("negative lookback should be rejected")
	}
}

func TestNewTimezoneMode(t *testing.T) {
	m, err := NewTimezoneMode("")
	if err != nil {
		t.Fatalf("empty mode should default to utc: %v", err)
	}
	if m != TimezoneUTC {
		t.Errorf("default mode = %v, want utc", m)
	}
	if m.Location() != time.UTC {
		t.Error("utc mode should resolve to time.UTC")
	}

	m, err = NewTimezoneMode("LOCAL")
	if err != nil {
		t.Fatalf("local mode rejected: %v", err)
	}
	if m.Location() != time.Local {
		t.Error("local mode should resolve to time.Local")
	}

	if _, err := NewTimezoneMode("tokyo"); err == nil {
		t.Error("unknown mode should be rejected")
	}
}

func TestNewUserID(t *testing.T) {
	if _, err := NewUserID(""); err == nil {
		t.Error("empty user ID should be rejected")
	}
	if _, err := NewUserID("a b"); err == nil {
		t.Error("user ID with space should be rejected")
	}
	u, err := NewUserID("user-42")
	if err != nil {
		t.Fatalf("valid user ID rejected: %v", err)
	}
	if u.String() != "user-42" {
		t.Errorf("user ID = %q, want %q", u.String(), "user-42")
	}
}

func TestEntryMap_LastWriteWins(t *testing.T) {
	entries := []NormalizedEntry{
		{DateKey: "2024-03-01", Emotion: Calma},
		{DateKey: "2024-03-02", Emotion: Tristeza},
		{DateKey: "2024-03-01", Emotion: Felicidad},
	}
	m := NewEntryMap(entries)
	if len(m) != 2 {
		t.Fatalf("map size = %d, want 2", len(m))
	}
	if m["2024-03-01"].Emotion != Felicidad {
		t.Errorf("duplicate key should resolve last-write-wins, got %v", m["2024-03-01"].Emotion)
	}

	keys := m.SortedKeys()
	if len(keys) != 2 || keys[0] != "2024-03-01" || keys[1] != "2024-03-02" {
		t.Errorf("SortedKeys = %v", keys)
	}
}
