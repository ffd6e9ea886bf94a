// Package model provides the data model definitions for emocal.
package model

import (
	"sort"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD date key format. Keys in this
// layout compare chronologically as plain strings.
const DateKeyLayout = "2006-01-02"

// NormalizedEntry is one canonical day→emotion pair derived from a raw
// backend row. A NormalizedEntry always carries a valid date key; rows
// whose date could not be parsed are dropped during normalization and
// never become entries.
type NormalizedEntry struct {
	DateKey    string  `json:"date_key"`
	Emotion    Emotion `json:"emotion"`
	RawEmotion string  `json:"raw_emotion,omitempty"`
	RawDate    string  `json:"raw_date,omitempty"`
}

// Date parses the entry's date key in the given location.
func (e NormalizedEntry) Date(loc *time.Location) time.Time {
	t, _ := time.ParseInLocation(DateKeyLayout, e.DateKey, loc)
	return t
}

// EntryMap maps date keys to entries. Duplicate keys in the source batch
// resolve last-write-wins in input order.
type EntryMap map[string]NormalizedEntry

// NewEntryMap builds an EntryMap from an entry slice.
func NewEntryMap(entries []NormalizedEntry) EntryMap {
	m := make(EntryMap, len(entries))
	for _, e := range entries {
		m[e.DateKey] = e
	}
	return m
}

// SortedKeys returns all date keys in ascending chronological order.
func (m EntryMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
