package calendar

import (
	"sort"

	"github.com/gamijournal/emocal/model"
)

// Highlight is the most frequent non-empty emotion within the trailing
// lookback window, used for the dashboard's summary callout. Emotion is
// never SinRegistro.
type Highlight struct {
	Emotion model.Emotion `json:"emotion"`
	Count   int           `json:"count"`
}

// ComputeHighlight counts emotions over the last lookback populated days
// at or before endKeyInclusive. Ties are broken by the latest occurrence
// date key, so the result is deterministic for any input. Returns nil
// when no populated day falls in the lookback slice.
func ComputeHighlight(byDay model.EntryMap, endKeyInclusive string, lookback int) *Highlight {
	if lookback < 1 {
		lookback = model.DefaultLookback
	}

	keys := make([]string, 0, len(byDay))
	for key, entry := range byDay {
		if key > endKeyInclusive || entry.Emotion == model.SinRegistro {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	if len(keys) > lookback {
		keys = keys[len(keys)-lookback:]
	}

	counts := make(map[model.Emotion]int)
	latest := make(map[model.Emotion]string)
	for _, key := range keys {
		emotion := byDay[key].Emotion
		counts[emotion]++
		if key > latest[emotion] {
			latest[emotion] = key
		}
	}

	var winner model.Emotion
	best := 0
	for emotion, count := range counts {
		switch {
		case count > best:
			winner, best = emotion, count
		case count == best && latest[emotion] > latest[winner]:
			winner = emotion
		}
	}
	return &Highlight{Emotion: winner, Count: best}
}
