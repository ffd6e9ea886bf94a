package calendar

import (
	"time"

	"github.com/gamijournal/emocal/model"
)

// trimToBudget drops whole calendar months from the earliest end of the
// entry set until the count of populated (non-SinRegistro) days inside
// the window fits the display budget. After each drop the window start is
// re-anchored and the check repeats: re-anchoring can uncover new
// out-of-budget months, so this is a fixed-point loop. It terminates
// because every iteration removes at least one entry.
func trimToBudget(entries []model.NormalizedEntry, weeks int, ref time.Time, anchor Anchor) []model.NormalizedEntry {
	budget := weeks * 7 * densityBudgetNum / densityBudgetDen
	loc := ref.Location()
	refKey := ref.Format(model.DateKeyLayout)

	for len(entries) > 0 {
		byDay := model.NewEntryMap(entries)
		start := windowStart(byDay, weeks, ref, anchor, loc)
		startKey := start.Format(model.DateKeyLayout)
		endKey := start.AddDate(0, 0, weeks*7-1).Format(model.DateKeyLayout)
		if endKey > refKey {
			endKey = refKey
		}

		populated := 0
		for key, entry := range byDay {
			if entry.Emotion == model.SinRegistro {
				continue
			}
			if key >= startKey && key <= endKey {
				populated++
			}
		}
		if populated <= budget {
			return entries
		}

		entries = dropEarliestMonth(entries)
	}
	return entries
}

// dropEarliestMonth removes every entry belonging to the earliest
// calendar month present in the set. Months are removed whole, never
// partially.
func dropEarliestMonth(entries []model.NormalizedEntry) []model.NormalizedEntry {
	earliest := ""
	for _, e := range entries {
		month := e.DateKey[:7]
		if earliest == "" || month < earliest {
			earliest = month
		}
	}
	if earliest == "" {
		return entries
	}

	kept := make([]model.NormalizedEntry, 0, len(entries))
	for _, e := range entries {
		if e.DateKey[:7] != earliest {
			kept = append(kept, e)
		}
	}
	return kept
}
