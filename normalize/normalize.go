// Package normalize converts loosely-typed upstream emotion-log rows into
// canonical day→emotion entries. Rows whose date cannot be parsed are
// silently dropped; the drop count is reported out-of-band through the
// Result so callers can surface it as telemetry without widening the view
// model contract.
package normalize

import (
	"fmt"

	"github.com/gamijournal/emocal/model"
)

// RawRecord is an arbitrary upstream row. The producer guarantees nothing
// about its shape; date and mood values are probed under several keys.
type RawRecord map[string]any

// Field probe orders. The first present key wins, even if its value turns
// out to be unparseable.
var (
	dateFields = []string{"date", "day", "fecha", "created_at", "timestamp"}
	moodFields = []string{"mood", "emotion", "emocion", "emotion_id", "value", "name"}
)

// Skip reasons reported in Result.SkipReasons.
const (
	SkipMissingDate     = "missing_date"
	SkipUnparseableDate = "unparseable_date"
)

// Result is the output of one normalization pass.
type Result struct {
	// Entries holds the surviving entries in input order. The order is
	// not chronologically sorted; callers that need ordering sort
	// explicitly.
	Entries []model.NormalizedEntry
	// ByDay indexes entries by date key, last-write-wins on duplicates.
	ByDay model.EntryMap
	// Skipped counts rows dropped for unusable dates.
	Skipped int
	// SkipReasons tallies drops per reason.
	SkipReasons map[string]int
}

// Normalize runs one normalization pass over a raw batch. It is a total,
// synchronous function: malformed rows reduce the output, they never
// produce errors.
func Normalize(records []RawRecord, mode model.TimezoneMode) Result {
	res := Result{
		Entries:     make([]model.NormalizedEntry, 0, len(records)),
		SkipReasons: make(map[string]int),
	}
	for _, rec := range records {
		rawDate, ok := probeField(rec, dateFields)
		if !ok {
			res.skip(SkipMissingDate)
			continue
		}
		day, dateLabel, err := parseDay(rawDate, mode)
		if err != nil {
			res.skip(SkipUnparseableDate)
			continue
		}

		rawMood, _ := probeField(rec, moodFields)
		entry := model.NormalizedEntry{
			DateKey: day.Format(model.DateKeyLayout),
			Emotion: model.MapEmotion(rawMood),
			RawDate: dateLabel,
		}
		if rawMood != nil {
			entry.RawEmotion = fmt.Sprint(rawMood)
		}
		res.Entries = append(res.Entries, entry)
	}
	res.ByDay = model.NewEntryMap(res.Entries)
	return res
}

// Reencode converts entries back to raw-record shape. Normalizing the
// result of Reencode yields the same entries, which keeps snapshot
// replay and live fetches on one code path.
func Reencode(entries []model.NormalizedEntry) []RawRecord {
	records := make([]RawRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, RawRecord{
			"date":    e.DateKey,
			"emotion": e.Emotion.Label(),
		})
	}
	return records
}

func (r *Result) skip(reason string) {
	r.Skipped++
	r.SkipReasons[reason]++
}

// probeField returns the first present field value in priority order.
func probeField(rec RawRecord, fields []string) (any, bool) {
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			return v, true
		}
	}
	return nil, false
}
