package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/gamijournal/emocal/model"
)

// epochMillisFloor: numeric dates at or above this are treated as Unix
// milliseconds rather than seconds.
const epochMillisFloor = 1e12

// parseDay resolves an arbitrary date-like value to a calendar day at
// midnight in the configured timezone mode. The returned label preserves
// the raw value for tooltips and diagnostics.
func parseDay(v any, mode model.TimezoneMode) (time.Time, string, error) {
	loc := mode.Location()
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, "", fmt.Errorf("zero time")
		}
		return atMidnight(t.In(loc)), t.Format(time.RFC3339), nil
	case float64:
		return epochDay(int64(t), loc)
	case int64:
		return epochDay(t, loc)
	case int:
		return epochDay(int64(t), loc)
	case string:
		return parseDayString(t, loc)
	default:
		return parseDayString(fmt.Sprint(v), loc)
	}
}

// parseDayString tries the date formats in fixed priority order:
// strict YYYY-MM-DD, ISO datetime prefix, DD/MM/YYYY, numeric epoch,
// then a permissive last-resort parse.
func parseDayString(s string, loc *time.Location) (time.Time, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	if t, err := time.ParseInLocation(model.DateKeyLayout, s, loc); err == nil {
		return t, s, nil
	}

	// ISO datetime: take the calendar-day prefix so the day is resolved
	// in the configured mode, not the payload's offset.
	if len(s) > len(model.DateKeyLayout) && (s[10] == 'T' || s[10] == ' ') {
		if t, err := time.ParseInLocation(model.DateKeyLayout, s[:10], loc); err == nil {
			return t, s, nil
		}
	}

	if t, err := time.ParseInLocation("02/01/2006", s, loc); err == nil {
		return t, s, nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		day, _, err := epochDay(n, loc)
		return day, s, err
	}

	// last resort: permissive native parsing
	if t, err := dateparse.ParseIn(s, loc); err == nil {
		return atMidnight(t.In(loc)), s, nil
	}

	return time.Time{}, "", fmt.Errorf("unparseable date %q", s)
}

func epochDay(n int64, loc *time.Location) (time.Time, string, error) {
	if n <= 0 {
		return time.Time{}, "", fmt.Errorf("non-positive epoch %d", n)
	}
	var t time.Time
	if n >= epochMillisFloor {
		t = time.UnixMilli(n)
	} else {
		t = time.Unix(n, 0)
	}
	return atMidnight(t.In(loc)), strconv.FormatInt(n, 10), nil
}

// atMidnight zeroes the clock, keeping the calendar day in t's location.
func atMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
