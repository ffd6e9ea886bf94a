// Package calendar synthesizes the emotion calendar view model: a
// Monday-start week-column grid over a fixed window, month-boundary
// segments, a most-frequent-recent-emotion highlight, and whole-month
// density trimming. Every function here is a total, synchronous
// computation over in-memory data; there is no I/O and no error path.
package calendar

import (
	"fmt"
	"time"

	"github.com/gamijournal/emocal/model"
)

// Origin records whether a cell's value came from a matched entry or was
// synthesized for calendar completeness.
type Origin string

const (
	OriginBackend  Origin = "backend"
	OriginFrontend Origin = "frontend"
)

// Cell is one rendered calendar day.
type Cell struct {
	DateKey    string        `json:"date_key"`
	Date       time.Time     `json:"-"`
	Emotion    model.Emotion `json:"emotion"`
	Color      string        `json:"color"`
	Origin     Origin        `json:"origin"`
	RawEmotion string        `json:"raw_emotion,omitempty"`
	RawDate    string        `json:"raw_date,omitempty"`
	Tooltip    string        `json:"tooltip"`
}

// Column is one Monday-start week of exactly seven cells.
type Column struct {
	StartKey  string    `json:"start_key"`
	StartDate time.Time `json:"-"`
	Cells     []Cell    `json:"cells"`
}

// MonthSegment labels a run of columns belonging to one month. Segments
// partition the full column range with no gaps or overlaps.
type MonthSegment struct {
	Label       string `json:"label"`
	StartColumn int    `json:"start_column"`
	Span        int    `json:"span"`
}

// Grid is the assembled view model handed to the rendering layer.
type Grid struct {
	Columns       []Column       `json:"columns"`
	MonthSegments []MonthSegment `json:"month_segments"`
}

// Anchor selects how the window start is determined.
type Anchor int

const (
	// AnchorTrailing renders a fixed trailing window ending at the
	// reference date.
	AnchorTrailing Anchor = iota
	// AnchorEarliest anchors the window at the earliest entry's week.
	AnchorEarliest
)

// Options configures one grid build.
type Options struct {
	// Weeks is the window length in complete weeks; values below 1 are
	// clamped to 1.
	Weeks int
	// ReferenceEnd is "today": entries dated after it are never looked
	// up and always render unrecorded. Its location decides the
	// calendar-day convention for the whole grid.
	ReferenceEnd time.Time
	// Anchor selects the window start policy.
	Anchor Anchor
	// TrimDensity enables whole-month trimming when populated days
	// would exceed the display budget.
	TrimDensity bool
}

// densityBudgetNum/Den: populated days may cover at most 75% of the
// window's cells before whole-month trimming kicks in.
const (
	densityBudgetNum = 3
	densityBudgetDen = 4
)

// BuildGrid lays the normalized entries out over the calendar window.
// An empty entry set yields a fully populated all-SinRegistro grid.
func BuildGrid(entries []model.NormalizedEntry, opts Options) Grid {
	weeks := opts.Weeks
	if weeks < 1 {
		weeks = 1
	}
	ref := atMidnight(opts.ReferenceEnd)
	loc := ref.Location()

	if opts.TrimDensity {
		entries = trimToBudget(entries, weeks, ref, opts.Anchor)
	}
	byDay := model.NewEntryMap(entries)
	start := windowStart(byDay, weeks, ref, opts.Anchor, loc)
	refKey := ref.Format(model.DateKeyLayout)

	columns := make([]Column, 0, weeks)
	for w := 0; w < weeks; w++ {
		colStart := start.AddDate(0, 0, w*7)
		col := Column{
			StartKey:  colStart.Format(model.DateKeyLayout),
			StartDate: colStart,
			Cells:     make([]Cell, 0, 7),
		}
		for i := 0; i < 7; i++ {
			date := colStart.AddDate(0, 0, i)
			col.Cells = append(col.Cells, buildCell(date, byDay, refKey))
		}
		columns = append(columns, col)
	}

	return Grid{
		Columns:       columns,
		MonthSegments: monthSegments(columns),
	}
}

// buildCell resolves one calendar day against the entry map. Days after
// the reference date are never looked up, even if the map (erroneously)
// contains them.
func buildCell(date time.Time, byDay model.EntryMap, refKey string) Cell {
	key := date.Format(model.DateKeyLayout)
	cell := Cell{
		DateKey: key,
		Date:    date,
		Emotion: model.SinRegistro,
		Origin:  OriginFrontend,
	}
	if key <= refKey {
		if entry, ok := byDay[key]; ok {
			cell.Emotion = entry.Emotion
			cell.Origin = OriginBackend
			cell.RawEmotion = entry.RawEmotion
			cell.RawDate = entry.RawDate
		}
	}
	cell.Color = cell.Emotion.Color()
	cell.Tooltip = fmt.Sprintf("%s: %s", date.Format("02/01/2006"), cell.Emotion.Label())
	return cell
}

// windowStart determines the Monday the window begins on. With no entries
// the earliest-anchored policy falls back to the trailing policy so the
// grid still renders.
func windowStart(byDay model.EntryMap, weeks int, ref time.Time, anchor Anchor, loc *time.Location) time.Time {
	if anchor == AnchorEarliest && len(byDay) > 0 {
		keys := byDay.SortedKeys()
		earliest, _ := time.ParseInLocation(model.DateKeyLayout, keys[0], loc)
		return mondayOf(earliest)
	}
	return mondayOf(ref).AddDate(0, 0, -(weeks-1)*7)
}

// mondayOf returns the Monday of the week containing t.
func mondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday())
	// convert Sunday (0) to 7 for Monday-start weeks
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

func atMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
