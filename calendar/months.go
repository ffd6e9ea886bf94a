package calendar

import (
	"strings"
	"time"
)

// monthAbbreviations is the fixed uppercase Spanish month label table.
// The irregular form SEPT (not SEP) matches the dashboard's typography
// and is not derivable from the month name.
var monthAbbreviations = [12]string{
	"ENE", "FEB", "MAR", "ABR", "MAY", "JUN",
	"JUL", "AGO", "SEPT", "OCT", "NOV", "DIC",
}

// monthLabel looks up the display abbreviation, falling back to a generic
// English abbreviation only when the table lookup fails.
func monthLabel(m time.Month) string {
	idx := int(m) - 1
	if idx >= 0 && idx < len(monthAbbreviations) {
		return monthAbbreviations[idx]
	}
	return strings.ToUpper(m.String()[:3])
}

// monthSegments walks the columns left to right and merges adjacent
// columns claimed by the same month. A column is claimed by the month of
// its first day-of-month-1 cell when it contains one; otherwise it
// inherits the active month from the previous column. The very first
// column is claimed by the month of its first cell.
func monthSegments(columns []Column) []MonthSegment {
	if len(columns) == 0 {
		return nil
	}

	segments := make([]MonthSegment, 0, 4)
	active := claimedMonth(columns[0], columns[0].StartDate.Month())
	segments = append(segments, MonthSegment{
		Label:       monthLabel(active),
		StartColumn: 0,
		Span:        1,
	})

	for i := 1; i < len(columns); i++ {
		claimed := claimedMonth(columns[i], active)
		if claimed == active {
			segments[len(segments)-1].Span++
			continue
		}
		active = claimed
		segments = append(segments, MonthSegment{
			Label:       monthLabel(active),
			StartColumn: i,
			Span:        1,
		})
	}
	return segments
}

// claimedMonth returns the month of the column's first day-of-month-1
// cell, or the inherited month when the column has none.
func claimedMonth(col Column, inherited time.Month) time.Month {
	for _, cell := range col.Cells {
		if cell.Date.Day() == 1 {
			return cell.Date.Month()
		}
	}
	return inherited
}
