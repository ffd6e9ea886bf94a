package calendar

import (
	"testing"
	"time"

	"github.com/gamijournal/emocal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildGrid_CellCountInvariant(t *testing.T) {
	ref := date(2024, 3, 3)
	for _, weeks := range []int{1, 4, 26, 52} {
		grid := BuildGrid(nil, Options{Weeks: weeks, ReferenceEnd: ref})
		if len(grid.Columns) != weeks {
			t.Errorf("weeks=%d: len(Columns) = %d", weeks, len(grid.Columns))
		}
		for i, col := range grid.Columns {
			if len(col.Cells) != 7 {
				t.Errorf("weeks=%d: column %d has %d cells", weeks, i, len(col.Cells))
			}
			if col.StartDate.Weekday() != time.Monday {
				t.Errorf("weeks=%d: column %d starts on %v", weeks, i, col.StartDate.Weekday())
			}
		}
	}
}

func TestBuildGrid_EmptyInput(t *testing.T) {
	grid := BuildGrid(nil, Options{Weeks: 4, ReferenceEnd: date(2024, 3, 3)})
	for _, col := range grid.Columns {
		for _, cell := range col.Cells {
			if cell.Emotion != model.SinRegistro || cell.Origin != OriginFrontend {
				t.Errorf("cell %s = {%v %v}, want empty frontend cell", cell.DateKey, cell.Emotion, cell.Origin)
			}
			if cell.Color != model.SinRegistro.Color() {
				t.Errorf("cell %s color = %s", cell.DateKey, cell.Color)
			}
		}
	}
}

func TestBuildGrid_NoFutureLeak(t *testing.T) {
	ref := date(2024, 3, 6) // Wednesday
	entries := []model.NormalizedEntry{
		{DateKey: "2024-03-05", Emotion: model.Calma},
		// erroneous future entry: must never surface
		{DateKey: "2024-03-08", Emotion: model.Felicidad},
	}

	grid := BuildGrid(entries, Options{Weeks: 2, ReferenceEnd: ref})
	refKey := ref.Format(model.DateKeyLayout)
	for _, col := range grid.Columns {
		for _, cell := range col.Cells {
			if cell.DateKey > refKey && cell.Origin == OriginBackend {
				t.Errorf("future cell %s has backend origin", cell.DateKey)
			}
		}
	}

	if got := findCell(t, grid, "2024-03-08"); got.Emotion != model.SinRegistro {
		t.Errorf("future cell emotion = %v, want SinRegistro", got.Emotion)
	}
	if got := findCell(t, grid, "2024-03-05"); got.Emotion != model.Calma || got.Origin != OriginBackend {
		t.Errorf("past cell = {%v %v}, want backend Calma", got.Emotion, got.Origin)
	}
}

func TestBuildGrid_MonthSegmentPartition(t *testing.T) {
	for _, weeks := range []int{4, 13, 26, 52} {
		grid := BuildGrid(nil, Options{Weeks: weeks, ReferenceEnd: date(2024, 10, 6)})
		segments := grid.MonthSegments

		if len(segments) == 0 {
			t.Fatalf("weeks=%d: no segments", weeks)
		}
		if segments[0].StartColumn != 0 {
			t.Errorf("weeks=%d: first segment starts at %d", weeks, segments[0].StartColumn)
		}
		total := 0
		for i, seg := range segments {
			if seg.Span < 1 {
				t.Errorf("weeks=%d: segment %d has span %d", weeks, i, seg.Span)
			}
			if i > 0 {
				prev := segments[i-1]
				if seg.StartColumn != prev.StartColumn+prev.Span {
					t.Errorf("weeks=%d: gap or overlap before segment %d", weeks, i)
				}
				if seg.Label == prev.Label {
					t.Errorf("weeks=%d: adjacent segments %d and %d share label %s", weeks, i-1, i, seg.Label)
				}
			}
			total += seg.Span
		}
		if total != weeks {
			t.Errorf("weeks=%d: segment spans sum to %d", weeks, total)
		}
	}
}

func TestBuildGrid_MonthLabels(t *testing.T) {
	// 6 weeks ending 2024-10-06: the first column (Aug 26 - Sep 1)
	// contains Sep 1 and therefore claims September; September's
	// irregular abbreviation is SEPT, not SEP
	grid := BuildGrid(nil, Options{Weeks: 6, ReferenceEnd: date(2024, 10, 6)})

	segments := grid.MonthSegments
	if len(segments) != 2 {
		t.Fatalf("segments = %+v, want SEPT and OCT", segments)
	}
	if segments[0].Label != "SEPT" || segments[0].Span != 5 {
		t.Errorf("segment 0 = %+v, want {SEPT 0 5}", segments[0])
	}
	if segments[1].Label != "OCT" || segments[1].StartColumn != 5 || segments[1].Span != 1 {
		t.Errorf("segment 1 = %+v, want {OCT 5 1}", segments[1])
	}
}

func TestBuildGrid_AnchorEarliest(t *testing.T) {
	entries := []model.NormalizedEntry{
		{DateKey: "2024-02-14", Emotion: model.Calma}, // Wednesday
	}
	grid := BuildGrid(entries, Options{
		Weeks:        4,
		ReferenceEnd: date(2024, 6, 30),
		Anchor:       AnchorEarliest,
	})
	// the window starts on the Monday of the earliest entry's week
	if got := grid.Columns[0].StartKey; got != "2024-02-12" {
		t.Errorf("window start = %s, want 2024-02-12", got)
	}
	if cell := findCell(t, grid, "2024-02-14"); cell.Emotion != model.Calma {
		t.Errorf("anchored entry missing from grid")
	}
}

func TestBuildGrid_EndToEndScenario(t *testing.T) {
	entries := []model.NormalizedEntry{
		{DateKey: "2024-03-01", Emotion: model.Calma, RawEmotion: "calma", RawDate: "2024-03-01"},
		{DateKey: "2024-03-02", Emotion: model.SinRegistro, RawEmotion: "INVALIDO", RawDate: "2024-03-02"},
	}
	ref := date(2024, 3, 3)
	grid := BuildGrid(entries, Options{Weeks: 4, ReferenceEnd: ref})

	if len(grid.Columns) != 4 {
		t.Fatalf("len(Columns) = %d, want 4", len(grid.Columns))
	}

	calma := findCell(t, grid, "2024-03-01")
	if calma.Emotion != model.Calma || calma.Origin != OriginBackend {
		t.Errorf("2024-03-01 = {%v %v}, want backend Calma", calma.Emotion, calma.Origin)
	}
	if calma.Color != model.Calma.Color() {
		t.Errorf("2024-03-01 color = %s", calma.Color)
	}
	if calma.Tooltip != "01/03/2024: Calma" {
		t.Errorf("2024-03-01 tooltip = %q", calma.Tooltip)
	}

	// the unrecognized-emotion record survives as an unrecorded day
	invalid := findCell(t, grid, "2024-03-02")
	if invalid.Emotion != model.SinRegistro || invalid.Origin != OriginBackend {
		t.Errorf("2024-03-02 = {%v %v}, want backend SinRegistro", invalid.Emotion, invalid.Origin)
	}

	for _, col := range grid.Columns {
		for _, cell := range col.Cells {
			if cell.DateKey == "2024-03-01" || cell.DateKey == "2024-03-02" {
				continue
			}
			if cell.Emotion != model.SinRegistro {
				t.Errorf("cell %s = %v, want SinRegistro", cell.DateKey, cell.Emotion)
			}
		}
	}

	highlight := ComputeHighlight(model.NewEntryMap(entries), ref.Format(model.DateKeyLayout), 15)
	if highlight == nil || highlight.Emotion != model.Calma || highlight.Count != 1 {
		t.Errorf("highlight = %+v, want {Calma 1}", highlight)
	}
}

func TestBuildGrid_DensityTrim(t *testing.T) {
	// 26 weeks ending Sunday 2024-06-30: the trailing window starts on
	// Monday 2024-01-01 and covers 182 days. 150 populated days exceed
	// the budget of floor(182*0.75)=136, so whole months drop from the
	// earliest end until the ratio fits.
	ref := date(2024, 6, 30)
	var entries []model.NormalizedEntry
	populate := func(y int, m time.Month, days int) {
		for d := 1; d <= days; d++ {
			entries = append(entries, model.NormalizedEntry{
				DateKey: date(y, m, d).Format(model.DateKeyLayout),
				Emotion: model.Calma,
			})
		}
	}
	populate(2024, time.January, 31)
	populate(2024, time.February, 29)
	populate(2024, time.March, 31)
	populate(2024, time.April, 30)
	populate(2024, time.May, 29)

	grid := BuildGrid(entries, Options{
		Weeks:        26,
		ReferenceEnd: ref,
		Anchor:       AnchorEarliest,
		TrimDensity:  true,
	})

	budget := 26 * 7 * 3 / 4
	populated := 0
	sawJanuary := false
	sawFebruary := false
	for _, col := range grid.Columns {
		for _, cell := range col.Cells {
			if cell.Origin != OriginBackend || cell.Emotion == model.SinRegistro {
				continue
			}
			populated++
			switch cell.DateKey[:7] {
			case "2024-01":
				sawJanuary = true
			case "2024-02":
				sawFebruary = true
			}
		}
	}

	if populated > budget {
		t.Errorf("populated days = %d, want <= %d", populated, budget)
	}
	if sawJanuary {
		t.Error("January should be trimmed whole")
	}
	if !sawFebruary {
		t.Error("February should survive trimming")
	}
}

func TestBuildGrid_TrimNoOpWhenSparse(t *testing.T) {
	entries := []model.NormalizedEntry{
		{DateKey: "2024-03-01", Emotion: model.Calma},
	}
	grid := BuildGrid(entries, Options{
		Weeks:        4,
		ReferenceEnd: date(2024, 3, 3),
		TrimDensity:  true,
	})
	if cell := findCell(t, grid, "2024-03-01"); cell.Emotion != model.Calma {
		t.Error("sparse data should never be trimmed")
	}
}

func findCell(t *testing.T, grid Grid, key string) Cell {
	t.Helper()
	for _, col := range grid.Columns {
		for _, cell := range col.Cells {
			if cell.DateKey == key {
				return cell
			}
		}
	}
	t.Fatalf("cell %s not in grid", key)
	return Cell{}
}
