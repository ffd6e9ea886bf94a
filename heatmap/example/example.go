// Command example writes a sample emotion heatmap SVG to stdout.
package main

import (
	"fmt"
	"time"

	"github.com/gamijournal/emocal/calendar"
	"github.com/gamijournal/emocal/heatmap"
	"github.com/gamijournal/emocal/model"
	"github.com/gamijournal/emocal/normalize"
)

func main() {
	records := []normalize.RawRecord{
		{"fecha": "2024-03-01", "emocion": "calma"},
		{"fecha": "2024-03-02", "emocion": "feliz"},
		{"fecha": "2024-03-04", "emocion": "3"},
		{"fecha": "2024-03-05", "emocion": "ANSIOSA"},
		{"fecha": "2024-03-07", "emocion": "neutral"},
	}

	res := normalize.Normalize(records, model.TimezoneUTC)
	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	grid := calendar.BuildGrid(res.Entries, calendar.Options{
		Weeks:        8,
		ReferenceEnd: ref,
		Anchor:       calendar.AnchorEarliest,
	})

	fmt.Println(heatmap.RenderSVG(grid, &heatmap.Options{
		CellSize:    12,
		CellPadding: 2,
		FontSize:    10,
		FontFamily:  "sans-serif",
		Title:       "Emociones",
	}))
}
