// Package heatmap renders the emotion calendar grid as an SVG string.
package heatmap

import (
	"fmt"
	"strings"

	"github.com/gamijournal/emocal/calendar"
)

// Options configures rendering parameters.
type Options struct {
	CellSize    int    // size of each day cell (px)
	CellPadding int    // padding between cells (px)
	FontSize    int    // font size for month labels (px)
	FontFamily  string // font family for labels
	Title       string // optional title above the grid
}

// RenderSVG returns an SVG string representing the emotion grid. Cell
// colors come from the grid itself; this function adds no data of its
// own beyond layout.
func RenderSVG(grid calendar.Grid, opts *Options) string {
	// default options
	if opts == nil {
		opts = &Options{
			CellSize:    12,
			CellPadding: 2,
			FontSize:    10,
			FontFamily:  "sans-serif",
		}
	}

	weeks := len(grid.Columns)
	if weeks == 0 {
		return ""
	}

	// compute dimensions
	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 8 // title text + padding
	}
	width := weeks*(opts.CellSize+opts.CellPadding) + opts.CellPadding
	height := 7*(opts.CellSize+opts.CellPadding) + opts.CellPadding + opts.FontSize + 4 + titleHeight

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height))
	sb.WriteString(fmt.Sprintf(`  <style>.label{font-family:%s;font-size:%dpx;fill:#666}.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}</style>`+"\n",
		opts.FontFamily, opts.FontSize, opts.FontFamily, opts.FontSize))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			opts.CellPadding, opts.FontSize, opts.Title))
	}

	// month segment labels at each segment's first column
	monthLabelY := opts.FontSize + titleHeight
	for _, seg := range grid.MonthSegments {
		x := opts.CellPadding + seg.StartColumn*(opts.CellSize+opts.CellPadding)
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%d" class="label">%s</text>`+"\n",
			x, monthLabelY, seg.Label))
	}

	// draw cells; synthesized empty cells render in the unrecorded color
	for w, col := range grid.Columns {
		x := opts.CellPadding + w*(opts.CellSize+opts.CellPadding)
		for i, cell := range col.Cells {
			y := opts.CellPadding + opts.FontSize + 4 + titleHeight + i*(opts.CellSize+opts.CellPadding)

			sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-date="%s" data-emotion="%s" data-origin="%s">`+"\n",
				x, y, opts.CellSize, opts.CellSize, cell.Color, cell.DateKey, cell.Emotion.Label(), cell.Origin))
			sb.WriteString(fmt.Sprintf(`    <title>%s</title>`+"\n", cell.Tooltip))
			sb.WriteString(`  </rect>` + "\n")
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}
