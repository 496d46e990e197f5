package render

import "hilal/internal/monthgrid"

// Sheet is a month layout that also knows its terminal rendering, so `--format text`
// prints the grid while the structured formats print the layout.
type Sheet struct {
	monthgrid.Layout
	text string
}

// NewSheet snapshots h and renders it with opts.
func NewSheet(h *monthgrid.Helper, withCells bool, opts Options) Sheet {
	return Sheet{Layout: h.Snapshot(withCells), text: Month(h, opts)}
}

func (s Sheet) Text() string { return s.text }
