package tui

import "github.com/LISSConsulting/pplx/internal/tui/panels"

// Fixed column widths, excluding the table's one-cell padding on each side.
const (
	colTime     = 16
	colMode     = 9
	colCost     = 7
	colDuration = 7
	minQueryCol = 12

	cellPadding = 2
	borderSize  = 2
)

// Layout holds the computed geometry for a given terminal size.
type Layout struct {
	TableWidth  int // inner width of the bordered table
	TableHeight int // rows given to the table, header included
	QueryWidth  int
	TooSmall    bool // true when the terminal is below the minimum size
}

// MinWidth and MinHeight are the smallest terminal the browser draws in.
const (
	MinWidth  = colTime + colMode + colCost + colDuration + minQueryCol + 5*cellPadding + borderSize
	MinHeight = 1 + borderSize + 3 + panels.DetailHeight + 1
)

// Calculate computes the layout for a terminal of the given dimensions.
//
//   - Header: 1 row at top
//   - Table: bordered, fills the remaining height
//   - Detail: panels.DetailHeight rows under the table
//   - Footer: 1 row at bottom
func Calculate(width, height int) Layout {
	if width < MinWidth || height < MinHeight {
		return Layout{TooSmall: true}
	}
	inner := width - borderSize
	fixed := colTime + colMode + colCost + colDuration + 5*cellPadding
	return Layout{
		TableWidth:  inner,
		TableHeight: height - 1 - borderSize - panels.DetailHeight - 1,
		QueryWidth:  inner - fixed,
	}
}
