// Package panels renders the fixed regions around the log browser table.
package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderProps holds all data needed to render the header bar.
type HeaderProps struct {
	LogPath   string
	Shown     int
	Total     int
	TotalCost float64
	From, To  string // first and last record dates
}

// RenderHeader renders the header bar. accentStyle is applied to the full
// header width.
func RenderHeader(props HeaderProps, width int, accentStyle lipgloss.Style) string {
	parts := []string{"pplx log"}

	count := fmt.Sprintf("%d queries", props.Total)
	if props.Shown < props.Total {
		count = fmt.Sprintf("%d of %d queries", props.Shown, props.Total)
	}
	parts = append(parts, count, fmt.Sprintf("est. $%.2f", props.TotalCost))

	if props.From != "" {
		if props.From == props.To {
			parts = append(parts, props.From)
		} else {
			parts = append(parts, props.From+" → "+props.To)
		}
	}
	if props.LogPath != "" {
		parts = append(parts, AbbreviatePath(props.LogPath))
	}

	return accentStyle.Width(width).MaxHeight(1).Render(strings.Join(parts, "  │  "))
}
