package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Cursor int // 0-based index of the selected row
	Rows   int
	Hidden int // older records not loaded into the table
	Help   string
}

// RenderFooter renders the footer bar. Left side: row position. Right side:
// key hints.
func RenderFooter(props FooterProps, width int) string {
	left := "—"
	if props.Rows > 0 {
		left = fmt.Sprintf("%d/%d", props.Cursor+1, props.Rows)
	}
	if props.Hidden > 0 {
		left += fmt.Sprintf("  (+%d older, --all to load)", props.Hidden)
	}

	right := props.Help
	gap := width - runewidth.StringWidth(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}

	return footerStyle.Width(width).MaxHeight(1).Render(left + strings.Repeat(" ", gap) + right)
}
