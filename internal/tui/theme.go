package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the accent-color-derived styles.
type Theme struct {
	header   lipgloss.Style
	border   lipgloss.Style
	selected lipgloss.Style
	column   lipgloss.Style
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#20B8CD").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		header: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(c).
			Bold(false),
		column: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			BorderBottom(true).
			Foreground(c).
			Bold(true),
	}
}

// HeaderStyle returns the style for the header bar.
func (t Theme) HeaderStyle() lipgloss.Style {
	return t.header
}

// BorderStyle returns the border drawn around the table.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.border
}

// TableStyles returns bubbles table styles using the accent color for the
// column headers and the selected row.
func (t Theme) TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Inherit(t.column)
	s.Selected = t.selected
	return s
}
