// Package tui is the interactive query-log browser: a bubbletea program that
// shows log records in a scrollable table with the full query of the
// selected row underneath.
package tui

import "github.com/charmbracelet/lipgloss"

// defaultAccentColor is used when no accent is configured (teal).
const defaultAccentColor = "#20B8CD"

var (
	colorGray = lipgloss.Color("#888888")
	colorRed  = lipgloss.Color("#FF6B6B")
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)
