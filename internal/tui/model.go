package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/pplx/internal/report"
	"github.com/LISSConsulting/pplx/internal/store"
)

// Options configures the browser.
type Options struct {
	Accent  string // hex accent color; empty uses the default
	Limit   int    // rows loaded unless All; non-positive means report.DefaultHistoryLimit
	All     bool
	LogPath string // shown in the header

	// Styles colors mode labels in the detail panel. Nil means color on.
	Styles *report.Styles
}

// Model is the bubbletea model for the log browser.
type Model struct {
	reader store.Reader
	opts   Options
	styles report.Styles
	keys   keyMap
	theme  Theme
	table  table.Model
	help   help.Model

	page    report.Page
	summary report.Summary

	width  int
	height int
	loaded bool
	err    error
}

// New creates a browser over the records returned by reader. Nothing is
// read until Init runs.
func New(reader store.Reader, opts Options) Model {
	keys := defaultKeyMap()
	theme := NewTheme(opts.Accent)
	styles := report.NewStyles(io.Discard, true)
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	m := Model{
		reader: reader,
		opts:   opts,
		styles: styles,
		keys:   keys,
		theme:  theme,
		table: table.New(
			table.WithColumns(columns(minQueryCol)),
			table.WithFocused(true),
			table.WithStyles(theme.TableStyles()),
			table.WithKeyMap(keys.table),
		),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.resize()
	return m
}

// Init starts loading the log.
func (m Model) Init() tea.Cmd {
	return loadRecords(m.reader)
}

// Err returns the error from the most recent load, if any.
func (m Model) Err() error {
	return m.err
}

// Selected returns the record under the cursor, or nil when the table is
// empty.
func (m Model) Selected() *store.EventRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.page.Records) {
		return nil
	}
	r := m.page.Records[i]
	return &r
}

func columns(queryWidth int) []table.Column {
	return []table.Column{
		{Title: "Time", Width: colTime},
		{Title: "Mode", Width: colMode},
		{Title: "Cost", Width: colCost},
		{Title: "Time(s)", Width: colDuration},
		{Title: "Query", Width: queryWidth},
	}
}

func rows(records []store.EventRecord) []table.Row {
	out := make([]table.Row, len(records))
	for i, r := range records {
		out[i] = table.Row{
			report.ShortTimestamp(r.Timestamp),
			string(r.Mode),
			report.FormatCost(r.EstCostUSD),
			report.FormatDuration(r.DurationMS),
			singleLine(r.Query),
		}
	}
	return out
}

// singleLine collapses newlines and runs of whitespace so a query fits one
// table row.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resize applies the layout for the current window and help state.
func (m *Model) resize() {
	m.help.Width = m.width
	l := Calculate(m.width, m.height-m.extraHelpLines())
	if l.TooSmall {
		return
	}
	m.table.SetColumns(columns(l.QueryWidth))
	m.table.SetWidth(l.TableWidth)
	m.table.SetHeight(l.TableHeight)
}

// extraHelpLines is how many rows the expanded help takes beyond the
// one-line footer.
func (m Model) extraHelpLines() int {
	if !m.help.ShowAll {
		return 0
	}
	n := len(m.keys.FullHelp()[0])
	for _, col := range m.keys.FullHelp() {
		if len(col) > n {
			n = len(col)
		}
	}
	return n - 1
}
