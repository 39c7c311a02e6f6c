package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/pplx/internal/report"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case recordsLoadedMsg:
		return m.handleLoaded(msg), nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, loadRecords(m.reader)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleLoaded replaces the table contents and selects the newest record.
// A failed reload keeps the previous rows.
func (m Model) handleLoaded(msg recordsLoadedMsg) Model {
	m.loaded = true
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.err = nil
	m.page = report.Recent(msg.records, m.opts.All, m.opts.Limit)
	m.summary = report.Aggregate(msg.records)
	m.table.SetRows(rows(m.page.Records))
	m.table.GotoBottom()
	return m
}
