package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/pplx/internal/store"
)

// recordsLoadedMsg carries the result of reading the log.
type recordsLoadedMsg struct {
	records []store.EventRecord
	err     error
}

// loadRecords returns a command that reads every record from r.
func loadRecords(r store.Reader) tea.Cmd {
	return func() tea.Msg {
		records, err := r.ReadAll()
		return recordsLoadedMsg{records: records, err: err}
	}
}
