package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/pplx/internal/report"
	"github.com/LISSConsulting/pplx/internal/store"
)

// DetailHeight is the number of rows the detail panel occupies.
const DetailHeight = 3

var (
	detailLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	detailQueryStyle = lipgloss.NewStyle().Bold(true)
)

// RenderDetail renders the selected record: a metadata line followed by the
// untruncated query, wrapped to width and clipped to the panel height.
func RenderDetail(rec *store.EventRecord, width int, styles report.Styles) string {
	if rec == nil {
		return lipgloss.NewStyle().Height(DetailHeight).Render(detailLabelStyle.Render("  No log entries yet."))
	}

	meta := styles.Mode(rec.Mode, string(rec.Mode)) + detailLabelStyle.Render(fmt.Sprintf("  %s  %s  %s  %s  %d bytes",
		rec.Timestamp,
		rec.Model,
		report.FormatCost(rec.EstCostUSD),
		report.FormatDuration(rec.DurationMS),
		rec.ResponseLen,
	))
	query := strings.Join(strings.Fields(rec.Query), " ")

	body := lipgloss.JoinVertical(lipgloss.Left,
		meta,
		detailQueryStyle.Width(width).Render(query),
	)
	return lipgloss.NewStyle().Width(width).Height(DetailHeight).MaxHeight(DetailHeight).Render(body)
}
