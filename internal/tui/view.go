package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/pplx/internal/tui/panels"
)

// View renders the browser: header, bordered table, detail panel, footer.
func (m Model) View() string {
	l := Calculate(m.width, m.height-m.extraHelpLines())
	if l.TooSmall {
		return dimStyle.Render(fmt.Sprintf("Terminal too small (%dx%d, need %dx%d). Press q to quit.",
			m.width, m.height, MinWidth, MinHeight))
	}

	header := panels.RenderHeader(panels.HeaderProps{
		LogPath:   m.opts.LogPath,
		Shown:     len(m.page.Records),
		Total:     m.page.Total,
		TotalCost: m.summary.TotalCost,
		From:      m.summary.From,
		To:        m.summary.To,
	}, m.width, m.theme.HeaderStyle())

	box := m.theme.BorderStyle().Width(l.TableWidth)
	var body string
	switch {
	case !m.loaded:
		body = box.Height(l.TableHeight).Render(dimStyle.Render("  Loading…"))
	case m.err != nil && len(m.page.Records) == 0:
		body = box.Height(l.TableHeight).Render(errorStyle.Render("  " + m.err.Error()))
	default:
		body = box.Render(m.table.View())
	}

	detail := panels.RenderDetail(m.Selected(), m.width, m.styles)

	var footer string
	if m.help.ShowAll {
		footer = m.help.View(m.keys)
	} else {
		footer = panels.RenderFooter(panels.FooterProps{
			Cursor: m.table.Cursor(),
			Rows:   len(m.page.Records),
			Hidden: m.page.Hidden,
			Help:   m.help.View(m.keys),
		}, m.width)
	}

	if m.err != nil && len(m.page.Records) > 0 {
		footer = errorStyle.Width(m.width).MaxHeight(1).Render("reload failed: " + m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, detail, footer)
}
