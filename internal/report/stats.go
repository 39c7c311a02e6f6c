package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/LISSConsulting/pplx/internal/store"
)

// ModeTotal is the usage of one mode.
type ModeTotal struct {
	Mode  store.Mode `json:"mode"`
	Count int        `json:"count"`
	Cost  float64    `json:"cost_usd"`
}

// Summary aggregates the whole log.
type Summary struct {
	Count     int         `json:"count"`
	TotalCost float64     `json:"total_cost_usd"`
	From      string      `json:"from,omitempty"`
	To        string      `json:"to,omitempty"`
	Modes     []ModeTotal `json:"modes"`
}

// Aggregate groups records by mode and totals counts and estimated costs.
// Modes come out in store.SortModes order regardless of where they appear
// in the log. From and To are the dates of the first and last record.
func Aggregate(records []store.EventRecord) Summary {
	s := Summary{Modes: []ModeTotal{}}
	if len(records) == 0 {
		return s
	}

	byMode := make(map[store.Mode]*ModeTotal)
	var order []store.Mode
	for _, r := range records {
		t, ok := byMode[r.Mode]
		if !ok {
			t = &ModeTotal{Mode: r.Mode}
			byMode[r.Mode] = t
			order = append(order, r.Mode)
		}
		t.Count++
		t.Cost += r.EstCostUSD
		s.TotalCost += r.EstCostUSD
	}
	s.Count = len(records)
	s.From = head(records[0].Timestamp, dateWidth)
	s.To = head(records[len(records)-1].Timestamp, dateWidth)

	store.SortModes(order)
	for _, m := range order {
		s.Modes = append(s.Modes, *byMode[m])
	}
	return s
}

// Stats renders the per-mode usage table.
func (p *Printer) Stats(records []store.EventRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(p.out, emptyLog)
		return err
	}

	s := Aggregate(records)
	if _, err := fmt.Fprintf(p.out, "  %d queries from %s to %s\n\n", s.Count, s.From, s.To); err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	st := tw.Style()
	st.Options.DrawBorder = false
	st.Options.SeparateColumns = false
	st.Options.SeparateHeader = false
	st.Options.SeparateRows = false
	st.Options.SeparateFooter = true
	st.Format.Header = text.FormatDefault
	st.Format.Footer = text.FormatDefault

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft, AlignFooter: text.AlignLeft, WidthMin: 12},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignRight, AlignFooter: text.AlignRight, WidthMin: 6},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight, AlignFooter: text.AlignRight, WidthMin: 8},
	})

	tw.AppendHeader(table.Row{p.styles.Dim("Mode"), p.styles.Dim("Count"), p.styles.Dim("Cost")})
	for _, m := range s.Modes {
		tw.AppendRow(table.Row{
			p.styles.Mode(m.Mode, string(m.Mode)),
			m.Count,
			formatTotal(m.Cost),
		})
	}
	tw.AppendFooter(table.Row{
		p.styles.Bold("Total"),
		s.Count,
		p.styles.Bold(formatTotal(s.TotalCost)),
	})

	for _, line := range strings.Split(tw.Render(), "\n") {
		if _, err := fmt.Fprintln(p.out, "  "+line); err != nil {
			return err
		}
	}
	return nil
}

// formatTotal renders an aggregate cost, e.g. "$0.03".
func formatTotal(usd float64) string {
	return fmt.Sprintf("$%.2f", usd)
}
