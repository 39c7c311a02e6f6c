// Package report renders the query log as a recent-history listing and as
// per-mode usage statistics. Every function here is read-only with respect
// to the store: callers pass in the records returned by store.Reader.
package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/LISSConsulting/pplx/internal/store"
)

const (
	// DefaultHistoryLimit is how many records the history view shows
	// unless asked for all of them.
	DefaultHistoryLimit = 20

	// maxQueryLen is the longest query shown untruncated; longer ones are
	// cut to maxQueryLen-1 characters plus an ellipsis.
	maxQueryLen = 60

	tsWidth   = 16 // "2026-02-14T15:30"
	dateWidth = 10 // "2026-02-14"
	modeWidth = 10
)

const emptyLog = "  No log entries yet."

// Page is the slice of the log selected for the history view.
type Page struct {
	Records []store.EventRecord
	Total   int
	Hidden  int
}

// Recent selects the records to display. With all set, or when the log
// holds no more than limit records, every record is kept; otherwise only
// the last limit. A non-positive limit means DefaultHistoryLimit.
func Recent(records []store.EventRecord, all bool, limit int) Page {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	p := Page{Records: records, Total: len(records)}
	if !all && len(records) > limit {
		p.Records = records[len(records)-limit:]
		p.Hidden = len(records) - limit
	}
	return p
}

// TruncateQuery shortens q to fit the history column. Length is counted
// in characters, never splitting a multibyte sequence.
func TruncateQuery(q string) string {
	if utf8.RuneCountInString(q) <= maxQueryLen {
		return q
	}
	return string([]rune(q)[:maxQueryLen-1]) + "…"
}

// FormatCost renders a per-query estimate, e.g. "$0.006".
func FormatCost(usd float64) string {
	return fmt.Sprintf("$%.3f", usd)
}

// FormatDuration renders milliseconds as seconds, e.g. "1.5s".
func FormatDuration(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// ShortTimestamp trims a record timestamp to minute precision.
func ShortTimestamp(ts string) string {
	return head(ts, tsWidth)
}

// head returns the first n characters of s, or all of s if it is shorter.
func head(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Printer writes the log views. Listings go to out; side notes such as the
// "older entries hidden" hint go to errOut so they never mix with data.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	styles Styles
	limit  int
}

// NewPrinter creates a Printer. limit is the history size used when not
// showing all records.
func NewPrinter(out, errOut io.Writer, styles Styles, limit int) *Printer {
	return &Printer{out: out, errOut: errOut, styles: styles, limit: limit}
}

// History renders the most recent records in file order.
func (p *Printer) History(records []store.EventRecord, all bool) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(p.out, emptyLog)
		return err
	}

	page := Recent(records, all, p.limit)
	if page.Hidden > 0 {
		note := fmt.Sprintf("  (showing last %d of %d — use --all for full log)", len(page.Records), page.Total)
		_, _ = fmt.Fprintln(p.errOut, p.styles.Dim(note))
	}

	for _, r := range page.Records {
		if _, err := fmt.Fprintln(p.out, p.historyLine(r)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) historyLine(r store.EventRecord) string {
	mode := runewidth.FillRight(string(r.Mode), modeWidth)
	return fmt.Sprintf("  %s %s %s %s  %s",
		p.styles.Dim(ShortTimestamp(r.Timestamp)),
		p.styles.Mode(r.Mode, mode),
		p.styles.Dim(fmt.Sprintf("%6s", FormatCost(r.EstCostUSD))),
		p.styles.Dim(fmt.Sprintf("%5s", FormatDuration(r.DurationMS))),
		TruncateQuery(r.Query),
	)
}
