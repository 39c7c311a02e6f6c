package main

import (
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LISSConsulting/pplx/internal/config"
	"github.com/LISSConsulting/pplx/internal/perplexity"
	"github.com/LISSConsulting/pplx/internal/report"
	"github.com/LISSConsulting/pplx/internal/store"
	"github.com/LISSConsulting/pplx/internal/tui"
)

const noContent = "No content in response"

// session is the per-invocation wiring: loaded config and the log store.
type session struct {
	cfg    *config.Config
	store  *store.JSONL
	logger *log.Logger // nil unless --verbose
}

func newSession(opts *globalOptions, errOut io.Writer) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, store: store.NewJSONL(path)}
	if opts.verbose {
		s.logger = log.New(errOut, "pplx: ", 0)
		s.store.Logger = s.logger
	}
	return s, nil
}

func (s *session) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func (o *globalOptions) colorChoice() report.ColorChoice {
	switch {
	case o.color:
		return report.ColorAlways
	case o.noColor:
		return report.ColorNever
	default:
		return report.ColorAuto
	}
}

func (o *globalOptions) styles(w io.Writer) report.Styles {
	return report.NewStyles(w, report.UseColor(w, o.colorChoice()))
}

// executeQuery sends query in mode, prints the answer and, unless --no-log,
// appends one record to the usage log. Nothing is recorded when the request
// fails.
func executeQuery(cmd *cobra.Command, opts *globalOptions, mode store.Mode, query string) error {
	s, err := newSession(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	mc, ok := s.cfg.Modes.Lookup(mode)
	if !ok {
		return fmt.Errorf("unknown mode %q", mode)
	}
	key, err := s.cfg.APIKey()
	if err != nil {
		return err
	}

	client := perplexity.New(s.cfg.API.BaseURL, key, s.cfg.Timeout())
	start := time.Now()
	resp, err := client.Query(cmd.Context(), mc.Model, query)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	s.debugf("%s via %s answered in %s", mode, mc.Model, elapsed.Round(time.Millisecond))

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if opts.raw {
		body, err := resp.Indented()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(body)); err != nil {
			return err
		}
	} else {
		displayAnswer(out, errOut, opts.styles(errOut), mode, resp)
	}

	if opts.noLog {
		return nil
	}
	rec := store.NewRecord(time.Now(), mode, mc.Model, query, len(resp.Content), mc.EstCostUSD, elapsed)
	if err := s.store.Append(rec); err != nil {
		return err
	}
	s.debugf("logged to %s", s.store.Path())
	return nil
}

// displayAnswer writes the answer text to out and the mode label and
// citations to errOut, so piping stdout captures only the answer.
func displayAnswer(out, errOut io.Writer, styles report.Styles, mode store.Mode, resp *perplexity.Response) {
	fmt.Fprintln(errOut, styles.Dim("[")+styles.Mode(mode, string(mode))+styles.Dim("]"))

	text := noContent
	if content, err := resp.Text(); err == nil {
		text = content
		if mode == store.ModeReason {
			text = perplexity.StripThinking(text)
		}
	}
	fmt.Fprintln(out, text)

	if len(resp.Citations) == 0 {
		return
	}
	fmt.Fprintln(errOut)
	fmt.Fprintln(errOut, styles.Dim("Sources:"))
	for i, url := range resp.Citations {
		fmt.Fprintf(errOut, "  %d. %s\n", i+1, styles.Dim(url))
	}
}

// executeLog renders the usage log as history, statistics, machine-readable
// output or the interactive browser.
func executeLog(cmd *cobra.Command, opts *globalOptions, lo *logOptions) error {
	format, err := report.ParseFormat(lo.format)
	if err != nil {
		return err
	}
	if lo.browse && format != report.FormatText {
		return fmt.Errorf("--browse cannot be combined with --format %s", format)
	}

	s, err := newSession(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if lo.browse {
		styles := opts.styles(out)
		m := tui.New(s.store, tui.Options{
			Accent:  s.cfg.TUI.AccentColor,
			Limit:   s.cfg.Log.HistoryLimit,
			All:     lo.all,
			LogPath: s.store.Path(),
			Styles:  &styles,
		})
		return tui.Run(cmd.Context(), m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(out))
	}

	records, err := s.store.ReadAll()
	if err != nil {
		return err
	}
	s.debugf("read %d records from %s", len(records), s.store.Path())

	switch {
	case format != report.FormatText && lo.stats:
		return report.WriteSummary(out, report.Aggregate(records), format)
	case format != report.FormatText:
		page := report.Recent(records, lo.all, s.cfg.Log.HistoryLimit)
		return report.WriteRecords(out, page.Records, format)
	}

	p := report.NewPrinter(out, errOut, opts.styles(out), s.cfg.Log.HistoryLimit)
	if lo.stats {
		return p.Stats(records)
	}
	return p.History(records, lo.all)
}
