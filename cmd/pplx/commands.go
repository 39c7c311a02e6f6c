package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/pplx/internal/config"
	"github.com/LISSConsulting/pplx/internal/store"
)

// queryCmd builds one of the search/ask/research/reason subcommands. The
// model and cost estimate shown in the help come from the defaults; the
// config file may override both.
func queryCmd(opts *globalOptions, mode store.Mode, short string) *cobra.Command {
	mc, _ := config.Defaults().Modes.Lookup(mode)
	return &cobra.Command{
		Use:   string(mode) + " <query>",
		Short: fmt.Sprintf("%s (%s, ~$%g)", short, mc.Model, mc.EstCostUSD),
		Long: fmt.Sprintf("%s (%s, ~$%g).\n\nAll arguments are joined with spaces to form the query.",
			short, mc.Model, mc.EstCostUSD),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("query must not be empty")
			}
			return executeQuery(cmd, opts, mode, query)
		},
	}
}

// logOptions are the flags of the log subcommand.
type logOptions struct {
	all    bool
	stats  bool
	browse bool
	format string
}

func logCmd(opts *globalOptions) *cobra.Command {
	lo := &logOptions{}
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the usage log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeLog(cmd, opts, lo)
		},
	}
	cmd.Flags().BoolVar(&lo.all, "all", false, "show every entry (default: the most recent history_limit)")
	cmd.Flags().BoolVar(&lo.stats, "stats", false, "show per-mode counts and estimated costs")
	cmd.Flags().BoolVar(&lo.browse, "browse", false, "browse the log in an interactive table")
	cmd.Flags().StringVar(&lo.format, "format", "text", "output format: text, json or jsonl")
	cmd.MarkFlagsMutuallyExclusive("stats", "browse")
	return cmd
}

func initCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.InitFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}
