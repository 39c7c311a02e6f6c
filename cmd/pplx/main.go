// Package main is the entry point for the pplx CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/pplx/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, cancel := signalContext()
	err := rootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pplx: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	raw        bool
	noLog      bool
	verbose    bool
	color      bool
	noColor    bool
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "pplx",
		Short:         "Perplexity from your terminal: search, ask, research and reason, with a local usage log",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $PPLX_CONFIG or <config-dir>/pplx/config.toml)")
	pf.BoolVar(&opts.raw, "raw", false, "print the raw JSON response instead of the answer")
	pf.BoolVar(&opts.noLog, "no-log", false, "do not record this query in the usage log")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics such as skipped log lines to stderr")
	pf.BoolVar(&opts.color, "color", false, "force colored output")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.MarkFlagsMutuallyExclusive("color", "no-color")

	root.AddCommand(
		queryCmd(opts, store.ModeSearch, "Quick search"),
		queryCmd(opts, store.ModeAsk, "Pro search"),
		queryCmd(opts, store.ModeResearch, "Deep research (expensive)"),
		queryCmd(opts, store.ModeReason, "Reasoning"),
		logCmd(opts),
		initCmd(opts),
	)

	return root
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
