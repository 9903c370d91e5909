// Package main provides the CLI entry point for game_ingest.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/user/game_ingest_go/internal/config"
	"github.com/user/game_ingest_go/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// NewRootCommand builds the game_ingest command writing ingestion output to
// stdout and logs and errors to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()

	rc := &cobra.Command{
		Use:   "game_ingest [games.csv]",
		Short: "Ingest basketball game records into a numeric table",
		Long: `game_ingest reads a CSV of basketball game records, keeps a fixed
selection of numeric columns from every row and reports the shape of the
resulting table.

Options may also be set through GAMEINGEST_* environment variables or a TOML
file given with --config.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cmd.Flags()); err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Input = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.NewStandardLogger(stderr)
			if cfg.Verbose {
				log = logger.NewVerboseLogger(stderr)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return NewApp(cfg, stdout, log).Run(ctx)
		},
	}
	cfg.BindFlags(rc.Flags())

	rc.SetOut(stdout)
	rc.SetErr(stderr)
	return rc
}
