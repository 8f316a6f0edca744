package main

import (
	"context"
	"io"
	"os"

	"github.com/aradsms/smscenter/internal/smscenter/app"
	"github.com/aradsms/smscenter/internal/smscenter/input"
	"github.com/spf13/cobra"
)

// stdout and stdin are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var inputFile string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a command file once",
		Long: `Reads the command language line by line and applies each command:

  number1 +36991212321
  subscribe number1
  group1 +369* +36123*
  message number1 number2,group1,broadcast "text"
  unsubscribe number1

Use --input - to read from standard input.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, appLogger, err := root.load()
			if err != nil {
				return err
			}
			if inputFile != "" {
				cfg.InputFile = inputFile
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			nc, err := connectNATSIfNeeded(ctx, cfg, appLogger, false)
			if err != nil {
				return err
			}
			if nc != nil {
				defer nc.Close()
			}
			smsTransport, err := buildTransport(cfg, nc, appLogger)
			if err != nil {
				return err
			}

			center := app.NewCenter(smsTransport, appLogger)
			runner := input.NewRunner(center, appLogger, cfg.SkipInvalidLines)

			var summary input.Summary
			if cfg.InputFile == "-" {
				summary, err = runner.Run(ctx, stdin)
			} else {
				summary, err = runner.RunFile(ctx, cfg.InputFile)
			}
			if err != nil {
				appLogger.ErrorContext(ctx, "Command processing stopped", "error", err, "lines", summary.Lines)
				return err
			}

			snap := center.Snapshot()
			appLogger.InfoContext(ctx, "Command processing finished",
				"lines", summary.Lines,
				"commands", summary.Commands,
				"failed", summary.Failed,
				"invalid", summary.Invalid,
				"registered", len(snap.Registrations),
				"reachable", len(snap.Reachable),
				"groups", len(snap.Groups),
				"held_messages", snap.HeldTotal,
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "command file to execute (overrides INPUT_FILE)")
	return cmd
}
