package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"photosort/internal/logging"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs [RUN_ID]",
		Short: "Print the main log, or the log of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.Paths.LogDir, logging.MainLogFile)
			if len(args) == 1 {
				store, err := openHistory(ctx)
				if err != nil {
					return err
				}
				run, err := store.GetRun(cmd.Context(), args[0])
				store.Close()
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				path = logging.RunLogPath(cfg.Paths.LogDir, run.ID)
			}

			out := cmd.OutOrStdout()
			tail, offset, err := logging.Tail(path, lines)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			return logging.Follow(cmd.Context(), path, offset, func(line string) {
				fmt.Fprintln(out, line)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")
	return cmd
}
