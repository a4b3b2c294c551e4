package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photosort/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var source, dest string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the source and destination folders are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(source) == "" {
				source = cfg.Sort.Source
			}
			if strings.TrimSpace(dest) == "" {
				dest = cfg.Sort.Destination
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(preflight.Request{
				Source:       source,
				Destination:  dest,
				MinFreeBytes: cfg.MinFreeBytes(),
			})
			results = append(results,
				preflight.CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
				preflight.CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
			)
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Folder to sort (default sort.source)")
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination root (default sort.destination)")
	return cmd
}
