package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"photosort/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect previous sorting runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	return historyCmd
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			columns := []column{
				textCol("ID"), textCol("Started"), textCol("Status"),
				numCol("Moved"), numCol("Failed"), numCol("Size"),
				textCol("Source"), textCol("Destination"),
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					humanize.Time(run.StartedAt),
					string(run.Status),
					strconv.Itoa(run.Moved),
					strconv.Itoa(run.Failed),
					humanize.IBytes(uint64(run.Bytes)),
					run.Source,
					run.Destination,
				})
			}
			fmt.Fprintln(out, renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the files moved by one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			placements, err := store.Placements(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:         %s\n", run.ID)
			fmt.Fprintf(out, "Status:      %s\n", run.Status)
			fmt.Fprintf(out, "Source:      %s\n", run.Source)
			fmt.Fprintf(out, "Destination: %s\n", run.Destination)
			fmt.Fprintf(out, "Recursive:   %s\n", yesNo(run.Recursive))
			fmt.Fprintf(out, "Started:     %s\n", run.StartedAt.Local().Format(time.DateTime))
			if !run.FinishedAt.IsZero() {
				fmt.Fprintf(out, "Duration:    %s\n", run.Duration().Round(time.Millisecond))
			}
			fmt.Fprintf(out, "Moved:       %d (%s)\n", run.Moved, humanize.IBytes(uint64(run.Bytes)))
			fmt.Fprintf(out, "Failed:      %d\n", run.Failed)
			if run.Error != "" {
				fmt.Fprintf(out, "Error:       %s\n", run.Error)
			}
			if len(placements) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			columns := []column{numCol("#"), textCol("Source"), textCol("Result"), textCol("Note")}
			rows := make([][]string, 0, len(placements))
			for _, p := range placements {
				result := p.Target
				note := p.MetadataOutcome
				if note != "" {
					note = "date from modification time (" + note + ")"
				}
				if p.Status == history.PlacementFailed {
					result = "failed: " + p.Reason
					note = p.Error
				}
				rows = append(rows, []string{strconv.Itoa(p.Seq), p.Source, result, note})
			}
			fmt.Fprintln(out, renderTable(columns, rows))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
