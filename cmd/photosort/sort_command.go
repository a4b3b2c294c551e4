package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"photosort/internal/config"
	"photosort/internal/destlock"
	"photosort/internal/failure"
	"photosort/internal/history"
	"photosort/internal/i18n"
	"photosort/internal/logging"
	"photosort/internal/preflight"
	"photosort/internal/sorter"
)

type sortOptions struct {
	source    string
	dest      string
	recursive bool
	noHistory bool
	progress  bool
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	var opts sortOptions

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Move media files into <dest>/YYYY-MM folders",
		Long: "Move every .jpg, .jpeg, .png, .mp4, .mov and .aae file from the source folder into\n" +
			"year-month folders under the destination, named after the EXIF capture date or,\n" +
			"when there is none, the file modification time.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("recursive") {
				opts.recursive = cfg.Sort.Recursive
			}
			if strings.TrimSpace(opts.source) == "" {
				opts.source = cfg.Sort.Source
			}
			if strings.TrimSpace(opts.dest) == "" {
				opts.dest = cfg.Sort.Destination
			}
			return runSort(cmd, ctx, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "Folder to sort (default sort.source)")
	cmd.Flags().StringVarP(&opts.dest, "dest", "d", "", "Destination root (default sort.destination)")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "Include subfolders (default sort.recursive)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this run in the history journal")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress bar instead of per-file lines on a terminal")
	return cmd
}

func runSort(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, opts sortOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	tr := ctx.translator()
	colorize := shouldColorize(out)

	if strings.TrimSpace(opts.source) == "" || strings.TrimSpace(opts.dest) == "" {
		fmt.Fprintln(errOut, paint(tr.T(i18n.KeyWarning)+": "+tr.T(i18n.KeySelectFolders), statusWarn, shouldColorize(errOut)))
		return failure.Wrap(failure.ErrConfiguration, "cli", "sort", "source and destination folders are required", nil)
	}

	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	if cfg.Logging.RunLogs {
		runLog, err := logging.OpenRunLog(cfg.Paths.LogDir, runID, cfg.Logging.Level)
		if err != nil {
			logging.WarnWithContext(logger, "run log unavailable", "run_log_failed", logging.Error(err))
		} else {
			defer runLog.Close()
			logger = logging.TeeLogger(logger, runLog.Handler())
			logging.CleanupOldLogs(logger, cfg.Paths.LogDir, logging.RunLogPattern, cfg.Logging.RetentionDays, runLog.Path)
		}
	}

	if minFree := cfg.MinFreeBytes(); minFree > 0 {
		if check := preflight.CheckFreeSpace("Destination free space", opts.dest, minFree); !check.Passed {
			fmt.Fprintln(errOut, renderStatusLine(check.Name, statusWarn, check.Detail, shouldColorize(errOut)))
		}
	}

	printer := newEventPrinter(out, errOut, tr, colorize, opts.progress && colorize)
	sorterOpts := []sorter.Option{
		sorter.WithObserver(printer),
		sorter.WithGuard(func(dest string) (sorter.Guard, error) {
			return destlock.New(cfg.LockDir(), dest)
		}),
	}

	var recorder *history.Recorder
	if cfg.History.Enabled && !opts.noHistory {
		store, err := history.Open(cfg)
		if err != nil {
			logging.WarnWithContext(logger, "history journal unavailable; run will not be recorded", "history_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete the history database if it is corrupt, or pass --no-history"),
			)
		} else {
			defer store.Close()
			recorder = store.Recorder(cmd.Context(), logger)
			sorterOpts = append(sorterOpts, sorter.WithObserver(recorder))
		}
	}

	summary, err := sorter.New(logger, sorterOpts...).Run(cmd.Context(), sorter.Request{
		Source:      opts.source,
		Destination: opts.dest,
		Recursive:   opts.recursive,
		RunID:       runID,
	})
	printer.finish()
	if err != nil && !errors.Is(err, context.Canceled) {
		reportRunError(errOut, tr, err, opts.dest)
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderSummary(tr, summary))
	if summary.Failed > 0 {
		fmt.Fprintln(out, paint(tr.T(i18n.KeyFailuresNote, summary.Failed), statusWarn, colorize))
	}
	if err != nil {
		fmt.Fprintln(errOut, paint(tr.T(i18n.KeyCancelled, summary.Considered-len(summary.Results)), statusWarn, shouldColorize(errOut)))
		return err
	}
	fmt.Fprintln(out, paint(tr.T(i18n.KeySuccess)+": "+tr.T(i18n.KeySortingCompleted), statusOK, colorize))
	logRunEnd(logger, summary, recorder)
	return nil
}

func reportRunError(w io.Writer, tr *i18n.Translator, err error, dest string) {
	colorize := shouldColorize(w)
	switch {
	case errors.Is(err, destlock.ErrBusy):
		fmt.Fprintln(w, paint(tr.T(i18n.KeyWarning)+": "+tr.T(i18n.KeyDestinationBusy, dest), statusWarn, colorize))
	case errors.Is(err, failure.ErrConfiguration):
		fmt.Fprintln(w, paint(tr.T(i18n.KeyWarning)+": "+tr.T(i18n.KeySelectFolders), statusWarn, colorize))
	}
}

func logRunEnd(logger *slog.Logger, summary sorter.Summary, recorder *history.Recorder) {
	if recorder != nil && recorder.Err() != nil {
		logging.WarnWithContext(logger, "run journal incomplete", "history_incomplete",
			logging.String(logging.FieldRunID, summary.RunID),
			logging.Error(recorder.Err()),
		)
	}
}
