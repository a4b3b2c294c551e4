// Package logging assembles structured slog loggers and formatting helpers used
// across photosort.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so sorting code can tag log lines with the
// run identifier and the file being processed. Per-run JSON log files are
// attached with TeeLogger, and old run logs are pruned by CleanupOldLogs. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
