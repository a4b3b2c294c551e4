package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// RunLogPattern matches per-run log files for retention pruning.
const RunLogPattern = "run-*.log"

// RunLog is a JSON log file dedicated to a single sort run.
type RunLog struct {
	Path    string
	file    *os.File
	handler slog.Handler
}

// OpenRunLog creates <logDir>/run-<runID>.log. Every record written through
// its handler is stamped with the run identifier.
func OpenRunLog(logDir, runID, level string) (*RunLog, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("run log: empty run id")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	path := RunLogPath(logDir, runID)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open run log %s: %w", path, err)
	}
	handler := newJSONHandler(file, levelVar(parseLevel(level)), false).
		WithAttrs([]slog.Attr{slog.String(FieldRunID, runID)})
	return &RunLog{Path: path, file: file, handler: handler}, nil
}

// RunLogPath returns the file a run with runID logs to.
func RunLogPath(logDir, runID string) string {
	return filepath.Join(logDir, "run-"+runID+".log")
}

// Handler returns the handler to tee into the run's logger.
func (r *RunLog) Handler() slog.Handler {
	if r == nil {
		return nil
	}
	return r.handler
}

// Close flushes and closes the underlying file.
func (r *RunLog) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
