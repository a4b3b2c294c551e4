package placement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"photosort/internal/failure"
	"photosort/internal/fileutil"
	"photosort/internal/logging"
)

// Result describes the outcome of placing one file.
type Result struct {
	Source string
	Folder string
	// Name is the final file name inside Folder; empty on failure.
	Name string
	// CrossDevice is set when the move fell back to copy and remove.
	CrossDevice bool
	// SourceRetained is set when a cross-device copy succeeded but the source
	// could not be removed afterwards.
	SourceRetained bool
	Bytes          int64
	Reason         Reason
	Err            error
}

// OK reports whether the file reached its target folder.
func (r Result) OK() bool {
	return r.Err == nil && r.Name != ""
}

// Target returns the full destination path of a successful placement.
func (r Result) Target() string {
	if r.Name == "" {
		return ""
	}
	return filepath.Join(r.Folder, r.Name)
}

// Renamed reports whether a collision suffix was applied.
func (r Result) Renamed() bool {
	return r.Name != "" && r.Name != filepath.Base(r.Source)
}

// Engine moves files into year-month folders.
type Engine struct {
	logger      *slog.Logger
	maxAttempts int
	rename      func(oldpath, newpath string) error
}

// Option customizes an Engine.
type Option func(*Engine)

// WithMaxAttempts bounds the collision suffix search.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

// WithRename substitutes the rename primitive (used in tests to simulate
// cross-device moves).
func WithRename(fn func(oldpath, newpath string) error) Option {
	return func(e *Engine) {
		if fn != nil {
			e.rename = fn
		}
	}
}

// NewEngine constructs a placement engine.
func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger:      logging.NewComponentLogger(logger, "placement"),
		maxAttempts: DefaultMaxAttempts,
		rename:      os.Rename,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Place moves source into the year-month folder for date under destRoot.
// The returned error, when non-nil, is tagged failure.ErrPlacement and is
// also recorded in Result.Err.
func (e *Engine) Place(ctx context.Context, source string, date time.Time, destRoot string) (Result, error) {
	logger := logging.WithContext(ctx, e.logger)
	result := Result{Source: source, Folder: TargetFolder(destRoot, date)}

	fail := func(operation string, err error) (Result, error) {
		result.Name = ""
		result.Reason = Classify(err)
		result.Err = failure.Wrap(failure.ErrPlacement, "placement", operation, filepath.Base(source), err)
		logging.WarnWithContext(logger, "placement failed; file left in place", "placement_failed",
			logging.File(source),
			logging.String("folder", result.Folder),
			logging.String("reason", string(result.Reason)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, reasonHint(result.Reason)),
		)
		return result, result.Err
	}

	info, err := os.Lstat(source)
	if err != nil {
		return fail("stat source", err)
	}
	result.Bytes = info.Size()

	if err := os.MkdirAll(result.Folder, 0o755); err != nil {
		return fail("create folder", err)
	}

	name, err := UniqueName(result.Folder, filepath.Base(source), e.maxAttempts)
	if err != nil {
		return fail("allocate name", err)
	}
	result.Name = name
	target := result.Target()

	if err := e.rename(source, target); err != nil {
		if !isCrossDevice(err) {
			return fail("move", err)
		}
		result.CrossDevice = true
		if err := e.copyAcross(source, target); err != nil {
			return fail("copy across devices", err)
		}
		if err := os.Remove(source); err != nil {
			result.SourceRetained = true
			logging.WarnWithContext(logger, "copied file but could not remove source; file now exists twice", "source_retained",
				logging.File(source),
				logging.Target(target),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the source manually after checking the copy"),
			)
		}
	}

	logger.Info(
		"file placed",
		logging.String("original", filepath.Base(source)),
		logging.String("final", name),
		logging.String("folder", result.Folder),
		logging.Bool("cross_device", result.CrossDevice),
	)
	return result, nil
}

// copyAcross copies source into a temporary file next to target and renames
// it into place once verified. target is only ever created by that rename.
func (e *Engine) copyAcross(source, target string) error {
	dir := filepath.Dir(target)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.partial", filepath.Base(target), uuid.NewString()[:8]))
	if _, err := fileutil.CopyVerified(source, tmp); err != nil {
		return err
	}
	taken, err := exists(target)
	if err == nil && taken {
		err = fmt.Errorf("%s appeared during copy: %w", target, os.ErrExist)
	}
	if err == nil {
		err = e.rename(tmp, target)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func reasonHint(reason Reason) string {
	switch reason {
	case ReasonPermission:
		return "check ownership and permissions of the source file and destination folder"
	case ReasonNoSpace:
		return "free up space on the destination volume and run again"
	case ReasonNameTooLong:
		return "shorten the file name or choose a destination with a shorter path"
	case ReasonExhausted:
		return "the target folder holds too many files with this name"
	case ReasonSourceMissing:
		return "the source file disappeared during the run"
	default:
		return "check logs for details"
	}
}

// IsPlacementError reports whether err came from Place.
func IsPlacementError(err error) bool {
	return errors.Is(err, failure.ErrPlacement)
}
