package sorter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"photosort/internal/dateresolve"
	"photosort/internal/failure"
	"photosort/internal/logging"
	"photosort/internal/media"
	"photosort/internal/placement"
)

// Request carries the parameters of one run.
type Request struct {
	Source      string
	Destination string
	Recursive   bool
	// RunID identifies the run in events and logs; generated when empty.
	RunID string
}

// Resolver produces capture dates.
type Resolver interface {
	Resolve(ctx context.Context, path string) (dateresolve.Date, error)
}

// Placer moves a file into its year-month folder.
type Placer interface {
	Place(ctx context.Context, source string, date time.Time, destRoot string) (placement.Result, error)
}

// Guard protects a destination tree for the duration of a run.
type Guard interface {
	Acquire() error
	Release() error
}

// GuardFactory builds the guard for an absolute destination path.
type GuardFactory func(dest string) (Guard, error)

// Sorter runs sorting passes.
type Sorter struct {
	logger    *slog.Logger
	resolver  Resolver
	placer    Placer
	guard     GuardFactory
	observers []Observer
	now       func() time.Time
}

// Option customizes a Sorter.
type Option func(*Sorter)

// WithObserver registers an event observer. Observers are called in
// registration order.
func WithObserver(o Observer) Option {
	return func(s *Sorter) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithGuard installs a destination guard factory.
func WithGuard(factory GuardFactory) Option {
	return func(s *Sorter) {
		s.guard = factory
	}
}

// WithResolver replaces the date resolver.
func WithResolver(r Resolver) Option {
	return func(s *Sorter) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithPlacer replaces the placement engine.
func WithPlacer(p Placer) Option {
	return func(s *Sorter) {
		if p != nil {
			s.placer = p
		}
	}
}

// New constructs a Sorter backed by the default resolver and engine.
func New(logger *slog.Logger, opts ...Option) *Sorter {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Sorter{
		logger:   logging.NewComponentLogger(logger, "sorter"),
		resolver: dateresolve.NewResolver(logger),
		placer:   placement.NewEngine(logger),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run sorts every supported file under req.Source into req.Destination.
//
// The returned error is non-nil only for configuration problems, destination
// initialization failures, or cancellation of ctx. In the first two cases no
// file has been touched. A cancelled run still reports the files already
// processed in the Summary.
func (s *Sorter) Run(ctx context.Context, req Request) (Summary, error) {
	source, dest, err := validate(req)
	if err != nil {
		return Summary{}, err
	}

	runID := strings.TrimSpace(req.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, s.logger)

	summary := Summary{
		RunID:       runID,
		Source:      source,
		Destination: dest,
		Recursive:   req.Recursive,
		StartedAt:   s.now(),
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return summary, failure.Wrap(failure.ErrDestinationInit, "sorter", "create destination", dest, err)
	}
	if s.guard != nil {
		guard, err := s.guard(dest)
		if err != nil {
			return summary, failure.Wrap(failure.ErrDestinationInit, "sorter", "prepare lock", dest, err)
		}
		if err := guard.Acquire(); err != nil {
			return summary, failure.Wrap(failure.ErrDestinationInit, "sorter", "lock destination", dest, err)
		}
		defer func() {
			if err := guard.Release(); err != nil {
				logging.WarnWithContext(logger, "failed to release destination lock", "lock_release_failed", logging.Error(err))
			}
		}()
	}

	files, skipped, err := enumerate(ctx, logger, source, dest, req.Recursive)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			summary.Cancelled = true
			summary.FinishedAt = s.now()
			final := summary
			s.emit(Event{Kind: KindComplete, RunID: runID, Path: source, Target: dest, Err: ctxErr, Summary: &final})
			return summary, ctxErr
		}
		return summary, failure.Wrap(failure.ErrConfiguration, "sorter", "list source", source, err)
	}
	summary.Considered = len(files)
	summary.Skipped = skipped

	logger.Info(
		"sort started",
		logging.String("source", source),
		logging.String("destination", dest),
		logging.Bool("recursive", req.Recursive),
		logging.Int("candidates", len(files)),
		logging.Int("skipped", skipped),
	)
	s.emit(Event{Kind: KindStart, RunID: runID, Path: source, Target: dest, Total: len(files)})

	var runErr error
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			summary.Cancelled = true
			runErr = err
			logging.WarnWithContext(logger, "sort cancelled", "sort_cancelled",
				logging.Int("processed", i),
				logging.Int("remaining", len(files)-i),
				logging.String(logging.FieldErrorHint, "run again to sort the remaining files"),
			)
			break
		}
		s.process(ctx, &summary, file, dest, i+1, len(files))
	}

	summary.FinishedAt = s.now()
	logger.Info(
		"sort completed",
		logging.Int("moved", summary.Moved),
		logging.Int("failed", summary.Failed),
		logging.Int("renamed", summary.Renamed),
		logging.Int("fallbacks", summary.Fallbacks),
		logging.Int64("bytes", summary.Bytes),
		logging.Duration("duration", summary.Duration()),
	)
	final := summary
	s.emit(Event{Kind: KindComplete, RunID: runID, Path: source, Target: dest, Total: len(files), Err: runErr, Summary: &final})
	return summary, runErr
}

func (s *Sorter) process(ctx context.Context, summary *Summary, file media.File, dest string, index, total int) {
	base := Event{RunID: summary.RunID, Path: file.Path, Index: index, Total: total}

	date, err := s.resolver.Resolve(ctx, file.Path)
	if err != nil {
		result := placement.Result{Source: file.Path, Reason: placement.Classify(err), Err: err}
		summary.record(result)
		s.failed(base, result)
		return
	}
	if date.Metadata.FellBack() {
		summary.Fallbacks++
		ev := base
		ev.Kind = KindMetadataFallback
		ev.Detail = date.Metadata.Outcome.String()
		ev.Err = dateresolve.MetadataError(file.Path, date.Metadata)
		s.emit(ev)
	}

	result, err := s.placer.Place(ctx, file.Path, date.Time, dest)
	if err != nil {
		if result.Err == nil {
			result.Err = err
		}
		if result.Reason == placement.ReasonNone {
			result.Reason = placement.Classify(err)
		}
		result.Source = file.Path
		result.Name = ""
		summary.record(result)
		s.failed(base, result)
		return
	}
	summary.record(result)
	ev := base
	ev.Kind = KindPlaced
	ev.Target = result.Target()
	s.emit(ev)
}

func (s *Sorter) failed(base Event, result placement.Result) {
	ev := base
	ev.Kind = KindFailed
	ev.Detail = string(result.Reason)
	ev.Err = result.Err
	s.emit(ev)
}

func (s *Sorter) emit(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = s.now()
	}
	for _, o := range s.observers {
		o.Observe(ev)
	}
}

// validate checks the run parameters without touching the filesystem beyond
// a stat of the source root.
func validate(req Request) (string, string, error) {
	source := strings.TrimSpace(req.Source)
	dest := strings.TrimSpace(req.Destination)
	var missing []string
	if source == "" {
		missing = append(missing, "source")
	}
	if dest == "" {
		missing = append(missing, "destination")
	}
	if len(missing) > 0 {
		return "", "", failure.Wrap(failure.ErrConfiguration, "sorter", "validate",
			fmt.Sprintf("%s folder not set", strings.Join(missing, " and ")), nil)
	}

	source, err := filepath.Abs(source)
	if err != nil {
		return "", "", failure.Wrap(failure.ErrConfiguration, "sorter", "resolve source", req.Source, err)
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return "", "", failure.Wrap(failure.ErrConfiguration, "sorter", "resolve destination", req.Destination, err)
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", "", failure.Wrap(failure.ErrConfiguration, "sorter", "stat source", source, err)
	}
	if !info.IsDir() {
		return "", "", failure.Wrap(failure.ErrConfiguration, "sorter", "stat source", source, errors.New("not a directory"))
	}
	return source, dest, nil
}
