package history

import (
	"context"
	"errors"
	"log/slog"

	"photosort/internal/logging"
	"photosort/internal/sorter"
)

// Recorder journals the events of one run. It implements sorter.Observer.
// Write failures are logged and remembered but never interrupt the run.
type Recorder struct {
	ctx       context.Context
	store     *Store
	logger    *slog.Logger
	run       Run
	started   bool
	fallbacks map[string]string
	err       error
}

// Recorder returns an observer that writes a run's events into the store.
func (s *Store) Recorder(ctx context.Context, logger *slog.Logger) *Recorder {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Recorder{
		ctx:       context.WithoutCancel(ctx),
		store:     s,
		logger:    logging.NewComponentLogger(logger, "history"),
		fallbacks: make(map[string]string),
	}
}

// Observe records ev.
func (r *Recorder) Observe(ev sorter.Event) {
	switch ev.Kind {
	case sorter.KindStart:
		r.run = Run{
			ID:          ev.RunID,
			Source:      ev.Path,
			Destination: ev.Target,
			StartedAt:   ev.Time,
			Considered:  ev.Total,
		}
		if err := r.store.insertRun(r.ctx, r.run); err != nil {
			r.fail("record run start", err)
			return
		}
		r.started = true
	case sorter.KindMetadataFallback:
		r.fallbacks[ev.Path] = ev.Detail
	case sorter.KindPlaced, sorter.KindFailed:
		if !r.started {
			return
		}
		p := Placement{
			Seq:             ev.Index,
			Source:          ev.Path,
			Target:          ev.Target,
			Status:          PlacementPlaced,
			MetadataOutcome: r.fallbacks[ev.Path],
			RecordedAt:      ev.Time,
		}
		if ev.Kind == sorter.KindFailed {
			p.Status = PlacementFailed
			p.Reason = ev.Detail
			if ev.Err != nil {
				p.Error = ev.Err.Error()
			}
		}
		delete(r.fallbacks, ev.Path)
		if err := r.store.insertPlacement(r.ctx, r.run.ID, p); err != nil {
			r.fail("record placement", err)
		}
	case sorter.KindComplete:
		if !r.started {
			return
		}
		run := r.run
		run.Status = RunCompleted
		run.FinishedAt = ev.Time
		if ev.Summary != nil {
			run.Recursive = ev.Summary.Recursive
			run.Considered = ev.Summary.Considered
			run.Skipped = ev.Summary.Skipped
			run.Moved = ev.Summary.Moved
			run.Failed = ev.Summary.Failed
			run.Renamed = ev.Summary.Renamed
			run.Fallbacks = ev.Summary.Fallbacks
			run.Bytes = ev.Summary.Bytes
			if ev.Summary.Cancelled {
				run.Status = RunCancelled
			}
		}
		if ev.Err != nil {
			run.Error = ev.Err.Error()
			if errors.Is(ev.Err, context.Canceled) || errors.Is(ev.Err, context.DeadlineExceeded) {
				run.Status = RunCancelled
			}
		}
		if err := r.store.finishRun(r.ctx, run); err != nil {
			r.fail("record run completion", err)
			return
		}
		r.run = run
	}
}

// Err returns the first write failure, if any.
func (r *Recorder) Err() error {
	return r.err
}

func (r *Recorder) fail(operation string, err error) {
	if r.err == nil {
		r.err = err
	}
	logging.WarnWithContext(r.logger, "history write failed", "history_write_failed",
		logging.String("operation", operation),
		logging.String(logging.FieldRunID, r.run.ID),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "the sort continues; check the history database at "+r.store.path),
	)
}
