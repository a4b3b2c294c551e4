package sorter

import (
	"fmt"
	"path/filepath"
	"time"
)

// Kind identifies an event emitted during a run.
type Kind string

const (
	KindStart            Kind = "start"
	KindMetadataFallback Kind = "metadata_fallback"
	KindPlaced           Kind = "placed"
	KindFailed           Kind = "failed"
	KindComplete         Kind = "complete"
)

// Event describes one step of a run.
type Event struct {
	Kind  Kind
	Time  time.Time
	RunID string
	// Path is the source file for per-file events and the source root for
	// start and complete.
	Path string
	// Target is the destination file for placed events and the destination
	// root for start and complete.
	Target string
	// Detail carries the metadata outcome for fallback events and the failure
	// reason for failed events.
	Detail string
	// Index is the 1-based position of the file in the run; Total is the
	// number of candidates.
	Index int
	Total int
	Err   error
	// Summary is set on complete events.
	Summary *Summary
}

// Message renders the event as a human-readable line.
func (e Event) Message() string {
	switch e.Kind {
	case KindStart:
		return fmt.Sprintf("Sorting %d file(s) from %s into %s", e.Total, e.Path, e.Target)
	case KindMetadataFallback:
		return fmt.Sprintf("No usable capture date in %s (%s); using modification time", filepath.Base(e.Path), e.Detail)
	case KindPlaced:
		return fmt.Sprintf("Moved %s -> %s", filepath.Base(e.Path), relativeTarget(e.Target))
	case KindFailed:
		if e.Err != nil {
			return fmt.Sprintf("Failed to move %s: %v", filepath.Base(e.Path), e.Err)
		}
		return fmt.Sprintf("Failed to move %s", filepath.Base(e.Path))
	case KindComplete:
		if e.Summary != nil {
			return fmt.Sprintf("Sorting completed: %d moved, %d failed", e.Summary.Moved, e.Summary.Failed)
		}
		return "Sorting completed"
	default:
		return string(e.Kind)
	}
}

// relativeTarget shortens a target to "YYYY-MM/name".
func relativeTarget(target string) string {
	if target == "" {
		return ""
	}
	return filepath.Join(filepath.Base(filepath.Dir(target)), filepath.Base(target))
}

// Observer receives run events in order on the goroutine running the sort.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) {
	f(e)
}
