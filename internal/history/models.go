package history

import "time"

// RunStatus describes how a run ended.
type RunStatus string

const (
	// RunRunning marks a run that has not reported completion, either
	// because it is still active or because the process died.
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunCancelled RunStatus = "cancelled"
)

// PlacementStatus describes the outcome for one file.
type PlacementStatus string

const (
	PlacementPlaced PlacementStatus = "placed"
	PlacementFailed PlacementStatus = "failed"
)

// Run is one journaled sorting run.
type Run struct {
	ID          string
	Source      string
	Destination string
	Recursive   bool
	Status      RunStatus
	StartedAt   time.Time
	FinishedAt  time.Time
	Considered  int
	Skipped     int
	Moved       int
	Failed      int
	Renamed     int
	Fallbacks   int
	Bytes       int64
	Error       string
}

// Duration returns the run's wall time, or zero for unfinished runs.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Placement is the journaled outcome for one file of a run.
type Placement struct {
	Seq    int
	Source string
	Target string
	Status PlacementStatus
	// MetadataOutcome is set when the capture date fell back to the
	// modification time.
	MetadataOutcome string
	Reason          string
	Error           string
	RecordedAt      time.Time
}
