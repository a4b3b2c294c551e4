package sorter

import (
	"time"

	"photosort/internal/placement"
)

// Summary aggregates the outcome of a run.
type Summary struct {
	RunID       string
	Source      string
	Destination string
	Recursive   bool
	StartedAt   time.Time
	FinishedAt  time.Time

	// Considered counts candidates with a supported extension.
	Considered int
	// Skipped counts files ignored for their extension.
	Skipped   int
	Moved     int
	Failed    int
	Renamed   int
	Fallbacks int
	Bytes     int64
	// Cancelled is set when the run stopped before every candidate was tried.
	Cancelled bool

	Results []placement.Result
}

// Duration returns the wall time of the run.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Failures returns the results of files that were left in place.
func (s Summary) Failures() []placement.Result {
	var out []placement.Result
	for _, r := range s.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func (s *Summary) record(r placement.Result) {
	s.Results = append(s.Results, r)
	if !r.OK() {
		s.Failed++
		return
	}
	s.Moved++
	s.Bytes += r.Bytes
	if r.Renamed() {
		s.Renamed++
	}
}
