// Package history keeps a SQLite journal of sorting runs and the placement of
// every file they touched.
//
// The journal is written by a Recorder that observes a run's event stream and
// is read back by the CLI's history commands. It is informational only:
// nothing in photosort replays or undoes a run from it.
package history
