// Package destlock enforces a single photosort writer per destination tree.
//
// The collision search in the placement engine checks for a free name and then
// moves the file; two processes sorting into the same destination could pick
// the same name. An advisory file lock keyed by the destination path keeps a
// second process out for the duration of a run.
package destlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrBusy reports that another process holds the lock for the destination.
var ErrBusy = errors.New("destination is being sorted by another process")

// Lock guards one destination directory.
type Lock struct {
	dest string
	path string
	fl   *flock.Flock
}

// New prepares a lock for dest whose lock file lives in lockDir. The lock is
// not acquired until Acquire is called.
func New(lockDir, dest string) (*Lock, error) {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(lockDir, LockName(abs))
	return &Lock{dest: abs, path: path, fl: flock.New(path)}, nil
}

// LockName derives a stable lock file name from an absolute destination path.
func LockName(absDest string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(absDest)))
	return hex.EncodeToString(sum[:8]) + ".lock"
}

// Acquire takes the lock without blocking. It returns ErrBusy when another
// process already holds it.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s (lock %s)", ErrBusy, l.dest, l.path)
	}
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil || !l.fl.Locked() {
		return nil
	}
	return l.fl.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
