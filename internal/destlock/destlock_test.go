package destlock

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquireIsExclusive(t *testing.T) {
	lockDir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "sorted")

	first, err := New(lockDir, dest)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	t.Cleanup(func() { _ = first.Release() })

	second, err := New(lockDir, dest)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = second.Acquire()
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestDistinctDestinationsDoNotConflict(t *testing.T) {
	lockDir := t.TempDir()
	a, err := New(lockDir, filepath.Join(t.TempDir(), "a"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(lockDir, filepath.Join(t.TempDir(), "b"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Path() == b.Path() {
		t.Fatalf("expected distinct lock files, both %s", a.Path())
	}
	if err := a.Acquire(); err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	if err := b.Acquire(); err != nil {
		t.Fatalf("unexpected conflict: %v", err)
	}
	defer b.Release()
}

func TestReleaseWithoutAcquire(t *testing.T) {
	l, err := New(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("expected no-op release, got %v", err)
	}
}
