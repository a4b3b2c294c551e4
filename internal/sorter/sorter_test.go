package sorter_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"photosort/internal/failure"
	"photosort/internal/logging"
	"photosort/internal/placement"
	"photosort/internal/sorter"
	"photosort/internal/testsupport"
)

type recorder struct {
	events []sorter.Event
}

func (r *recorder) Observe(ev sorter.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []sorter.Kind {
	out := make([]sorter.Kind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func newSorter(t *testing.T, opts ...sorter.Option) (*sorter.Sorter, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]sorter.Option{sorter.WithObserver(rec)}, opts...)
	return sorter.New(logging.NewNop(), opts...), rec
}

func TestRunSortsByCaptureDate(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "sorted")

	jan := time.Date(2021, 1, 5, 10, 0, 0, 0, time.Local)
	jul := time.Date(2020, 7, 20, 18, 30, 0, 0, time.Local)
	testsupport.WriteJPEG(t, filepath.Join(src, "a.jpg"), jan, jul)
	testsupport.WriteJPEG(t, filepath.Join(src, "b.JPEG"), jan, jul)
	testsupport.WriteFileAt(t, filepath.Join(src, "c.mov"), []byte("video"), jul)

	s, rec := newSorter(t)
	summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if summary.Moved != 3 || summary.Failed != 0 || summary.Considered != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if got := testsupport.ListNames(t, dest); !slices.Equal(got, []string{"2020-07", "2021-01"}) {
		t.Fatalf("unexpected folders %v", got)
	}
	if got := testsupport.ListNames(t, filepath.Join(dest, "2021-01")); !slices.Equal(got, []string{"a.jpg", "b.JPEG"}) {
		t.Fatalf("unexpected 2021-01 contents %v", got)
	}
	testsupport.RequireExists(t, filepath.Join(dest, "2020-07", "c.mov"))

	want := []sorter.Kind{sorter.KindStart, sorter.KindPlaced, sorter.KindPlaced, sorter.KindPlaced, sorter.KindComplete}
	if !slices.Equal(rec.kinds(), want) {
		t.Fatalf("expected events %v, got %v", want, rec.kinds())
	}
	complete := rec.events[len(rec.events)-1]
	if complete.Summary == nil || complete.Summary.Moved != 3 {
		t.Fatalf("complete event missing summary: %+v", complete)
	}
	for _, ev := range rec.events {
		if ev.RunID != summary.RunID || ev.RunID == "" {
			t.Fatalf("event %s has run id %q, want %q", ev.Kind, ev.RunID, summary.RunID)
		}
	}
}

func TestRunCollisionLaw(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	modified := time.Date(2019, 4, 1, 12, 0, 0, 0, time.Local)

	const n = 5
	for i := 0; i < n; i++ {
		path := filepath.Join(src, fmt.Sprintf("d%d", i), "photo.png")
		testsupport.WriteFileAt(t, path, []byte(fmt.Sprintf("bytes-%d", i)), modified)
	}

	s, _ := newSorter(t)
	summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest, Recursive: true})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Moved != n || summary.Renamed != n-1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	folder := filepath.Join(dest, "2019-04")
	want := []string{"photo.png", "photo_1.png", "photo_2.png", "photo_3.png", "photo_4.png"}
	if got := testsupport.ListNames(t, folder); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	seen := map[string]bool{}
	for _, name := range want {
		seen[string(testsupport.ReadFile(t, filepath.Join(folder, name)))] = true
	}
	for i := 0; i < n; i++ {
		if !seen[fmt.Sprintf("bytes-%d", i)] {
			t.Fatalf("content of source %d missing from destination", i)
		}
	}
}

func TestRunRecursiveVersusFlat(t *testing.T) {
	modified := time.Date(2022, 9, 9, 9, 0, 0, 0, time.Local)
	setup := func(t *testing.T) string {
		src := t.TempDir()
		testsupport.WriteFileAt(t, filepath.Join(src, "a.jpg"), testsupport.JPEGWithoutExif(), modified)
		testsupport.WriteFileAt(t, filepath.Join(src, "sub", "b.jpg"), testsupport.JPEGWithoutExif(), modified)
		return src
	}

	t.Run("flat", func(t *testing.T) {
		src := setup(t)
		dest := t.TempDir()
		s, _ := newSorter(t)
		summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest})
		if err != nil {
			t.Fatal(err)
		}
		if summary.Moved != 1 {
			t.Fatalf("expected 1 moved, got %d", summary.Moved)
		}
		testsupport.RequireExists(t, filepath.Join(dest, "2022-09", "a.jpg"))
		testsupport.RequireExists(t, filepath.Join(src, "sub", "b.jpg"))
	})

	t.Run("recursive", func(t *testing.T) {
		src := setup(t)
		dest := t.TempDir()
		s, _ := newSorter(t)
		summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest, Recursive: true})
		if err != nil {
			t.Fatal(err)
		}
		if summary.Moved != 2 {
			t.Fatalf("expected 2 moved, got %d", summary.Moved)
		}
		testsupport.RequireExists(t, filepath.Join(dest, "2022-09", "a.jpg"))
		testsupport.RequireExists(t, filepath.Join(dest, "2022-09", "b.jpg"))
	})
}

func TestRunLeavesUnsupportedFiles(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(src, "notes.txt"), []byte("keep me"))
	testsupport.WriteFile(t, filepath.Join(src, "IMG.AAE"), []byte("<plist/>"))

	s, rec := newSorter(t)
	summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Moved != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if string(testsupport.ReadFile(t, filepath.Join(src, "notes.txt"))) != "keep me" {
		t.Fatal("notes.txt was modified")
	}
	for _, ev := range rec.events {
		if filepath.Base(ev.Path) == "notes.txt" {
			t.Fatalf("unexpected event for unsupported file: %+v", ev)
		}
	}
}

func TestRunMissingPaths(t *testing.T) {
	src := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("x"))

	cases := []sorter.Request{
		{Source: src, Destination: ""},
		{Source: "", Destination: t.TempDir()},
		{Source: "  ", Destination: "  "},
	}
	for _, req := range cases {
		s, rec := newSorter(t)
		_, err := s.Run(context.Background(), req)
		if !errors.Is(err, failure.ErrConfiguration) {
			t.Fatalf("expected configuration error for %+v, got %v", req, err)
		}
		if len(rec.events) != 0 {
			t.Fatalf("expected no events, got %v", rec.kinds())
		}
	}
	testsupport.RequireExists(t, filepath.Join(src, "a.jpg"))
}

func TestRunSourceNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.jpg")
	testsupport.WriteFile(t, file, []byte("x"))
	dest := filepath.Join(t.TempDir(), "never")

	s, _ := newSorter(t)
	_, err := s.Run(context.Background(), sorter.Request{Source: file, Destination: dest})
	if !errors.Is(err, failure.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	testsupport.RequireMissing(t, dest)
}

func TestRunDestinationInitFailure(t *testing.T) {
	src := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("x"))
	blocker := filepath.Join(t.TempDir(), "file")
	testsupport.WriteFile(t, blocker, nil)

	s, rec := newSorter(t)
	_, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: filepath.Join(blocker, "dest")})
	if !errors.Is(err, failure.ErrDestinationInit) {
		t.Fatalf("expected destination init error, got %v", err)
	}
	if !failure.IsFatal(err) || len(rec.events) != 0 {
		t.Fatalf("unexpected state: err=%v events=%v", err, rec.kinds())
	}
	testsupport.RequireExists(t, filepath.Join(src, "a.jpg"))
}

type fakeGuard struct {
	acquireErr error
	acquired   int
	released   int
}

func (g *fakeGuard) Acquire() error {
	g.acquired++
	return g.acquireErr
}

func (g *fakeGuard) Release() error {
	g.released++
	return nil
}

func TestRunGuard(t *testing.T) {
	newSource := func(t *testing.T) string {
		t.Helper()
		src := t.TempDir()
		testsupport.WriteFile(t, filepath.Join(src, "a.jpg"), []byte("x"))
		return src
	}

	t.Run("held for run", func(t *testing.T) {
		src := newSource(t)
		guard := &fakeGuard{}
		var guardedDest string
		s, _ := newSorter(t, sorter.WithGuard(func(dest string) (sorter.Guard, error) {
			guardedDest = dest
			return guard, nil
		}))
		dest := t.TempDir()
		if _, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest}); err != nil {
			t.Fatal(err)
		}
		if guard.acquired != 1 || guard.released != 1 {
			t.Fatalf("unexpected guard calls %+v", guard)
		}
		if guardedDest != dest {
			t.Fatalf("guard built for %q, want %q", guardedDest, dest)
		}
	})

	t.Run("busy", func(t *testing.T) {
		src := newSource(t)
		guard := &fakeGuard{acquireErr: errors.New("busy")}
		s, rec := newSorter(t, sorter.WithGuard(func(string) (sorter.Guard, error) { return guard, nil }))
		_, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: t.TempDir()})
		if !errors.Is(err, failure.ErrDestinationInit) {
			t.Fatalf("expected destination init error, got %v", err)
		}
		if len(rec.events) != 0 {
			t.Fatalf("expected no events, got %v", rec.kinds())
		}
		testsupport.RequireExists(t, filepath.Join(src, "a.jpg"))
	})
}

type flakyPlacer struct {
	inner  sorter.Placer
	failOn string
	seen   []string
}

func (p *flakyPlacer) Place(ctx context.Context, source string, date time.Time, destRoot string) (placement.Result, error) {
	p.seen = append(p.seen, filepath.Base(source))
	if filepath.Base(source) == p.failOn {
		err := failure.Wrap(failure.ErrPlacement, "test", "move", source, os.ErrPermission)
		return placement.Result{Source: source, Reason: placement.ReasonPermission, Err: err}, err
	}
	return p.inner.Place(ctx, source, date, destRoot)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	for _, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		testsupport.WriteFile(t, filepath.Join(src, name), []byte(name))
	}

	placer := &flakyPlacer{inner: placement.NewEngine(nil), failOn: "b.mp4"}
	s, rec := newSorter(t, sorter.WithPlacer(placer))
	summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest})
	if err != nil {
		t.Fatalf("per-file failure escaped: %v", err)
	}
	if !slices.Equal(placer.seen, []string{"a.mp4", "b.mp4", "c.mp4"}) {
		t.Fatalf("unexpected processing order %v", placer.seen)
	}
	if summary.Moved != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	failures := summary.Failures()
	if len(failures) != 1 || failures[0].Reason != placement.ReasonPermission {
		t.Fatalf("unexpected failures %+v", failures)
	}
	testsupport.RequireExists(t, filepath.Join(src, "b.mp4"))

	want := []sorter.Kind{sorter.KindStart, sorter.KindPlaced, sorter.KindFailed, sorter.KindPlaced, sorter.KindComplete}
	if !slices.Equal(rec.kinds(), want) {
		t.Fatalf("expected events %v, got %v", want, rec.kinds())
	}
	if rec.events[2].Detail != string(placement.ReasonPermission) {
		t.Fatalf("failed event detail %q", rec.events[2].Detail)
	}
}

func TestRunReportsMetadataFallback(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(src, "plain.jpg"), testsupport.JPEGWithoutExif())
	testsupport.WriteFile(t, filepath.Join(src, "clip.mp4"), []byte("mp4"))

	s, rec := newSorter(t)
	summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Fallbacks != 1 {
		t.Fatalf("expected one fallback, got %d", summary.Fallbacks)
	}
	var fallback *sorter.Event
	for i := range rec.events {
		if rec.events[i].Kind == sorter.KindMetadataFallback {
			fallback = &rec.events[i]
		}
	}
	if fallback == nil || filepath.Base(fallback.Path) != "plain.jpg" || fallback.Detail != "absent" {
		t.Fatalf("unexpected fallback event %+v", fallback)
	}
	if !errors.Is(fallback.Err, failure.ErrMetadataRead) {
		t.Fatalf("expected metadata marker, got %v", fallback.Err)
	}
}

func TestRunSkipsDestinationInsideSource(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(src, "sorted")
	modified := time.Date(2021, 5, 5, 5, 0, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(src, "new.jpg"), []byte("new"), modified)
	testsupport.WriteFileAt(t, filepath.Join(dest, "2010-01", "old.jpg"), []byte("old"), modified)

	s, _ := newSorter(t)
	summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest, Recursive: true})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Considered != 1 || summary.Moved != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	testsupport.RequireExists(t, filepath.Join(dest, "2010-01", "old.jpg"))
	testsupport.RequireExists(t, filepath.Join(dest, "2021-05", "new.jpg"))
}

func TestRunWalksWholeTreeWhenDestinationIsAncestor(t *testing.T) {
	modified := time.Date(2021, 5, 5, 5, 0, 0, 0, time.Local)
	for _, tc := range []struct {
		name string
		dest func(root string) string
	}{
		{"parent", func(root string) string { return filepath.Dir(root) }},
		{"same folder", func(root string) string { return root }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "inbox")
			testsupport.WriteFileAt(t, filepath.Join(src, "a.mp4"), []byte("a"), modified)
			testsupport.WriteFileAt(t, filepath.Join(src, "sub", "b.mp4"), []byte("b"), modified)
			dest := tc.dest(src)

			s, _ := newSorter(t)
			summary, err := s.Run(context.Background(), sorter.Request{Source: src, Destination: dest, Recursive: true})
			if err != nil {
				t.Fatal(err)
			}
			if summary.Considered != 2 || summary.Moved != 2 {
				t.Fatalf("unexpected summary %+v", summary)
			}
			testsupport.RequireExists(t, filepath.Join(dest, "2021-05", "a.mp4"))
			testsupport.RequireExists(t, filepath.Join(dest, "2021-05", "b.mp4"))
			testsupport.RequireMissing(t, filepath.Join(src, "sub", "b.mp4"))
		})
	}
}

func TestRunCancelled(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		testsupport.WriteFile(t, filepath.Join(src, name), []byte(name))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{}
	stopAfterFirst := sorter.ObserverFunc(func(ev sorter.Event) {
		if ev.Kind == sorter.KindPlaced {
			cancel()
		}
	})
	s := sorter.New(nil, sorter.WithObserver(rec), sorter.WithObserver(stopAfterFirst))

	summary, err := s.Run(ctx, sorter.Request{Source: src, Destination: dest})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !summary.Cancelled || summary.Moved != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if last := rec.events[len(rec.events)-1]; last.Kind != sorter.KindComplete {
		t.Fatalf("expected complete event last, got %s", last.Kind)
	}
	testsupport.RequireExists(t, filepath.Join(src, "b.jpg"))
	testsupport.RequireExists(t, filepath.Join(src, "c.jpg"))
}

func TestRunCancelledDuringEnumeration(t *testing.T) {
	src := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(src, "sub", "a.mp4"), []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, rec := newSorter(t)
	summary, err := s.Run(ctx, sorter.Request{Source: src, Destination: t.TempDir(), Recursive: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !slices.Equal(rec.kinds(), []sorter.Kind{sorter.KindComplete}) {
		t.Fatalf("expected only a complete event, got %v", rec.kinds())
	}
	last := rec.events[0]
	if !errors.Is(last.Err, context.Canceled) || last.Summary == nil || !last.Summary.Cancelled {
		t.Fatalf("unexpected complete event %+v", last)
	}
	if !summary.Cancelled || summary.Moved != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	testsupport.RequireExists(t, filepath.Join(src, "sub", "a.mp4"))
}

func TestEventMessages(t *testing.T) {
	cases := []struct {
		ev   sorter.Event
		want string
	}{
		{sorter.Event{Kind: sorter.KindStart, Path: "/src", Target: "/dst", Total: 2}, "Sorting 2 file(s) from /src into /dst"},
		{sorter.Event{Kind: sorter.KindPlaced, Path: "/src/a.jpg", Target: "/dst/2021-01/a_1.jpg"}, "Moved a.jpg -> 2021-01/a_1.jpg"},
		{sorter.Event{Kind: sorter.KindMetadataFallback, Path: "/src/a.jpg", Detail: "absent"}, "No usable capture date in a.jpg (absent); using modification time"},
		{sorter.Event{Kind: sorter.KindComplete, Summary: &sorter.Summary{Moved: 3, Failed: 1}}, "Sorting completed: 3 moved, 1 failed"},
	}
	for _, tc := range cases {
		if got := tc.ev.Message(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.ev.Kind, got, tc.want)
		}
	}
}
