package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"wadmaps/internal/logging"
)

func TestWatcherDebouncesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	batches := make(chan []string, 4)
	w, err := New(dir, []string{".WAD"}, 50*time.Millisecond, func(_ context.Context, paths []string) {
		batches <- paths
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("Run exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	target := filepath.Join(dir, "new.wad")
	for i := range 3 {
		if err := os.WriteFile(target, []byte{byte(i)}, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	select {
	case paths := <-batches:
		if len(paths) != 1 || paths[0] != target {
			t.Fatalf("unexpected batch: %v", paths)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New(t.TempDir(), nil, time.Second, nil, nil); err == nil {
		t.Fatal("expected error without handler")
	}
	noop := func(context.Context, []string) {}
	if _, err := New(t.TempDir(), nil, 0, noop, nil); err == nil {
		t.Fatal("expected error for zero debounce")
	}
}

func TestRunFailsForMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "absent"), []string{".wad"}, time.Second, func(context.Context, []string) {}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRelevant(t *testing.T) {
	w := &Watcher{extensions: []string{".wad"}}
	cases := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/d/a.wad", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/d/a.WAD", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/d/a.wad", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "/d/a.wad", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/d/a.txt", Op: fsnotify.Create}, false},
	}
	for _, tc := range cases {
		if got := w.relevant(tc.event); got != tc.want {
			t.Fatalf("relevant(%v) = %v want %v", tc.event, got, tc.want)
		}
	}
}
