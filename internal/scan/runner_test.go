package scan_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"wadmaps/internal/config"
	"wadmaps/internal/logging"
	"wadmaps/internal/scan"
	"wadmaps/internal/testsupport"
	"wadmaps/internal/wad"
)

func writeSampleTree(t *testing.T, root string) (first, second string) {
	t.Helper()
	first = testsupport.WriteWAD(t, root, "a.wad", testsupport.NewWAD().
		Map("MAP01").
		Text("MAPINFO", "map MAP01 \"Entryway\"\n"))
	second = testsupport.WriteWAD(t, root, filepath.Join("sub", "b.WAD"), testsupport.NewWAD().
		Map("E1M1").
		Map("E1M2"))
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not an archive"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	return first, second
}

func newRunner(t *testing.T, cfg *config.Config, opts ...scan.Option) *scan.Runner {
	t.Helper()
	if !cfg.Catalog.Enabled {
		return scan.NewRunner(cfg, nil, logging.NewNop(), opts...)
	}
	store := testsupport.MustOpenCatalog(t, cfg)
	return scan.NewRunner(cfg, store, logging.NewNop(), opts...)
}

func TestRunExpandsDirectoriesAndCaches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := t.TempDir()
	first, second := writeSampleTree(t, root)
	store := testsupport.MustOpenCatalog(t, cfg)
	runner := scan.NewRunner(cfg, store, logging.NewNop())
	ctx := context.Background()

	results, err := runner.Run(ctx, []string{root, first})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected two archives after dedupe, got %d: %+v", len(results), results)
	}
	if results[0].Path != first || results[1].Path != second {
		t.Fatalf("unexpected order: %s, %s", results[0].Path, results[1].Path)
	}
	for _, r := range results {
		if !r.OK() || r.Cached {
			t.Fatalf("unexpected first-run result: %+v", r)
		}
		if len(r.SHA256) != 64 {
			t.Fatalf("expected hex sha256, got %q", r.SHA256)
		}
	}
	if got := results[0].Names["MAP01"]; got != "MAP01: Entryway" {
		t.Fatalf("MAP01: got %q", got)
	}
	if got := results[1].Names["E1M2"]; got != "E1M2" {
		t.Fatalf("E1M2: got %q", got)
	}
	if results[1].Kind != string(wad.KindPWAD) {
		t.Fatalf("unexpected kind %q", results[1].Kind)
	}

	again, err := runner.Run(ctx, []string{root})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	for _, r := range again {
		if !r.Cached {
			t.Fatalf("expected cached result on rescan: %+v", r)
		}
	}
	if again[0].Names["MAP01"] != "MAP01: Entryway" {
		t.Fatalf("cached names lost: %v", again[0].Names)
	}

	summary := scan.Summarize(again)
	if summary.Cached != 2 || summary.Maps != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	refreshed, err := scan.NewRunner(cfg, store, logging.NewNop(), scan.WithRefresh(true)).Run(ctx, []string{first})
	if err != nil {
		t.Fatalf("refresh Run: %v", err)
	}
	if refreshed[0].Cached {
		t.Fatal("refresh should bypass the catalog")
	}
}

func TestRunReportsPerFileErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutCatalog(), testsupport.WithMaxFileMiB(1))
	root := t.TempDir()
	good := testsupport.WriteWAD(t, root, "good.wad", testsupport.NewWAD().Map("MAP01"))
	bad := filepath.Join(root, "bad.wad")
	if err := os.WriteFile(bad, []byte("JUNKJUNKJUNKJUNK"), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}
	huge := filepath.Join(root, "huge.wad")
	if err := os.WriteFile(huge, make([]byte, 1<<20+1), 0o644); err != nil {
		t.Fatalf("write huge: %v", err)
	}
	missing := filepath.Join(root, "missing.wad")

	results, err := newRunner(t, cfg, scan.WithWorkers(3)).Run(context.Background(), []string{good, bad, huge, missing})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected four results, got %d", len(results))
	}
	if !results[0].OK() || results[0].Names["MAP01"] != "MAP01" {
		t.Fatalf("good archive: %+v", results[0])
	}
	if !errors.Is(results[1].Err, wad.ErrFormat) {
		t.Fatalf("bad archive: expected format error, got %v", results[1].Err)
	}
	if !errors.Is(results[2].Err, scan.ErrTooLarge) {
		t.Fatalf("huge archive: expected ErrTooLarge, got %v", results[2].Err)
	}
	if !errors.Is(results[3].Err, os.ErrNotExist) {
		t.Fatalf("missing archive: expected not-exist error, got %v", results[3].Err)
	}

	if got := scan.Summarize(results); got.Failed != 3 || got.Scanned != 1 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestRunFailsWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lock := flock.New(cfg.ScanLockPath())
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}
	defer lock.Unlock()

	_, err = newRunner(t, cfg).Run(context.Background(), []string{t.TempDir()})
	if !errors.Is(err, scan.ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutCatalog())
	root := t.TempDir()
	writeSampleTree(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRunner(t, cfg).Run(ctx, []string{root})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResultJSON(t *testing.T) {
	r := scan.Result{Path: "/x.wad", Err: errors.New("wad: bad magic")}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"error":"wad: bad magic"`) {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestMatchesExtension(t *testing.T) {
	exts := []string{".wad", ".pk3"}
	cases := map[string]bool{
		"/a/b.wad":  true,
		"/a/b.WAD":  true,
		"/a/b.pk3":  true,
		"/a/b.txt":  false,
		"/a/wad":    false,
		"/a/b.wad~": false,
	}
	for path, want := range cases {
		if got := scan.MatchesExtension(path, exts); got != want {
			t.Fatalf("MatchesExtension(%q) = %v want %v", path, got, want)
		}
	}
}
