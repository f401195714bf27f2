package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"wadmaps/internal/catalog"
	"wadmaps/internal/mapnames"
	"wadmaps/internal/testsupport"
)

func sampleRecord(sha string, scannedAt time.Time) catalog.Record {
	return catalog.Record{
		SHA256:    sha,
		Path:      "/wads/" + sha[:4] + ".wad",
		SizeBytes: 1024,
		Kind:      "PWAD",
		LumpCount: 23,
		ScannedAt: scannedAt,
		Names: mapnames.Table{
			"MAP01": "MAP01: Entryway",
			"MAP02": "MAP02",
		},
	}
}

func TestPutAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	scanned := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := sampleRecord("aaaa1111", scanned)
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "aaaa1111")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored record")
	}
	if got.Path != rec.Path || got.LumpCount != 23 || got.Kind != "PWAD" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.ScannedAt.Equal(scanned) {
		t.Fatalf("scanned_at: got %v want %v", got.ScannedAt, scanned)
	}
	if got.Names["MAP01"] != "MAP01: Entryway" || len(got.Names) != 2 {
		t.Fatalf("unexpected names: %v", got.Names)
	}

	missing, err := store.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil record for unknown hash, got %+v %v", missing, err)
	}
}

func TestPutReplacesNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	rec := sampleRecord("bbbb2222", time.Now())
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rec.Path = "/elsewhere/bbbb.wad"
	rec.Names = mapnames.Table{"E1M1": "E1M1: Hangar"}
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, err := store.Get(ctx, "bbbb2222")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Path != "/elsewhere/bbbb.wad" {
		t.Fatalf("path not replaced: %q", got.Path)
	}
	if len(got.Names) != 1 || got.Names["E1M1"] != "E1M1: Hangar" {
		t.Fatalf("names not replaced: %v", got.Names)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Fatalf("expected one archive, got %d", n)
	}
}

func TestListNewestFirstAndResolve(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Sub-second offsets check that stored timestamps sort as text.
	for i, sha := range []string{"cccc0001aa", "cccc0002bb", "dddd0003cc"} {
		ts := base.Add(time.Duration(i) * 1500 * time.Millisecond)
		if err := store.Put(ctx, sampleRecord(sha, ts)); err != nil {
			t.Fatalf("Put %s: %v", sha, err)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var order []string
	for _, rec := range records {
		order = append(order, rec.SHA256)
	}
	want := []string{"dddd0003cc", "cccc0002bb", "cccc0001aa"}
	if len(order) != len(want) {
		t.Fatalf("unexpected list: %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order: got %v want %v", order, want)
		}
	}
	if records[0].Names["MAP01"] != "MAP01: Entryway" {
		t.Fatalf("list should attach names: %v", records[0].Names)
	}

	cases := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{ref: "1", want: "dddd0003cc"},
		{ref: "3", want: "cccc0001aa"},
		{ref: "4", wantErr: catalog.ErrNotFound},
		{ref: "DDDD00", want: "dddd0003cc"},
		{ref: "cccc0002", want: "cccc0002bb"},
		{ref: "cccc00", wantErr: catalog.ErrAmbiguous},
		{ref: "eeeeee", wantErr: catalog.ErrNotFound},
		{ref: "", wantErr: catalog.ErrNotFound},
	}
	for _, tc := range cases {
		rec, err := store.Resolve(ctx, tc.ref)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Resolve(%q): got err %v want %v", tc.ref, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.ref, err)
		}
		if rec.SHA256 != tc.want {
			t.Fatalf("Resolve(%q): got %s want %s", tc.ref, rec.SHA256, tc.want)
		}
	}
}

func TestRemoveCascadesAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	for _, sha := range []string{"eeee0001", "ffff0002"} {
		if err := store.Put(ctx, sampleRecord(sha, time.Now())); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	removed, err := store.Remove(ctx, "eeee0001")
	if err != nil || !removed {
		t.Fatalf("Remove: removed=%v err=%v", removed, err)
	}
	if removed, _ := store.Remove(ctx, "eeee0001"); removed {
		t.Fatal("second Remove should report nothing removed")
	}

	db, err := sql.Open("sqlite", store.Path())
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	defer db.Close()
	var orphans int
	if err := db.QueryRow("SELECT COUNT(1) FROM map_names WHERE sha256 = 'eeee0001'").Scan(&orphans); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Fatalf("expected cascade delete of map names, found %d", orphans)
	}

	cleared, err := store.Clear(ctx)
	if err != nil || cleared != 1 {
		t.Fatalf("Clear: cleared=%d err=%v", cleared, err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("expected empty catalog, got %d", n)
	}
}

func TestPutRequiresHash(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	if err := store.Put(context.Background(), catalog.Record{Path: "/x.wad"}); err == nil {
		t.Fatal("expected error without sha256")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := catalog.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := catalog.Open(path); !errors.Is(err, catalog.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := catalog.Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
