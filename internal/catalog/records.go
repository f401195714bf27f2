package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wadmaps/internal/mapnames"
)

var (
	// ErrNotFound is returned by Resolve when no archive matches a reference.
	ErrNotFound = errors.New("archive not found")
	// ErrAmbiguous is returned by Resolve when a hash prefix matches several archives.
	ErrAmbiguous = errors.New("archive reference is ambiguous")
)

// minPrefixLen is the shortest hash prefix Resolve accepts.
const minPrefixLen = 6

// Record is one scanned archive and its resolved map names.
type Record struct {
	SHA256    string         `json:"sha256"`
	Path      string         `json:"path"`
	SizeBytes int64          `json:"size_bytes"`
	Kind      string         `json:"kind"`
	LumpCount int            `json:"lump_count"`
	ScannedAt time.Time      `json:"scanned_at"`
	Names     mapnames.Table `json:"names"`
}

// timeLayout is fixed width so scanned_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const archiveColumns = "sha256, path, size_bytes, kind, lump_count, scanned_at"

// Put stores rec, replacing any previous entry with the same hash.
func (s *Store) Put(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.SHA256) == "" {
		return errors.New("catalog put: sha256 is required")
	}
	if rec.ScannedAt.IsZero() {
		rec.ScannedAt = time.Now()
	}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO archives (`+archiveColumns+`) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(sha256) DO UPDATE SET
    path = excluded.path,
    size_bytes = excluded.size_bytes,
    kind = excluded.kind,
    lump_count = excluded.lump_count,
    scanned_at = excluded.scanned_at`,
			rec.SHA256, rec.Path, rec.SizeBytes, rec.Kind, rec.LumpCount, formatTime(rec.ScannedAt),
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM map_names WHERE sha256 = ?", rec.SHA256); err != nil {
			return err
		}
		for _, slot := range rec.Names.Slots() {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO map_names (sha256, slot, name) VALUES (?, ?, ?)",
				rec.SHA256, slot, rec.Names[slot],
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog put %s: %w", rec.SHA256, err)
	}
	return nil
}

// Get returns the record for sha, or nil when the archive has not been scanned.
func (s *Store) Get(ctx context.Context, sha string) (*Record, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+archiveColumns+` FROM archives WHERE sha256 = ?`, sha)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get archive: %w", err)
	}
	names, err := s.loadNames(ctx, "WHERE sha256 = ?", sha)
	if err != nil {
		return nil, err
	}
	rec.Names = names[rec.SHA256]
	if rec.Names == nil {
		rec.Names = mapnames.Table{}
	}
	return rec, nil
}

// List returns every record, most recently scanned first.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+archiveColumns+` FROM archives ORDER BY scanned_at DESC, sha256`)
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan archive: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate archives: %w", err)
	}
	rows.Close()

	names, err := s.loadNames(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		rec.Names = names[rec.SHA256]
		if rec.Names == nil {
			rec.Names = mapnames.Table{}
		}
	}
	return records, nil
}

// Resolve finds a record by 1-based position in List order or by hash prefix.
func (s *Store) Resolve(ctx context.Context, ref string) (*Record, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, ErrNotFound
	}
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ref) < minPrefixLen {
		n, convErr := strconv.Atoi(ref)
		if convErr != nil || n < 1 || n > len(records) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
		}
		return records[n-1], nil
	}
	var match *Record
	for _, rec := range records {
		if !strings.HasPrefix(rec.SHA256, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
		match = rec
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return match, nil
}

// Remove deletes the record for sha and reports whether it existed.
func (s *Store) Remove(ctx context.Context, sha string) (bool, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM archives WHERE sha256 = ?", sha)
	if err != nil {
		return false, fmt.Errorf("remove archive: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Clear removes every record and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM archives")
	if err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored archives.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM archives").Scan(&n); err != nil {
		return 0, fmt.Errorf("count archives: %w", err)
	}
	return n, nil
}

func (s *Store) loadNames(ctx context.Context, where string, args ...any) (map[string]mapnames.Table, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT sha256, slot, name FROM map_names "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("load map names: %w", err)
	}
	defer rows.Close()

	out := make(map[string]mapnames.Table)
	for rows.Next() {
		var sha, slot, name string
		if err := rows.Scan(&sha, &slot, &name); err != nil {
			return nil, fmt.Errorf("scan map name: %w", err)
		}
		table, ok := out[sha]
		if !ok {
			table = mapnames.Table{}
			out[sha] = table
		}
		table[slot] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate map names: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec       Record
		scannedAt string
	)
	if err := row.Scan(&rec.SHA256, &rec.Path, &rec.SizeBytes, &rec.Kind, &rec.LumpCount, &scannedAt); err != nil {
		return nil, err
	}
	ts, err := time.Parse(timeLayout, scannedAt)
	if err != nil {
		return nil, fmt.Errorf("parse scanned_at %q: %w", scannedAt, err)
	}
	rec.ScannedAt = ts
	return &rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
