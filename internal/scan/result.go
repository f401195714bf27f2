package scan

import (
	"encoding/json"
	"errors"

	"wadmaps/internal/mapnames"
)

var (
	// ErrScanInProgress is returned when another process holds the scan lock.
	ErrScanInProgress = errors.New("another scan is already using this catalog")
	// ErrTooLarge marks files over the configured size ceiling.
	ErrTooLarge = errors.New("file exceeds scan size limit")
)

// Result describes one scanned file. Err is set when the file could not be
// read or is not a valid archive; the remaining fields are then partial.
type Result struct {
	Path      string
	SHA256    string
	SizeBytes int64
	Kind      string
	LumpCount int
	Names     mapnames.Table
	Cached    bool
	Err       error
}

// OK reports whether names were resolved for the file.
func (r Result) OK() bool {
	return r.Err == nil
}

// MarshalJSON renders Err as a string so results can be printed directly.
func (r Result) MarshalJSON() ([]byte, error) {
	type payload struct {
		Path      string         `json:"path"`
		SHA256    string         `json:"sha256,omitempty"`
		SizeBytes int64          `json:"size_bytes"`
		Kind      string         `json:"kind,omitempty"`
		LumpCount int            `json:"lump_count"`
		Names     mapnames.Table `json:"names,omitempty"`
		Cached    bool           `json:"cached"`
		Error     string         `json:"error,omitempty"`
	}
	p := payload{
		Path:      r.Path,
		SHA256:    r.SHA256,
		SizeBytes: r.SizeBytes,
		Kind:      r.Kind,
		LumpCount: r.LumpCount,
		Names:     r.Names,
		Cached:    r.Cached,
	}
	if r.Err != nil {
		p.Error = r.Err.Error()
	}
	return json.Marshal(p)
}

// Summary counts the outcome of a run.
type Summary struct {
	Scanned int `json:"scanned"`
	Cached  int `json:"cached"`
	Failed  int `json:"failed"`
	Maps    int `json:"maps"`
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
			continue
		case r.Cached:
			s.Cached++
		default:
			s.Scanned++
		}
		s.Maps += len(r.Names)
	}
	return s
}
