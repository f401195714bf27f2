package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"wadmaps/internal/catalog"
	"wadmaps/internal/config"
	"wadmaps/internal/logging"
	"wadmaps/internal/mapnames"
)

// Runner scans archives into an optional catalog.
type Runner struct {
	store      *catalog.Store
	extractor  *mapnames.Extractor
	logger     *slog.Logger
	lockPath   string
	workers    int
	maxBytes   int64
	extensions []string
	refresh    bool
}

// Option customizes a Runner.
type Option func(*Runner)

// WithRefresh forces re-extraction even when the catalog has the archive.
func WithRefresh(refresh bool) Option {
	return func(r *Runner) { r.refresh = refresh }
}

// WithWorkers overrides the configured worker count. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRunner builds a Runner from cfg. store may be nil, in which case nothing
// is cached and no lock is taken.
func NewRunner(cfg *config.Config, store *catalog.Store, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		store:      store,
		extractor:  mapnames.New(logger),
		logger:     logging.NewComponentLogger(logger, "scan"),
		lockPath:   cfg.ScanLockPath(),
		workers:    cfg.Scan.Workers,
		maxBytes:   cfg.MaxFileBytes(),
		extensions: cfg.Scan.Extensions,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}
	return r
}

// Run scans every archive reachable from inputs. Per-file failures are
// reported on the matching Result; the returned error is reserved for lock
// contention and cancellation. Results keep the order of expansion.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]Result, error) {
	if r.store != nil {
		lock := flock.New(r.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire scan lock: %w", err)
		}
		if !ok {
			return nil, ErrScanInProgress
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				r.logger.Warn("failed to release scan lock", logging.Error(err))
			}
		}()
	}

	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, r.logger)

	targets := expandInputs(inputs, r.extensions)
	logger.Info("scan started",
		logging.Int("files", len(targets)),
		logging.Int("workers", r.workers),
		logging.Bool("refresh", r.refresh),
	)

	results := make([]Result, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, t := range targets {
		if t.err != nil {
			results[i] = Result{Path: t.path, Err: t.err}
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Path: t.path, Err: err}
				return err
			}
			results[i] = r.scanFile(gctx, logger, t.path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	summary := Summarize(results)
	logger.Info("scan finished",
		logging.Int("scanned", summary.Scanned),
		logging.Int("cached", summary.Cached),
		logging.Int("failed", summary.Failed),
		logging.Int("maps", summary.Maps),
	)
	return results, nil
}

func (r *Runner) scanFile(ctx context.Context, logger *slog.Logger, path string) Result {
	res := Result{Path: path}
	logger = logger.With(logging.String(logging.FieldPath, path))

	data, err := ReadLimited(path, r.maxBytes)
	if err != nil {
		res.Err = err
		logging.WarnWithContext(logger, "archive unreadable", "scan_read_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check file permissions or raise scan.max_file_mib"),
			logging.String(logging.FieldImpact, "archive skipped"),
		)
		return res
	}
	sum := sha256.Sum256(data)
	res.SHA256 = hex.EncodeToString(sum[:])
	res.SizeBytes = int64(len(data))
	logger = logger.With(logging.String(logging.FieldSHA256, res.SHA256))

	if r.store != nil && !r.refresh {
		rec, err := r.store.Get(ctx, res.SHA256)
		if err != nil {
			logging.WarnWithContext(logger, "catalog lookup failed", "catalog_read_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "archive re-extracted"),
			)
		} else if rec != nil {
			res.Kind = rec.Kind
			res.LumpCount = rec.LumpCount
			res.Names = rec.Names
			res.Cached = true
			logger.Debug("served from catalog", logging.Int("maps", len(rec.Names)))
			return res
		}
	}

	report, err := r.extractor.Report(data)
	if err != nil {
		res.Err = err
		logging.WarnWithContext(logger, "archive rejected", "scan_format_error",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "file is not a valid IWAD or PWAD"),
			logging.String(logging.FieldImpact, "archive skipped"),
		)
		return res
	}
	res.Kind = string(report.Kind)
	res.LumpCount = report.LumpCount
	res.Names = report.Names

	if r.store != nil {
		rec := catalog.Record{
			SHA256:    res.SHA256,
			Path:      path,
			SizeBytes: res.SizeBytes,
			Kind:      res.Kind,
			LumpCount: res.LumpCount,
			Names:     res.Names,
		}
		if err := r.store.Put(ctx, rec); err != nil {
			res.Err = fmt.Errorf("store result: %w", err)
			logging.ErrorWithContext(logger, "catalog write failed", "catalog_write_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "names resolved but not cached"),
			)
			return res
		}
	}
	logger.Debug("archive scanned", logging.Int("maps", len(res.Names)))
	return res
}

// ReadLimited reads at most limit bytes from path and fails with ErrTooLarge
// when the file holds more.
func ReadLimited(path string, limit int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return data, nil
}
