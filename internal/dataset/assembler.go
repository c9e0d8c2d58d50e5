package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"sigview/internal/logging"
	"sigview/internal/sigmf"
	"sigview/internal/table"
)

const progressInterval = 5 * time.Second

// Progress is reported after each processed file.
type Progress struct {
	Processed int
	Failed    int
	Total     int
}

// Options configure an Assembler.
type Options struct {
	Layout sigmf.Layout
	// Workers bounds concurrent parsing. Zero or less means GOMAXPROCS.
	Workers int
	// ProgressEvery logs progress after this many files (and at most every
	// few seconds otherwise). Zero disables progress logging.
	ProgressEvery int
	Logger        *slog.Logger
	// OnProgress, if set, is called from worker goroutines and must be safe
	// for concurrent use.
	OnProgress func(Progress)
}

// Assembler builds datasets from SigMF archives.
type Assembler struct {
	layout        sigmf.Layout
	workers       int
	progressEvery int
	logger        *slog.Logger
	onProgress    func(Progress)
}

// NewAssembler constructs an Assembler.
func NewAssembler(opts Options) *Assembler {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Assembler{
		layout:        opts.Layout,
		workers:       workers,
		progressEvery: opts.ProgressEvery,
		logger:        logging.NewComponentLogger(opts.Logger, "assembler"),
		onProgress:    opts.OnProgress,
	}
}

// Layout returns the file-pair convention the assembler discovers.
func (a *Assembler) Layout() sigmf.Layout { return a.layout }

// ProcessFile parses one metadata document and projects its rows.
func (a *Assembler) ProcessFile(path string) FileOutcome {
	parsed, err := a.layout.ParseFile(path)
	if err != nil {
		return FileOutcome{Path: path, Err: err}
	}
	rows, err := Project(parsed)
	if err != nil {
		return FileOutcome{Path: path, Err: err}
	}
	return FileOutcome{Path: path, Rows: rows}
}

// Assemble discovers every metadata document under root and builds one table
// from all files that parse. Per-file failures are recorded in the report and
// logged; they do not stop the run. When no file yields rows the error is
// ErrNoValidFiles and the report still describes what was attempted.
func (a *Assembler) Assemble(ctx context.Context, root string) (*table.Table, *Report, error) {
	started := time.Now()
	logger := logging.WithContext(ctx, a.logger).With(logging.String(logging.FieldRoot, root))
	report := &Report{Root: root}

	paths, walkFailures, err := Discover(ctx, root, a.layout)
	if err != nil {
		return nil, report, fmt.Errorf("discover %s: %w", root, err)
	}
	for _, f := range walkFailures {
		report.addFailure(f)
		logging.WarnWithContext(logger, "directory entry skipped", "walk_failed",
			logging.String(logging.FieldPath, f.Path),
			logging.String("reason", f.Message),
			logging.String(logging.FieldErrorHint, "check permissions and symbolic links"),
			logging.String(logging.FieldImpact, "files below this path are not included"),
		)
	}
	report.Discovered = len(paths)
	logger.Info("scanning archive", logging.Int("files", len(paths)), logging.Int("workers", a.workers))

	outcomes, err := a.processAll(ctx, logger, paths)
	if err != nil {
		return nil, report, err
	}

	builder := table.NewBuilder(Schema, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failure := failureFor(outcome.Path, outcome.Err)
			report.addFailure(failure)
			logging.WarnWithContext(logger, "metadata file skipped", "file_skipped",
				logging.String(logging.FieldPath, outcome.Path),
				logging.String(logging.FieldErrorKind, failure.Kind),
				logging.Error(outcome.Err),
				logging.String(logging.FieldErrorHint, "inspect or re-export the recording"),
				logging.String(logging.FieldImpact, "recording omitted from dataset"),
			)
			continue
		}
		report.Succeeded++
		for i := range outcome.Rows {
			_ = builder.Append(outcome.Rows[i].Values())
		}
	}
	report.Rows = builder.Len()
	report.Duration = time.Since(started)

	logger.Info("assembly complete",
		logging.Int("processed", report.Discovered),
		logging.Int("failed", report.Failed),
		logging.Bool("partial", report.Failed > 0),
		logging.Int("rows", report.Rows),
		logging.Int("columns", Schema.Len()),
		logging.Duration("elapsed", report.Duration),
	)

	if report.Succeeded == 0 {
		return nil, report, fmt.Errorf("%s: %w", root, ErrNoValidFiles)
	}
	return builder.Build(), report, nil
}

// processAll parses paths concurrently. Each result lands in the slot of its
// path so output order equals discovery order.
func (a *Assembler) processAll(ctx context.Context, logger *slog.Logger, paths []string) ([]FileOutcome, error) {
	outcomes := make([]FileOutcome, len(paths))
	var processed, failed atomic.Int64

	sampler := &rate.Sometimes{First: 1, Every: a.progressEvery, Interval: progressInterval}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome := a.ProcessFile(path)
			outcomes[i] = outcome

			done := processed.Add(1)
			errs := failed.Load()
			if outcome.Err != nil {
				errs = failed.Add(1)
			}
			p := Progress{Processed: int(done), Failed: int(errs), Total: len(paths)}
			if a.progressEvery > 0 {
				sampler.Do(func() {
					logger.Info("assembly progress",
						logging.Int("processed", p.Processed),
						logging.Int("failed", p.Failed),
						logging.Int("total", p.Total),
					)
				})
			}
			if a.onProgress != nil {
				a.onProgress(p)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// FromFiles builds a table from an explicit list of metadata documents, in
// the given order. Unlike Assemble it is strict: the first failure aborts.
func (a *Assembler) FromFiles(ctx context.Context, paths []string) (*table.Table, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	builder := table.NewBuilder(Schema, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome := a.ProcessFile(path)
		if outcome.Err != nil {
			return nil, fmt.Errorf("%s: %w", path, outcome.Err)
		}
		for i := range outcome.Rows {
			_ = builder.Append(outcome.Rows[i].Values())
		}
	}
	return builder.Build(), nil
}

// ParsePath dispatches on path: a directory is assembled, a metadata document
// is parsed strictly on its own, and anything else is rejected with
// ErrUnsupportedExtension.
func (a *Assembler) ParsePath(ctx context.Context, path string) (*table.Table, *Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return a.Assemble(ctx, path)
	}
	if !a.layout.IsMetaFile(path) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(path))
	}

	started := time.Now()
	tbl, err := a.FromFiles(ctx, []string{path})
	if err != nil {
		return nil, nil, err
	}
	return tbl, &Report{
		Root:       path,
		Discovered: 1,
		Succeeded:  1,
		Rows:       tbl.NumRows(),
		Duration:   time.Since(started),
	}, nil
}
