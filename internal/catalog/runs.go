package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sigview/internal/dataset"
	"sigview/internal/table"
)

// Run is one saved dataset and the report of the ingest that produced it.
type Run struct {
	ID         string        `json:"id"`
	Root       string        `json:"root"`
	CreatedAt  time.Time     `json:"created_at"`
	Discovered int           `json:"discovered"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Rows       int           `json:"rows"`
	Duration   time.Duration `json:"duration"`
}

// ShortID returns the first eight characters of the run id.
func (r Run) ShortID() string {
	if len(r.ID) <= 8 {
		return r.ID
	}
	return r.ID[:8]
}

const runColumns = "id, root, created_at, discovered, succeeded, failed, row_count, duration_ms"

// Save stores tbl and report as a new run. The table must carry the dataset
// schema. A nil report stores an empty one with the row count of tbl.
func (s *Store) Save(ctx context.Context, tbl *table.Table, report *dataset.Report) (Run, error) {
	if tbl == nil {
		return Run{}, errors.New("save run: nil table")
	}
	if !tbl.Schema().Equal(dataset.Schema) {
		return Run{}, ErrSchemaMismatch
	}
	if report == nil {
		report = &dataset.Report{Rows: tbl.NumRows()}
	}

	run := Run{
		ID:         uuid.NewString(),
		Root:       report.Root,
		Discovered: report.Discovered,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		Rows:       tbl.NumRows(),
		Duration:   report.Duration,
	}
	created := s.timestamp()

	err := s.withWriteLock(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			run.ID, run.Root, created, run.Discovered, run.Succeeded, run.Failed, run.Rows, run.Duration.Milliseconds(),
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		if err := insertSignals(ctx, tx, run.ID, tbl); err != nil {
			return err
		}
		if err := insertFailures(ctx, tx, run.ID, report.Failures); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
		return nil
	})
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = parseTime(created)
	return run, nil
}

// List returns all runs, newest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+runColumns+" FROM runs ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run whose id equals or uniquely starts with idOrPrefix.
func (s *Store) Get(ctx context.Context, idOrPrefix string) (Run, error) {
	key := strings.TrimSpace(strings.ToLower(idOrPrefix))
	if key == "" {
		return Run{}, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id LIMIT 2",
		key, len(key), key,
	)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		if run.ID == key {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}

	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousRun, idOrPrefix)
	}
}

// Delete removes a run together with its rows and failures.
func (s *Store) Delete(ctx context.Context, idOrPrefix string) (Run, error) {
	run, err := s.Get(ctx, idOrPrefix)
	if err != nil {
		return Run{}, err
	}
	err = s.withWriteLock(ctx, func() error {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", run.ID); err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		return nil
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run        Run
		createdRaw string
		durationMS int64
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Root,
		&createdRaw,
		&run.Discovered,
		&run.Succeeded,
		&run.Failed,
		&run.Rows,
		&durationMS,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.CreatedAt = parseTime(createdRaw)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

func parseTime(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}
