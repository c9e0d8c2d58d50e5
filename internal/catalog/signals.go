package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"sigview/internal/dataset"
	"sigview/internal/table"
)

// signal columns mirror the dataset schema one to one.
var (
	signalColumns = strings.Join(dataset.ColumnNames(), ", ")
	insertSignal  = "INSERT INTO signals (run_id, ordinal, " + signalColumns + ") VALUES (?, ?" +
		strings.Repeat(", ?", dataset.Schema.Len()) + ")"
)

func insertSignals(ctx context.Context, tx *sql.Tx, runID string, tbl *table.Table) error {
	stmt, err := tx.PrepareContext(ctx, insertSignal)
	if err != nil {
		return fmt.Errorf("prepare signal insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, 2+tbl.NumColumns())
	for i := 0; i < tbl.NumRows(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		args[0], args[1] = runID, i
		for j, v := range tbl.Row(i) {
			args[2+j] = encodeValue(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert signal %d: %w", i, err)
		}
	}
	return nil
}

func insertFailures(ctx context.Context, tx *sql.Tx, runID string, failures []dataset.FileFailure) error {
	for i, f := range failures {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ingest_failures (run_id, ordinal, path, kind, message) VALUES (?, ?, ?, ?, ?)",
			runID, i, f.Path, f.Kind, f.Message,
		); err != nil {
			return fmt.Errorf("insert failure %d: %w", i, err)
		}
	}
	return nil
}

// Load reconstructs the dataset table stored for a run, in its original row order.
func (s *Store) Load(ctx context.Context, idOrPrefix string) (*table.Table, error) {
	run, err := s.Get(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+signalColumns+" FROM signals WHERE run_id = ? ORDER BY ordinal", run.ID)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	schema := dataset.Schema
	builder := table.NewBuilder(schema, run.Rows)
	dest := make([]any, schema.Len())
	for i := range dest {
		dest[i] = newScanSlot(schema.Field(i).Kind)
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		row := make([]table.Value, len(dest))
		for i, slot := range dest {
			row[i] = decodeValue(schema.Field(i).Kind, slot)
		}
		if err := builder.Append(row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read signals: %w", err)
	}
	return builder.Build(), nil
}

// Failures returns the per-file ingest failures recorded for a run.
func (s *Store) Failures(ctx context.Context, idOrPrefix string) ([]dataset.FileFailure, error) {
	run, err := s.Get(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, kind, message FROM ingest_failures WHERE run_id = ? ORDER BY ordinal", run.ID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var out []dataset.FileFailure
	for rows.Next() {
		var f dataset.FileFailure
		if err := rows.Scan(&f.Path, &f.Kind, &f.Message); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// encodeValue maps a cell onto a SQLite storage class. Unsigned integers are
// stored bit-for-bit as INTEGER; NaN floats become NULL.
func encodeValue(v table.Value) any {
	switch v.Kind {
	case table.KindString:
		return v.Str
	case table.KindFloat64, table.KindOther:
		if math.IsNaN(v.F64) {
			return nil
		}
		return v.F64
	case table.KindInt64:
		return v.I64
	case table.KindUint64:
		return int64(v.U64)
	case table.KindBool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return nil
	}
}

func newScanSlot(kind table.Kind) any {
	switch kind {
	case table.KindString:
		return new(sql.NullString)
	case table.KindFloat64, table.KindOther:
		return new(sql.NullFloat64)
	default:
		return new(sql.NullInt64)
	}
}

func decodeValue(kind table.Kind, slot any) table.Value {
	switch kind {
	case table.KindString:
		return table.String(slot.(*sql.NullString).String)
	case table.KindFloat64, table.KindOther:
		f := slot.(*sql.NullFloat64)
		n := math.NaN()
		if f.Valid {
			n = f.Float64
		}
		if kind == table.KindOther {
			return table.Other(n)
		}
		return table.Float64(n)
	case table.KindInt64:
		return table.Int64(slot.(*sql.NullInt64).Int64)
	case table.KindUint64:
		return table.Uint64(uint64(slot.(*sql.NullInt64).Int64))
	case table.KindBool:
		return table.Bool(slot.(*sql.NullInt64).Int64 != 0)
	default:
		return table.Zero(kind)
	}
}
