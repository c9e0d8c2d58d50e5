package table

import (
	"errors"
	"fmt"
)

// ErrSchemaMismatch indicates rows or tables that do not fit a schema.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Table is an immutable sequence of rows sharing one Schema.
type Table struct {
	schema *Schema
	rows   [][]Value
}

// New builds a table from rows, checking that every row has one value per
// field and that each value's kind matches its field. The rows slice is copied;
// callers may reuse it afterwards.
func New(schema *Schema, rows [][]Value) (*Table, error) {
	if schema == nil {
		return nil, errors.New("table: nil schema")
	}
	copied := make([][]Value, len(rows))
	for i, row := range rows {
		if err := checkRow(schema, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		r := make([]Value, len(row))
		copy(r, row)
		copied[i] = r
	}
	return &Table{schema: schema, rows: copied}, nil
}

// Empty returns a table with no rows.
func Empty(schema *Schema) *Table {
	return &Table{schema: schema}
}

func checkRow(schema *Schema, row []Value) error {
	if len(row) != schema.Len() {
		return fmt.Errorf("%w: got %d values, want %d", ErrSchemaMismatch, len(row), schema.Len())
	}
	for i, v := range row {
		f := schema.Field(i)
		if v.Kind != f.Kind {
			return fmt.Errorf("%w: column %q holds %s, want %s", ErrSchemaMismatch, f.Name, v.Kind, f.Kind)
		}
	}
	return nil
}

// Schema returns the table schema.
func (t *Table) Schema() *Schema { return t.schema }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return t.schema.Len() }

// Row returns a copy of the i-th row.
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Value returns the cell at (row, col). It reports false when either index is
// out of range.
func (t *Table) Value(row, col int) (Value, bool) {
	if row < 0 || row >= len(t.rows) {
		return Value{}, false
	}
	r := t.rows[row]
	if col < 0 || col >= len(r) {
		return Value{}, false
	}
	return r[col], true
}

// Column returns the values of the named column in row order.
func (t *Table) Column(name string) ([]Value, error) {
	idx, ok := t.schema.Index(name)
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[idx]
	}
	return out, nil
}

// Take returns a new table holding the rows at indices, in the given order.
func (t *Table) Take(indices []int) (*Table, error) {
	rows := make([][]Value, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(t.rows) {
			return nil, fmt.Errorf("take: row index %d out of range [0,%d)", idx, len(t.rows))
		}
		rows[i] = t.rows[idx]
	}
	return &Table{schema: t.schema, rows: rows}, nil
}

// Head returns the first n rows (or all rows when n exceeds the row count).
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.rows) {
		return t
	}
	return &Table{schema: t.schema, rows: t.rows[:n:n]}
}

// Select projects the table onto the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	positions := make([]int, len(names))
	fields := make([]Field, len(names))
	for i, name := range names {
		idx, ok := t.schema.Index(name)
		if !ok {
			return nil, fmt.Errorf("select: unknown column %q", name)
		}
		positions[i] = idx
		fields[i] = t.schema.Field(idx)
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	rows := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		projected := make([]Value, len(positions))
		for j, idx := range positions {
			projected[j] = r[idx]
		}
		rows[i] = projected
	}
	return &Table{schema: schema, rows: rows}, nil
}

// Equal reports whether both tables have equal schemas and equal rows in the
// same order.
func (t *Table) Equal(o *Table) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || !t.schema.Equal(o.schema) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if !t.rows[i][j].Equal(o.rows[i][j]) {
				return false
			}
		}
	}
	return true
}

// Concat appends the rows of tables in order. All tables must share an equal
// schema.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, errors.New("concat: no tables")
	}
	schema := tables[0].schema
	total := 0
	for i, tbl := range tables {
		if !schema.Equal(tbl.schema) {
			return nil, fmt.Errorf("concat: table %d: %w", i, ErrSchemaMismatch)
		}
		total += len(tbl.rows)
	}
	rows := make([][]Value, 0, total)
	for _, tbl := range tables {
		rows = append(rows, tbl.rows...)
	}
	return &Table{schema: schema, rows: rows}, nil
}
