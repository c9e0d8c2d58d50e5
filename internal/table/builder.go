package table

import "fmt"

// Builder accumulates rows for a Table. It takes ownership of appended rows;
// callers must not modify a row after appending it.
type Builder struct {
	schema *Schema
	rows   [][]Value
}

// NewBuilder returns a Builder for schema with room for capacity rows.
func NewBuilder(schema *Schema, capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{schema: schema, rows: make([][]Value, 0, capacity)}
}

// Append validates row against the schema and adds it.
func (b *Builder) Append(row []Value) error {
	if err := checkRow(b.schema, row); err != nil {
		return fmt.Errorf("row %d: %w", len(b.rows), err)
	}
	b.rows = append(b.rows, row)
	return nil
}

// Len returns the number of rows appended so far.
func (b *Builder) Len() int { return len(b.rows) }

// Build returns the table and resets the builder.
func (b *Builder) Build() *Table {
	t := &Table{schema: b.schema, rows: b.rows}
	b.rows = nil
	return t
}
