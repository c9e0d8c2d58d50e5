package table

import (
	"fmt"
	"strings"
)

// Field is one named, typed column.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema is an ordered, immutable list of uniquely named fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema validates fields and builds a Schema. Names must be non-empty and
// unique, and every kind must be valid.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("schema field %d: empty name", i)
		}
		if f.Kind == KindInvalid || f.Kind > KindOther {
			return nil, fmt.Errorf("schema field %q: invalid kind %d", name, f.Kind)
		}
		if _, dup := s.index[name]; dup {
			return nil, fmt.Errorf("schema field %q: duplicate name", name)
		}
		s.fields[i] = Field{Name: name, Kind: f.Kind}
		s.index[name] = i
	}
	return s, nil
}

// MustSchema is NewSchema for package-level schemas; it panics on error.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns the i-th field.
func (s *Schema) Field(i int) Field { return s.fields[i] }

// Fields returns a copy of the field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Index returns the position of the named field.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Equal reports whether both schemas list the same fields in the same order.
func (s *Schema) Equal(o *Schema) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i] != o.fields[i] {
			return false
		}
	}
	return true
}
