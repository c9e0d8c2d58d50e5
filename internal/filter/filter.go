package filter

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/text/cases"

	"sigview/internal/table"
)

// Op is the comparison a compiled predicate performs.
type Op uint8

const (
	// OpEqual keeps rows whose value equals the operand.
	OpEqual Op = iota + 1
	// OpAtLeast keeps rows whose value is greater than or equal to the operand.
	OpAtLeast
	// OpIsTrue keeps rows whose boolean is true.
	OpIsTrue
	// OpIsFalse keeps rows whose boolean is false.
	OpIsFalse
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "=="
	case OpAtLeast:
		return ">="
	case OpIsTrue:
		return "is true"
	case OpIsFalse:
		return "is false"
	default:
		return "?"
	}
}

// Predicate is one compiled column constraint.
type Predicate struct {
	Column string
	Op     Op
	// Operand is the parsed filter text: string, float64, int64, or nil for
	// boolean predicates.
	Operand any

	index int
	match func(table.Value) bool
}

// Matches reports whether v satisfies the predicate.
func (p Predicate) Matches(v table.Value) bool {
	return p.match != nil && p.match(v)
}

// Compile builds predicates for filters against schema, ordered by column
// name. Blank texts are skipped. Texts that do not parse for the column's
// kind are skipped too, and so is a NaN operand, which no value could
// satisfy. A non-blank filter on a column absent from the schema
// is an *EvaluationError.
func Compile(schema *table.Schema, filters map[string]string) ([]Predicate, error) {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var preds []Predicate
	for _, name := range names {
		text := filters[name]
		if strings.TrimSpace(text) == "" {
			continue
		}
		idx, ok := schema.Index(name)
		if !ok {
			return nil, &EvaluationError{Column: name, Reason: "unknown column"}
		}
		pred, ok := compileOne(schema.Field(idx), text)
		if !ok {
			continue
		}
		pred.index = idx
		preds = append(preds, pred)
	}
	return preds, nil
}

func compileOne(field table.Field, text string) (Predicate, bool) {
	p := Predicate{Column: field.Name}
	trimmed := strings.TrimSpace(text)

	switch field.Kind {
	case table.KindString:
		p.Op, p.Operand = OpEqual, text
		p.match = func(v table.Value) bool { return v.Str == text }

	case table.KindFloat64:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(n) {
			return p, false
		}
		p.Op, p.Operand = OpAtLeast, n
		p.match = func(v table.Value) bool { return v.F64 >= n }

	case table.KindInt64:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return p, false
		}
		p.Op, p.Operand = OpAtLeast, n
		p.match = func(v table.Value) bool { return v.I64 >= n }

	case table.KindUint64:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return p, false
		}
		p.Op, p.Operand = OpAtLeast, n
		if n < 0 {
			p.match = func(table.Value) bool { return true }
		} else {
			p.match = func(v table.Value) bool { return v.U64 >= uint64(n) }
		}

	case table.KindBool:
		switch cases.Fold().String(trimmed) {
		case "true":
			p.Op = OpIsTrue
			p.match = func(v table.Value) bool { return v.Bool }
		case "false":
			p.Op = OpIsFalse
			p.match = func(v table.Value) bool { return !v.Bool }
		default:
			return p, false
		}

	default:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(n) {
			return p, false
		}
		p.Op, p.Operand = OpEqual, n
		p.match = func(v table.Value) bool {
			f, ok := v.Float()
			return ok && f == n
		}
	}
	return p, true
}

// Apply returns the rows of t satisfying every filter, in their original
// order. With no effective predicates the input table is returned unchanged.
func Apply(t *table.Table, filters map[string]string) (*table.Table, error) {
	preds, err := Compile(t.Schema(), filters)
	if err != nil {
		return nil, err
	}
	return ApplyPredicates(t, preds)
}

// ApplyPredicates evaluates compiled predicates against t. Each predicate
// yields a row bitmap; the bitmaps are intersected.
func ApplyPredicates(t *table.Table, preds []Predicate) (*table.Table, error) {
	if len(preds) == 0 {
		return t, nil
	}
	if uint64(t.NumRows()) > math.MaxUint32 {
		return nil, &EvaluationError{Reason: "table exceeds addressable row count"}
	}

	var result *roaring.Bitmap
	for _, pred := range preds {
		if pred.match == nil || pred.index < 0 || pred.index >= t.NumColumns() {
			return nil, &EvaluationError{Column: pred.Column, Reason: "predicate not compiled for this schema"}
		}
		if t.Schema().Field(pred.index).Name != pred.Column {
			return nil, &EvaluationError{Column: pred.Column, Reason: "schema changed since compile"}
		}

		bitmap := roaring.New()
		for row := 0; row < t.NumRows(); row++ {
			if result != nil && !result.Contains(uint32(row)) {
				continue
			}
			v, _ := t.Value(row, pred.index)
			if pred.match(v) {
				bitmap.Add(uint32(row))
			}
		}

		if result == nil {
			result = bitmap
		} else {
			result = roaring.And(result, bitmap)
		}
		if result.IsEmpty() {
			break
		}
	}

	indices := make([]int, 0, result.GetCardinality())
	it := result.Iterator()
	for it.HasNext() {
		indices = append(indices, int(it.Next()))
	}
	return t.Take(indices)
}

// Describe renders predicates for logs and CLI output, e.g. "snr_db >= 10".
func Describe(preds []Predicate) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		switch p.Op {
		case OpIsTrue, OpIsFalse:
			parts[i] = p.Column + " " + p.Op.String()
		default:
			parts[i] = p.Column + " " + p.Op.String() + " " + formatOperand(p.Operand)
		}
	}
	return strings.Join(parts, " AND ")
}

func formatOperand(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}
