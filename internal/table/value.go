package table

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	// KindString is a UTF-8 string.
	KindString
	// KindFloat64 is a 64-bit float.
	KindFloat64
	// KindInt64 is a signed 64-bit integer.
	KindInt64
	// KindUint64 is an unsigned 64-bit integer.
	KindUint64
	// KindBool is a boolean.
	KindBool
	// KindOther is a numeric value of no specific column type, held as float64.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat64:
		return "float64"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindBool:
		return "bool"
	case KindOther:
		return "other"
	default:
		return "invalid"
	}
}

// Value is a single tagged cell. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Str  string
	F64  float64
	I64  int64
	U64  uint64
	Bool bool
}

// String returns a KindString value.
func String(v string) Value { return Value{Kind: KindString, Str: v} }

// Float64 returns a KindFloat64 value.
func Float64(v float64) Value { return Value{Kind: KindFloat64, F64: v} }

// Int64 returns a KindInt64 value.
func Int64(v int64) Value { return Value{Kind: KindInt64, I64: v} }

// Uint64 returns a KindUint64 value.
func Uint64(v uint64) Value { return Value{Kind: KindUint64, U64: v} }

// Bool returns a KindBool value.
func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Other returns a KindOther value.
func Other(v float64) Value { return Value{Kind: KindOther, F64: v} }

// Zero returns the default value for kind: empty string, 0, or false.
func Zero(kind Kind) Value { return Value{Kind: kind} }

// Equal reports whether two values have the same kind and payload.
// NaN floats compare equal to each other so tables round-trip.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindFloat64, KindOther:
		if math.IsNaN(v.F64) && math.IsNaN(o.F64) {
			return true
		}
		return v.F64 == o.F64
	case KindInt64:
		return v.I64 == o.I64
	case KindUint64:
		return v.U64 == o.U64
	case KindBool:
		return v.Bool == o.Bool
	default:
		return true
	}
}

// Any returns the payload as a plain Go value.
func (v Value) Any() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindFloat64, KindOther:
		return v.F64
	case KindInt64:
		return v.I64
	case KindUint64:
		return v.U64
	case KindBool:
		return v.Bool
	default:
		return nil
	}
}

// Float returns the value as float64 for numeric kinds.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindFloat64, KindOther:
		return v.F64, true
	case KindInt64:
		return float64(v.I64), true
	case KindUint64:
		return float64(v.U64), true
	default:
		return 0, false
	}
}

// Format renders the value for display. Floats whose magnitude is above 1000
// or below 0.01 (but non-zero) use scientific notation with two decimals;
// other floats use three decimals.
func (v Value) Format() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindFloat64, KindOther:
		return formatFloat(v.F64)
	case KindInt64:
		return strconv.FormatInt(v.I64, 10)
	case KindUint64:
		return strconv.FormatUint(v.U64, 10)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs > 1000 || (abs < 0.01 && f != 0) {
		return fmt.Sprintf("%.2e", f)
	}
	return fmt.Sprintf("%.3f", f)
}
