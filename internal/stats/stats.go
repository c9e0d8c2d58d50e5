// Package stats computes per-column summaries over dataset tables.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"sigview/internal/dataset"
	"sigview/internal/table"
)

// ErrUnknownColumn is returned for a column absent from the table.
var ErrUnknownColumn = errors.New("unknown column")

// ColumnSummary describes one column. Numeric fields are set only when
// Numeric is true; NaN cells are counted in NaN and excluded from them.
type ColumnSummary struct {
	Column   string  `json:"column"`
	Kind     string  `json:"kind"`
	Count    int     `json:"count"`
	Distinct int     `json:"distinct"`
	Numeric  bool    `json:"numeric"`
	NaN      int     `json:"nan,omitempty"`
	Mean     float64 `json:"mean,omitempty"`
	StdDev   float64 `json:"stddev,omitempty"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	True     int     `json:"true,omitempty"`
}

// Headline is the quick archive overview: mean wifi probability, mean SNR,
// and the number of distinct capture center frequencies.
type Headline struct {
	Rows                int     `json:"rows"`
	MeanWifiProb        float64 `json:"mean_ml_wifi_prob"`
	MeanSNRDB           float64 `json:"mean_snr_db"`
	DistinctCenterFreqs int     `json:"distinct_center_freq_hz"`
}

// Summarize returns a summary for each named column, in the given order.
// With no names every column is summarized in schema order.
func Summarize(tbl *table.Table, columns ...string) ([]ColumnSummary, error) {
	if len(columns) == 0 {
		columns = tbl.Schema().Names()
	}
	out := make([]ColumnSummary, 0, len(columns))
	for _, name := range columns {
		s, err := Column(tbl, name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Column summarizes a single column.
func Column(tbl *table.Table, name string) (ColumnSummary, error) {
	idx, ok := tbl.Schema().Index(name)
	if !ok {
		return ColumnSummary{}, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	kind := tbl.Schema().Field(idx).Kind
	values, err := tbl.Column(name)
	if err != nil {
		return ColumnSummary{}, err
	}

	s := ColumnSummary{
		Column:   name,
		Kind:     kind.String(),
		Count:    len(values),
		Distinct: distinct(values),
	}
	switch kind {
	case table.KindBool:
		for _, v := range values {
			if v.Bool {
				s.True++
			}
		}
	case table.KindString:
	default:
		s.Numeric = true
		xs := make([]float64, 0, len(values))
		for _, v := range values {
			f, _ := v.Float()
			if math.IsNaN(f) {
				s.NaN++
				continue
			}
			xs = append(xs, f)
		}
		describe(&s, xs)
	}
	return s, nil
}

func describe(s *ColumnSummary, xs []float64) {
	if len(xs) == 0 {
		return
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)
	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
}

// Distinct returns the number of distinct values in the named column.
func Distinct(tbl *table.Table, name string) (int, error) {
	values, err := tbl.Column(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	return distinct(values), nil
}

type distinctKey struct {
	kind table.Kind
	str  string
	bits uint64
}

func keyOf(v table.Value) distinctKey {
	k := distinctKey{kind: v.Kind}
	switch v.Kind {
	case table.KindString:
		k.str = v.Str
	case table.KindFloat64, table.KindOther:
		f := v.F64
		switch {
		case math.IsNaN(f):
			f = math.NaN()
		case f == 0:
			f = 0 // fold -0 into 0
		}
		k.bits = math.Float64bits(f)
	case table.KindInt64:
		k.bits = uint64(v.I64)
	case table.KindUint64:
		k.bits = v.U64
	case table.KindBool:
		if v.Bool {
			k.bits = 1
		}
	}
	return k
}

func distinct(values []table.Value) int {
	seen := make(map[distinctKey]struct{}, len(values))
	for _, v := range values {
		seen[keyOf(v)] = struct{}{}
	}
	return len(seen)
}

// Overview computes the Headline for a dataset table. Means over an empty
// table are zero.
func Overview(tbl *table.Table) (Headline, error) {
	h := Headline{Rows: tbl.NumRows()}
	wifi, err := Column(tbl, dataset.ColMLWifiProb)
	if err != nil {
		return h, err
	}
	snr, err := Column(tbl, dataset.ColSNRDB)
	if err != nil {
		return h, err
	}
	freqs, err := Distinct(tbl, dataset.ColCenterFreqHz)
	if err != nil {
		return h, err
	}
	h.MeanWifiProb = wifi.Mean
	h.MeanSNRDB = snr.Mean
	h.DistinctCenterFreqs = freqs
	return h, nil
}
