package main

import (
	"encoding/json"
	"math"

	"github.com/spf13/cobra"

	"sigview/internal/table"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// tableRecords converts rows into JSON-friendly maps. Non-finite floats
// become null since JSON cannot represent them.
func tableRecords(tbl *table.Table) []map[string]any {
	names := tbl.Schema().Names()
	out := make([]map[string]any, tbl.NumRows())
	for i := range out {
		rec := make(map[string]any, len(names))
		for j, v := range tbl.Row(i) {
			val := v.Any()
			if f, ok := val.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				val = nil
			}
			rec[names[j]] = val
		}
		out[i] = rec
	}
	return out
}
