package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	sigtable "sigview/internal/table"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderDataset renders the first limit rows of tbl restricted to columns.
// A limit of zero or less renders every row.
func renderDataset(tbl *sigtable.Table, columns []string, limit int) (string, error) {
	view, err := tbl.Select(columns...)
	if err != nil {
		return "", err
	}
	if limit > 0 {
		view = view.Head(limit)
	}

	headers := view.Schema().Names()
	aligns := make([]columnAlignment, len(headers))
	for i, f := range view.Schema().Fields() {
		if isNumericKind(f.Kind) {
			aligns[i] = alignRight
		}
	}

	rows := make([][]string, view.NumRows())
	for i := range rows {
		values := view.Row(i)
		cells := make([]string, len(values))
		for j, v := range values {
			cells[j] = v.Format()
		}
		rows[i] = cells
	}
	return renderTable(headers, rows, aligns), nil
}

// renderRecord renders a single row vertically as column/value pairs.
func renderRecord(tbl *sigtable.Table, row int) string {
	if row < 0 || row >= tbl.NumRows() {
		return ""
	}
	values := tbl.Row(row)
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{tbl.Schema().Field(i).Name, v.Format()}
	}
	return renderTable([]string{"Column", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}

func isNumericKind(kind sigtable.Kind) bool {
	switch kind {
	case sigtable.KindFloat64, sigtable.KindInt64, sigtable.KindUint64, sigtable.KindOther:
		return true
	default:
		return false
	}
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
