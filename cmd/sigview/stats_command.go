package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sigview/internal/stats"
	"sigview/internal/table"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var (
		src     sourceFlags
		columns []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "stats [DIR]",
		Short: "Summarize a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadDataset(cmd, args, src)
			if err != nil {
				return err
			}
			headline, err := stats.Overview(loaded.Table)
			if err != nil {
				return err
			}

			var summaries []stats.ColumnSummary
			if names := splitList(columns); len(names) > 0 {
				if summaries, err = stats.Summarize(loaded.Table, names...); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd, struct {
					Source   string                `json:"source"`
					Headline stats.Headline        `json:"headline"`
					Columns  []stats.ColumnSummary `json:"columns,omitempty"`
				}{loaded.Label, headline, summaries})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source: %s\n", loaded.Label)
			fmt.Fprintf(out, "Rows: %s\n", humanize.Comma(int64(headline.Rows)))
			fmt.Fprintf(out, "Mean ml_wifi_prob: %s\n", table.Float64(headline.MeanWifiProb).Format())
			fmt.Fprintf(out, "Mean snr_db: %s\n", table.Float64(headline.MeanSNRDB).Format())
			fmt.Fprintf(out, "Distinct center_freq_hz: %d\n", headline.DistinctCenterFreqs)
			if len(summaries) > 0 {
				fmt.Fprintln(out, renderSummaries(summaries))
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringSliceVar(&columns, "column", nil, "Also summarize these columns (repeatable or comma separated)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")
	return cmd
}

func renderSummaries(summaries []stats.ColumnSummary) string {
	headers := []string{"Column", "Kind", "Count", "Distinct", "Mean", "StdDev", "Min", "Max"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		row := []string{s.Column, s.Kind, strconv.Itoa(s.Count), strconv.Itoa(s.Distinct), "", "", "", ""}
		if s.Numeric {
			row[4] = table.Float64(s.Mean).Format()
			row[5] = table.Float64(s.StdDev).Format()
			row[6] = table.Float64(s.Min).Format()
			row[7] = table.Float64(s.Max).Format()
		} else if s.Kind == table.KindBool.String() {
			row[4] = fmt.Sprintf("%d true", s.True)
		}
		rows[i] = row
	}
	return renderTable(headers, rows, aligns)
}
