package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sigview/internal/filter"
	"sigview/internal/logging"
)

// parseWhere turns repeated col=text flags into a filter map. A later
// occurrence of a column replaces an earlier one.
func parseWhere(clauses []string) (map[string]string, error) {
	filters := make(map[string]string, len(clauses))
	for _, clause := range clauses {
		name, text, ok := strings.Cut(clause, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --where %q: expected column=value", clause)
		}
		filters[name] = text
	}
	return filters, nil
}

func matchRatio(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var (
		src    sourceFlags
		output outputFlags
		where  []string
		cols   []string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "filter [DIR]",
		Short: "Filter a dataset by per-column constraints",
		Long: `Filter a dataset by per-column constraints.

Each --where col=value applies the column's rule: text columns match exactly,
numeric columns keep rows at or above the value, and boolean columns keep rows
equal to true or false. Values that do not parse for the column are ignored.
All constraints must hold.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			filters, err := parseWhere(where)
			if err != nil {
				return err
			}
			loaded, err := ctx.loadDataset(cmd, args, src)
			if err != nil {
				return err
			}
			tbl := loaded.Table

			preds, err := filter.Compile(tbl.Schema(), filters)
			if err != nil {
				return err
			}
			matched, err := filter.ApplyPredicates(tbl, preds)
			if err != nil {
				return err
			}

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			logger.Debug("filter applied",
				logging.String("source", loaded.Label),
				logging.String("predicates", filter.Describe(preds)),
				logging.Int("rows_in", tbl.NumRows()),
				logging.Int("rows_out", matched.NumRows()),
				logging.Float64("match_ratio", matchRatio(matched.NumRows(), tbl.NumRows())),
			)

			if strings.TrimSpace(output.path) != "" {
				return writeExport(ctx, cmd, output, matched)
			}

			columns, err := visibleColumns(matched.Schema(), splitList(cols), cfg.Display.Columns)
			if err != nil {
				return err
			}
			if limit == 0 {
				limit = cfg.Display.MaxRows
			}

			if asJSON {
				view, err := matched.Select(columns...)
				if err != nil {
					return err
				}
				if limit > 0 {
					view = view.Head(limit)
				}
				return writeJSON(cmd, tableRecords(view))
			}

			out := cmd.OutOrStdout()
			if len(preds) > 0 {
				fmt.Fprintf(out, "Where: %s\n", filter.Describe(preds))
			}
			fmt.Fprintf(out, "Matched %d of %d rows from %s\n", matched.NumRows(), tbl.NumRows(), loaded.Label)
			if matched.NumRows() == 0 {
				return nil
			}
			rendered, err := renderDataset(matched, columns, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rendered)
			fmt.Fprintln(out, rowsSummary(shownRows(limit, matched.NumRows()), matched.NumRows()))
			return nil
		},
	}
	src.register(cmd)
	output.register(cmd)
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "Constraint as column=value (repeatable)")
	cmd.Flags().StringSliceVar(&cols, "columns", nil, "Columns to print (default display.columns)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Rows to print (default display.max_rows; negative prints all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit matching rows as JSON")
	return cmd
}
