package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sigview/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage saved ingest runs",
	}
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogFailuresCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))
	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				runs, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					if runs == nil {
						runs = []catalog.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No saved runs")
					return nil
				}
				fmt.Fprintln(out, renderRuns(runs))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit runs as JSON")
	return cmd
}

func renderRuns(runs []catalog.Run) string {
	headers := []string{"ID", "Created", "Root", "Rows", "Files", "Failed", "Duration"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ShortID(),
			humanize.Time(r.CreatedAt),
			r.Root,
			humanize.Comma(int64(r.Rows)),
			humanize.Comma(int64(r.Discovered)),
			humanize.Comma(int64(r.Failed)),
			r.Duration.Round(time.Millisecond).String(),
		}
	}
	return renderTable(headers, rows, aligns)
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "show RUN",
		Short: "Show a saved run and its first rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withCatalog(func(store *catalog.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				tbl, err := store.Load(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run: %s\n", run.ID)
				fmt.Fprintf(out, "Created: %s (%s)\n", run.CreatedAt.Local().Format(time.RFC3339), humanize.Time(run.CreatedAt))
				fmt.Fprintf(out, "Root: %s\n", run.Root)
				fmt.Fprintf(out, "Files: %d discovered, %d parsed, %d failed\n", run.Discovered, run.Succeeded, run.Failed)
				fmt.Fprintf(out, "Rows: %s (%s)\n", humanize.Comma(int64(run.Rows)), run.Duration.Round(time.Millisecond))
				if tbl.NumRows() == 0 {
					return nil
				}

				columns, err := visibleColumns(tbl.Schema(), nil, cfg.Display.Columns)
				if err != nil {
					return err
				}
				if limit == 0 {
					limit = cfg.Display.MaxRows
				}
				rendered, err := renderDataset(tbl, columns, limit)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, rendered)
				fmt.Fprintln(out, rowsSummary(shownRows(limit, tbl.NumRows()), tbl.NumRows()))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Rows to print (default display.max_rows; negative prints all)")
	return cmd
}

func newCatalogFailuresCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "failures RUN",
		Short: "List the files that failed to parse in a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				failures, err := store.Failures(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, failures)
				}
				out := cmd.OutOrStdout()
				if len(failures) == 0 {
					fmt.Fprintln(out, "No failures recorded")
					return nil
				}
				printFailures(out, failures, 0)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit failures as JSON")
	return cmd
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove RUN",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				run, err := store.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed run %s (%s rows)\n", run.ID, humanize.Comma(int64(run.Rows)))
				return nil
			})
		},
	}
}
