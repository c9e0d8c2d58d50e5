package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sigview/internal/catalog"
	"sigview/internal/config"
	"sigview/internal/dataset"
	"sigview/internal/export"
	"sigview/internal/logging"
	"sigview/internal/table"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse PATH",
		Short: "Parse a metadata file or assemble a directory and summarize the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			asm, err := ctx.newAssembler(cmd)
			if err != nil {
				return err
			}
			tbl, report, err := asm.ParsePath(cmd.Context(), path)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, struct {
					Report *dataset.Report   `json:"report"`
					Rows   []map[string]any `json:"rows"`
				}{report, tableRecords(tbl)})
			}

			out := cmd.OutOrStdout()
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				printReport(out, report)
				cfg, _ := ctx.ensureConfig()
				columns, err := visibleColumns(tbl.Schema(), nil, cfg.Display.Columns)
				if err != nil {
					return err
				}
				rendered, err := renderDataset(tbl, columns, cfg.Display.MaxRows)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, rendered)
				fmt.Fprintln(out, rowsSummary(shownRows(cfg.Display.MaxRows, tbl.NumRows()), tbl.NumRows()))
				return nil
			}

			fmt.Fprintf(out, "File: %s\n", path)
			fmt.Fprintf(out, "Rows: %d\n", tbl.NumRows())
			fmt.Fprintf(out, "Columns: %d\n", tbl.NumColumns())
			if tbl.NumRows() > 0 {
				fmt.Fprintln(out, renderRecord(tbl, 0))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report and rows as JSON")
	return cmd
}

type outputFlags struct {
	path        string
	format      string
	compression string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "Write the dataset to this file instead of printing it")
	cmd.Flags().StringVar(&o.format, "format", "", "Output format: csv or arrow (default from config or file name)")
	cmd.Flags().StringVar(&o.compression, "compression", "", "Output compression: none, zstd, or lz4")
}

// options merges config defaults, the output file name, and explicit flags,
// in increasing precedence.
func (o *outputFlags) options(cfg *config.Config, path string) export.Options {
	opts := export.InferOptions(path, export.FromConfig(cfg))
	if strings.TrimSpace(o.format) != "" {
		opts.Format = o.format
	}
	if strings.TrimSpace(o.compression) != "" {
		opts.Compression = o.compression
	}
	return opts
}

func writeExport(ctx *commandContext, cmd *cobra.Command, flags outputFlags, tbl *table.Table) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	path, err := config.ExpandPath(strings.TrimSpace(flags.path))
	if err != nil {
		return err
	}
	opts := flags.options(cfg, path)
	res, err := export.WriteFile(path, tbl, opts)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	logger.Debug("export written",
		logging.String(logging.FieldPath, res.Path),
		logging.String("format", opts.Format),
		logging.String("compression", opts.Compression),
		logging.Uint64("bytes", uint64(res.Bytes)),
		logging.String("sha256", res.SHA256),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s rows to %s (%s, sha256 %s)\n",
		humanize.Comma(int64(tbl.NumRows())), res.Path, humanize.Bytes(uint64(res.Bytes)), res.SHA256[:12])
	return nil
}

func newDatasetCommand(ctx *commandContext) *cobra.Command {
	var (
		output outputFlags
		save   bool
		limit  int
		cols   []string
	)

	cmd := &cobra.Command{
		Use:   "dataset [DIR]",
		Short: "Assemble a directory of SigMF recordings into a dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := ctx.resolveRoot(args)
			if err != nil {
				return err
			}
			asm, err := ctx.newAssembler(cmd)
			if err != nil {
				return err
			}
			tbl, report, err := asm.Assemble(cmd.Context(), root)
			if err != nil {
				if errors.Is(err, dataset.ErrNoValidFiles) && report != nil {
					printReport(cmd.ErrOrStderr(), report)
				}
				return err
			}

			out := cmd.OutOrStdout()
			printReport(out, report)

			if save {
				logger, err := ctx.logger(cmd)
				if err != nil {
					return err
				}
				err = ctx.withCatalog(func(store *catalog.Store) error {
					run, err := store.Save(cmd.Context(), tbl, report)
					if err != nil {
						logging.ErrorWithContext(logger, "run not saved", "catalog_save_failed",
							logging.String(logging.FieldRoot, report.Root),
							logging.String(logging.FieldPath, store.Path()),
							logging.Error(err),
							logging.String(logging.FieldErrorHint, "run sigview doctor to check the catalog"),
						)
						return err
					}
					runCtx := logging.WithRunID(cmd.Context(), run.ID)
					logging.WithContext(runCtx, logger).Info("run saved",
						logging.String(logging.FieldRoot, run.Root),
						logging.Int("rows", run.Rows),
						logging.String(logging.FieldPath, store.Path()),
					)
					fmt.Fprintf(out, "Saved run %s\n", run.ID)
					return nil
				})
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}

			if strings.TrimSpace(output.path) != "" {
				return writeExport(ctx, cmd, output, tbl)
			}
			if save {
				return nil
			}

			columns, err := visibleColumns(tbl.Schema(), splitList(cols), cfg.Display.Columns)
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
		},
	}
	output.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "Store the dataset and ingest report in the catalog")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Rows to print (default display.max_rows; negative prints all)")
	cmd.Flags().StringSliceVar(&cols, "columns", nil, "Columns to print (default display.columns)")
	return cmd
}
