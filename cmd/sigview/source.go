package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sigview/internal/catalog"
	"sigview/internal/config"
	"sigview/internal/dataset"
	"sigview/internal/export"
	"sigview/internal/table"
)

// sourceFlags select where a command reads its dataset from. At most one of
// run and input may be set; otherwise a directory is assembled.
type sourceFlags struct {
	run   string
	input string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.run, "run", "", "Read a saved catalog run (id or unique prefix) instead of assembling")
	cmd.Flags().StringVar(&s.input, "input", "", "Read an exported CSV or Arrow file instead of assembling")
}

// loadedDataset is a table plus where it came from. Report is nil unless the
// table was freshly assembled.
type loadedDataset struct {
	Table  *table.Table
	Report *dataset.Report
	Label  string
}

func (c *commandContext) loadDataset(cmd *cobra.Command, args []string, src sourceFlags) (*loadedDataset, error) {
	run := strings.TrimSpace(src.run)
	input := strings.TrimSpace(src.input)
	if run != "" && input != "" {
		return nil, errors.New("--run and --input are mutually exclusive")
	}
	if (run != "" || input != "") && len(args) > 0 {
		return nil, errors.New("a directory argument cannot be combined with --run or --input")
	}

	switch {
	case run != "":
		var loaded *loadedDataset
		err := c.withCatalog(func(store *catalog.Store) error {
			meta, err := store.Get(cmd.Context(), run)
			if err != nil {
				return err
			}
			tbl, err := store.Load(cmd.Context(), meta.ID)
			if err != nil {
				return err
			}
			loaded = &loadedDataset{Table: tbl, Label: "run " + meta.ShortID()}
			return nil
		})
		return loaded, err

	case input != "":
		path, err := config.ExpandPath(input)
		if err != nil {
			return nil, err
		}
		if opts := export.InferOptions(path, export.Options{}); opts.Format == "" {
			return nil, fmt.Errorf("--input %s: expected a .csv or .arrow export (optionally .zst or .lz4)", input)
		}
		tbl, err := export.ReadFile(path, dataset.Schema)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", input, err)
		}
		return &loadedDataset{Table: tbl, Label: path}, nil

	default:
		root, err := c.resolveRoot(args)
		if err != nil {
			return nil, err
		}
		asm, err := c.newAssembler(cmd)
		if err != nil {
			return nil, err
		}
		tbl, report, err := asm.Assemble(cmd.Context(), root)
		if err != nil {
			return nil, err
		}
		return &loadedDataset{Table: tbl, Report: report, Label: root}, nil
	}
}

// resolveRoot returns the directory argument or the configured archive.
func (c *commandContext) resolveRoot(args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return config.ExpandPath(strings.TrimSpace(args[0]))
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Paths.ArchiveDir == "" {
		return "", errors.New("no directory given and paths.archive_dir is not configured")
	}
	return cfg.Paths.ArchiveDir, nil
}

// visibleColumns picks the columns to display: explicit names win, then the
// configured defaults, then every column. Unknown names are an error.
func visibleColumns(schema *table.Schema, explicit, configured []string) ([]string, error) {
	names := explicit
	if len(names) == 0 {
		names = configured
	}
	if len(names) == 0 {
		return schema.Names(), nil
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := schema.Index(name); !ok {
			return nil, fmt.Errorf("unknown column %q (see `sigview columns`)", name)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return schema.Names(), nil
	}
	return out, nil
}
