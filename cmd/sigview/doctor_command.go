package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigview/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that configured directories and the catalog are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			configDetail := ctx.configPath
			configLevel := severityPass
			if !ctx.configExists {
				configDetail += " (not found, using defaults)"
				configLevel = severityNote
			}
			fmt.Fprintln(out, sectionTitle("Configuration", colorize))
			for _, line := range renderStatusLines([]statusLine{
				{Label: "Config file", Level: configLevel, Detail: configDetail},
				{Label: "Extensions", Detail: cfg.Ingest.MetaExtension + " / " + cfg.Ingest.DataExtension},
				{Label: "Workers", Detail: fmt.Sprintf("%d", cfg.WorkerCount())},
			}, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out)

			results := preflight.RunAll(cmd.Context(), cfg)
			fmt.Fprintln(out, sectionTitle("Paths", colorize))
			for _, line := range renderStatusLines(preflightStatus(results), colorize) {
				fmt.Fprintln(out, line)
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}
}
