package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sigview/internal/dataset"
)

func newColumnsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "columns",
		Short:       "List the dataset columns and their types",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := dataset.Schema.Fields()
			if asJSON {
				type column struct {
					Name string `json:"name"`
					Kind string `json:"kind"`
				}
				out := make([]column, len(fields))
				for i, f := range fields {
					out[i] = column{Name: f.Name, Kind: f.Kind.String()}
				}
				return writeJSON(cmd, out)
			}

			rows := make([][]string, len(fields))
			for i, f := range fields {
				rows[i] = []string{strconv.Itoa(i + 1), f.Name, f.Kind.String()}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Column", "Type"}, rows, []columnAlignment{alignRight}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the schema as JSON")
	return cmd
}
