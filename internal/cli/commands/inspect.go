package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemaforge/internal/config"
	"github.com/leapstack-labs/schemaforge/internal/inspect"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Infer schemas from tabular data files",
		Long: `Scan tabular files (CSV, Excel) and infer a column schema for each.

Files come either from the data directory or, when --sources is given,
from a declarative sources config (explicit paths or globs, optional
sheet selection and table-name overrides). Inferred schemas are written
as one <table>.schema.yaml per file plus a combined _all_schemas.yaml.`,
		Example: `  # Scan the data folder
  schemaforge inspect --data-dir ./data

  # Use a sources config
  schemaforge inspect --sources ./sources.yaml --out-dir ./out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			var (
				sources []inspect.Source
				err     error
			)
			if cfg.SourcesFile != "" {
				sources, err = inspect.DiscoverConfig(cfg.SourcesFile)
			} else {
				sources, err = inspect.DiscoverDir(cfg.DataDir)
			}
			if err != nil {
				return err
			}

			results, err := inspect.InspectSources(cmd.Context(), sources, logger)
			if err != nil {
				return err
			}

			if err := inspect.WriteOutputs(results, cfg.OutDir); err != nil {
				return err
			}

			renderInspectSummary(cmd, results)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "YAML written to: %s\n", cfg.OutDir)
			return nil
		},
	}

	return cmd
}

// renderInspectSummary prints one row per inferred table.
func renderInspectSummary(cmd *cobra.Command, results []inspect.Result) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No supported files found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "File", "Columns"})
	for _, result := range results {
		t.AppendRow(table.Row{result.Table, result.Path, len(result.Schema)})
	}
	t.Render()
}
