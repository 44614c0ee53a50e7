package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const initConfigTemplate = `# SchemaForge project configuration
data_dir: ./data
out_dir: ./out
`

const initGovernanceTemplate = `version: 1
tables:
  - name: customers
    columns:
      - name: customer_id
        type: integer
        description: Unique customer id
        rules:
          not_null: true
          unique: true
      - name: age
        type: integer
        rules:
          accepted_range:
            min: 0
            max: 120
`

const initSourcesTemplate = `# Declarative input list for schemaforge inspect
# base_dir: ./data
sources:
  - glob: "*.csv"
  # - path: reports.xlsx
  #   format: xlsx
  #   sheet: Summary
  #   table: monthly_report
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new SchemaForge project",
		Long: `Initialize a new SchemaForge project with default structure.

This creates:
  - data/ directory for tabular input files
  - schemaforge.yaml configuration file
  - governance.yaml sample governance document
  - sources.yaml sample sources config`,
		Example: `  # Initialize in current directory
  schemaforge init

  # Initialize in a new directory
  schemaforge init my-project

  # Force overwrite existing files
  schemaforge init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"schemaforge.yaml", initConfigTemplate},
		{"governance.yaml", initGovernanceTemplate},
		{"sources.yaml", initSourcesTemplate},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", f.name)
		}
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Project initialized. Next steps:")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  1. Drop CSV/Excel files into data/")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  2. schemaforge inspect")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  3. schemaforge emit --governance governance.yaml --emit dbt,ge")
	return nil
}
