package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/schemaforge/internal/config"
	"github.com/leapstack-labs/schemaforge/internal/governance"
)

// NewEmitCommand creates the emit command.
func NewEmitCommand() *cobra.Command {
	var governancePath string
	var emitList string

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit dbt and Great Expectations YAML from a governance document",
		Long: `Translate a governance YAML document into data-quality artifacts.

Outputs are selected with --emit:
  dbt    <out>/dbt/schema.yml or sources.yml with column tests attached
  ge     <out>/ge/<table>_suite.yml, one expectation suite per table`,
		Example: `  # Emit both formats
  schemaforge emit --governance governance.yaml --emit dbt,ge

  # Only dbt, to a custom output folder
  schemaforge emit --governance governance.yaml --emit dbt --out-dir ./artifacts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds, err := parseEmitKinds(emitList)
			if err != nil {
				return err
			}

			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			err = governance.Emit(governance.EmitOptions{
				GovernancePath: governancePath,
				OutDir:         cfg.OutDir,
				Kinds:          kinds,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Governance emitted: %s -> %s\n",
				strings.Join(kinds, ", "), cfg.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&governancePath, "governance", "", "Governance YAML document to emit from")
	cmd.Flags().StringVar(&emitList, "emit", "", "Comma-separated outputs to emit (dbt,ge)")
	_ = cmd.MarkFlagRequired("governance")

	return cmd
}

// parseEmitKinds validates the --emit selection. The dispatcher itself
// accepts any subset, so the non-empty and known-kind contract lives here
// at the command surface.
func parseEmitKinds(emitList string) ([]string, error) {
	var kinds []string
	for _, kind := range strings.Split(emitList, ",") {
		kind = strings.TrimSpace(kind)
		if kind == "" {
			continue
		}
		switch kind {
		case governance.KindDBT, governance.KindGE:
			kinds = append(kinds, kind)
		default:
			return nil, fmt.Errorf("unknown emit kind %q (supported: %s, %s)",
				kind, governance.KindDBT, governance.KindGE)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("--emit must specify at least one output (dbt,ge)")
	}
	return kinds, nil
}
