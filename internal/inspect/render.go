package inspect

// render.go - schema YAML rendering and output file writing.

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/schemaforge/internal/yamldoc"
)

// CombinedFilename is the aggregate schema document written next to the
// per-table files.
const CombinedFilename = "_all_schemas.yaml"

// RenderSchema renders one table's inferred schema as a standalone
// version-tagged YAML document.
func RenderSchema(table string, schema Schema) (string, error) {
	payload := yamldoc.Mapping()
	yamldoc.Entry(payload, "version", yamldoc.Scalar(1))
	yamldoc.Entry(payload, "tables", yamldoc.Sequence(tableNode(table, schema)))
	return yamldoc.Marshal(payload)
}

// WriteOutputs writes one <table>.schema.yaml per result plus a combined
// document listing every table. Existing files are overwritten.
func WriteOutputs(results []Result, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	combined := yamldoc.Sequence()
	for _, result := range results {
		text, err := RenderSchema(result.Table, result.Schema)
		if err != nil {
			return fmt.Errorf("failed to render schema for %s: %w", result.Table, err)
		}

		path := filepath.Join(outDir, fmt.Sprintf("%s.schema.yaml", result.Table))
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write schema for %s: %w", result.Table, err)
		}

		yamldoc.Append(combined, tableNode(result.Table, result.Schema))
	}

	payload := yamldoc.Mapping()
	yamldoc.Entry(payload, "version", yamldoc.Scalar(1))
	yamldoc.Entry(payload, "tables", combined)

	text, err := yamldoc.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to render combined schema: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, CombinedFilename), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write combined schema: %w", err)
	}

	return nil
}

// tableNode renders one table entry with its typed columns.
func tableNode(table string, schema Schema) *yaml.Node {
	columns := yamldoc.Sequence()
	for _, col := range schema {
		entry := yamldoc.Mapping()
		yamldoc.Entry(entry, "name", yamldoc.Scalar(col.Name))
		yamldoc.Entry(entry, "type", yamldoc.Scalar(col.Type))
		yamldoc.Entry(entry, "description", yamldoc.Scalar(""))
		yamldoc.Append(columns, entry)
	}

	node := yamldoc.Mapping()
	yamldoc.Entry(node, "name", yamldoc.Scalar(table))
	yamldoc.Entry(node, "columns", columns)
	return node
}
