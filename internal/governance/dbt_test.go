package governance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// decodeYAML round-trips emitted text through the standard parser.
func decodeYAML(t *testing.T, text string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(text), &doc))
	return doc
}

func TestToDBT_MultiTable(t *testing.T) {
	doc, err := Parse([]byte(`
tables:
  - name: customers
    columns:
      - name: customer_id
        description: Unique customer id
        rules:
          not_null: true
          unique: true
      - name: age
        rules:
          accepted_range:
            min: 0
            max: 120
      - name: notes
`), "governance.yaml")
	require.NoError(t, err)

	text, filename, err := ToDBT(doc)
	require.NoError(t, err)
	assert.Equal(t, SchemaFilename, filename)

	parsed := decodeYAML(t, text)
	assert.Equal(t, 2, parsed["version"])

	models := parsed["models"].([]any)
	require.Len(t, models, 1)
	model := models[0].(map[string]any)
	assert.Equal(t, "customers", model["name"])

	columns := model["columns"].([]any)
	require.Len(t, columns, 3)

	cid := columns[0].(map[string]any)
	assert.Equal(t, "customer_id", cid["name"])
	assert.Equal(t, "Unique customer id", cid["description"])
	assert.Equal(t, []any{"not_null", "unique"}, cid["tests"])

	age := columns[1].(map[string]any)
	assert.Equal(t, "", age["description"])
	assert.Equal(t, []any{
		map[string]any{
			"dbt_expectations.expect_column_values_to_be_between": map[string]any{
				"min_value": 0,
				"max_value": 120,
			},
		},
	}, age["tests"])

	// Empty rule sets omit the tests key entirely.
	notes := columns[2].(map[string]any)
	_, hasTests := notes["tests"]
	assert.False(t, hasTests)
}

func TestToDBT_SourceDataset(t *testing.T) {
	doc, err := Parse([]byte(`
dataset:
  name: orders
  domain: sales
  kind: source
  database: warehouse
  schema: raw
columns:
  - name: id
    not_null: true
`), "governance.yaml")
	require.NoError(t, err)

	text, filename, err := ToDBT(doc)
	require.NoError(t, err)
	assert.Equal(t, SourcesFilename, filename)

	parsed := decodeYAML(t, text)
	sources := parsed["sources"].([]any)
	require.Len(t, sources, 1)

	source := sources[0].(map[string]any)
	assert.Equal(t, "sales", source["name"])
	assert.Equal(t, "warehouse", source["database"])
	assert.Equal(t, "raw", source["schema"])

	tables := source["tables"].([]any)
	require.Len(t, tables, 1)
	table := tables[0].(map[string]any)
	assert.Equal(t, "orders", table["name"])

	columns := table["columns"].([]any)
	require.Len(t, columns, 1)
	assert.Equal(t, []any{"not_null"}, columns[0].(map[string]any)["tests"])
}

func TestToDBT_SourceQualifiersOnlyWhenPresent(t *testing.T) {
	doc, err := Parse([]byte(`
dataset:
  name: orders
  domain: sales
  kind: source
columns: []
`), "governance.yaml")
	require.NoError(t, err)

	text, _, err := ToDBT(doc)
	require.NoError(t, err)

	parsed := decodeYAML(t, text)
	source := parsed["sources"].([]any)[0].(map[string]any)
	_, hasDatabase := source["database"]
	_, hasSchema := source["schema"]
	assert.False(t, hasDatabase)
	assert.False(t, hasSchema)
}

func TestToDBT_FilenameDeterminism(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		filename string
	}{
		{"source kind", "dataset: {name: d, kind: source}\ncolumns: []\n", SourcesFilename},
		{"model kind", "dataset: {name: d, kind: model}\ncolumns: []\n", SchemaFilename},
		{"absent kind", "dataset: {name: d}\ncolumns: []\n", SchemaFilename},
		{"multi table", "tables: []\n", SchemaFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.yaml), "governance.yaml")
			require.NoError(t, err)
			_, filename, err := ToDBT(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, filename)
		})
	}
}

func TestToDBT_BetweenOmitsAbsentBound(t *testing.T) {
	doc, err := Parse([]byte(`
dataset:
  name: orders
  kind: model
columns:
  - name: amount
    min: 0
`), "governance.yaml")
	require.NoError(t, err)

	text, _, err := ToDBT(doc)
	require.NoError(t, err)

	parsed := decodeYAML(t, text)
	column := parsed["models"].([]any)[0].(map[string]any)["columns"].([]any)[0].(map[string]any)
	between := column["tests"].([]any)[0].(map[string]any)["dbt_expectations.expect_column_values_to_be_between"].(map[string]any)

	assert.Equal(t, 0, between["min_value"])
	_, hasMax := between["max_value"]
	assert.False(t, hasMax)
}

func TestToDBT_KeyOrderPreserved(t *testing.T) {
	doc, err := Parse([]byte(`
tables:
  - name: customers
    columns:
      - name: id
`), "governance.yaml")
	require.NoError(t, err)

	text, _, err := ToDBT(doc)
	require.NoError(t, err)

	// version leads the document; name precedes columns within a model.
	lines := strings.Split(text, "\n")
	assert.Equal(t, "version: 2", lines[0])
	assert.Less(t, strings.Index(text, "name: customers"), strings.Index(text, "columns:"))
}

func TestToDBT_RegexTest(t *testing.T) {
	doc, err := Parse([]byte(`
tables:
  - name: customers
    columns:
      - name: email
        nullable: false
        constraints:
          - regex:
              pattern: "^[^@]+@[^@]+$"
`), "governance.yaml")
	require.NoError(t, err)

	text, _, err := ToDBT(doc)
	require.NoError(t, err)

	parsed := decodeYAML(t, text)
	column := parsed["models"].([]any)[0].(map[string]any)["columns"].([]any)[0].(map[string]any)
	tests := column["tests"].([]any)

	assert.Contains(t, tests, "not_null")
	assert.Contains(t, tests, map[string]any{
		"dbt_expectations.expect_column_values_to_match_regex": map[string]any{
			"regex": "^[^@]+@[^@]+$",
		},
	})
}
