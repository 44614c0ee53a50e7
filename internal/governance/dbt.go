package governance

// dbt.go - rendering of governance documents as dbt schema/source YAML.

import (
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/schemaforge/internal/yamldoc"
)

// Output filenames for the dbt document, chosen by document shape.
const (
	SchemaFilename  = "schema.yml"
	SourcesFilename = "sources.yml"
)

// Qualified dbt_expectations test names attached to column test lists.
const (
	dbtBetweenTest = "dbt_expectations.expect_column_values_to_be_between"
	dbtRegexTest   = "dbt_expectations.expect_column_values_to_match_regex"
)

// ToDBT renders a governance document as dbt YAML. It returns the document
// text and the filename it should be written under: a multi-table document
// or a model dataset becomes schema.yml with model entries, a dataset of
// kind "source" becomes sources.yml with a single source entry named after
// the dataset's domain.
func ToDBT(doc *Document) (string, string, error) {
	if doc.MultiTable() {
		models := yamldoc.Sequence()
		for _, table := range doc.Tables {
			model := yamldoc.Mapping()
			yamldoc.Entry(model, "name", yamldoc.Scalar(table.Name))
			yamldoc.Entry(model, "columns", dbtColumns(table.Columns))
			yamldoc.Append(models, model)
		}

		payload := yamldoc.Mapping()
		yamldoc.Entry(payload, "version", yamldoc.Scalar(2))
		yamldoc.Entry(payload, "models", models)

		text, err := yamldoc.Marshal(payload)
		return text, SchemaFilename, err
	}

	dataset := doc.Dataset
	payload := yamldoc.Mapping()
	yamldoc.Entry(payload, "version", yamldoc.Scalar(2))

	filename := SchemaFilename
	if dataset.Kind == "source" {
		filename = SourcesFilename

		table := yamldoc.Mapping()
		yamldoc.Entry(table, "name", yamldoc.Scalar(dataset.Name))
		yamldoc.Entry(table, "columns", dbtColumns(doc.Columns))

		source := yamldoc.Mapping()
		yamldoc.Entry(source, "name", yamldoc.Scalar(dataset.Domain))
		yamldoc.Entry(source, "tables", yamldoc.Sequence(table))
		if dataset.Database != "" {
			yamldoc.Entry(source, "database", yamldoc.Scalar(dataset.Database))
		}
		if dataset.Schema != "" {
			yamldoc.Entry(source, "schema", yamldoc.Scalar(dataset.Schema))
		}
		yamldoc.Entry(payload, "sources", yamldoc.Sequence(source))
	} else {
		model := yamldoc.Mapping()
		yamldoc.Entry(model, "name", yamldoc.Scalar(dataset.Name))
		yamldoc.Entry(model, "columns", dbtColumns(doc.Columns))
		yamldoc.Entry(payload, "models", yamldoc.Sequence(model))
	}

	text, err := yamldoc.Marshal(payload)
	return text, filename, err
}

// dbtColumns renders column entries with their normalized tests attached.
func dbtColumns(columns []Column) *yaml.Node {
	rendered := yamldoc.Sequence()
	for _, col := range columns {
		entry := yamldoc.Mapping()
		yamldoc.Entry(entry, "name", yamldoc.Scalar(col["name"]))
		yamldoc.Entry(entry, "description", yamldoc.Scalar(col.Description()))

		if tests := dbtTests(NormalizeRules(col)); len(tests.Content) > 0 {
			yamldoc.Entry(entry, "tests", tests)
		}

		yamldoc.Append(rendered, entry)
	}
	return rendered
}

// dbtTests builds the test list for one canonical rule set. An empty rule
// set yields an empty list, which the caller omits entirely.
func dbtTests(rules RuleSet) *yaml.Node {
	tests := yamldoc.Sequence()

	if rules.NotNull {
		yamldoc.Append(tests, yamldoc.Scalar("not_null"))
	}
	if rules.Unique {
		yamldoc.Append(tests, yamldoc.Scalar("unique"))
	}

	if rules.Range != nil {
		params := yamldoc.Mapping()
		if rules.Range.Min != nil {
			yamldoc.Entry(params, "min_value", yamldoc.Scalar(rules.Range.Min))
		}
		if rules.Range.Max != nil {
			yamldoc.Entry(params, "max_value", yamldoc.Scalar(rules.Range.Max))
		}
		test := yamldoc.Mapping()
		yamldoc.Entry(test, dbtBetweenTest, params)
		yamldoc.Append(tests, test)
	}

	if rules.Regex != nil {
		params := yamldoc.Mapping()
		yamldoc.Entry(params, "regex", yamldoc.Scalar(rules.Regex))
		test := yamldoc.Mapping()
		yamldoc.Entry(test, dbtRegexTest, params)
		yamldoc.Append(tests, test)
	}

	return tests
}
