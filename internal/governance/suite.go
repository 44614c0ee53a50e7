package governance

// suite.go - rendering of governance documents as Great Expectations
// suite YAML, one suite per table.

import (
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/schemaforge/internal/yamldoc"
)

// Expectation types attached to suite documents.
const (
	expectNotNull = "expect_column_values_to_not_be_null"
	expectUnique  = "expect_column_values_to_be_unique"
	expectBetween = "expect_column_values_to_be_between"
	expectRegex   = "expect_column_values_to_match_regex"
)

// TableSuite is one rendered suite document keyed by its table name.
// Suites are returned as an ordered slice so file emission follows the
// document's table order.
type TableSuite struct {
	Table string
	Text  string
}

// ToSuites renders one expectation suite per table of a multi-table
// document, or exactly one suite named after the dataset for a
// single-dataset document.
func ToSuites(doc *Document) ([]TableSuite, error) {
	if doc.MultiTable() {
		suites := make([]TableSuite, 0, len(doc.Tables))
		for _, table := range doc.Tables {
			text, err := suiteForColumns(table.Name, table.Columns)
			if err != nil {
				return nil, err
			}
			suites = append(suites, TableSuite{Table: table.Name, Text: text})
		}
		return suites, nil
	}

	text, err := suiteForColumns(doc.Dataset.Name, doc.Columns)
	if err != nil {
		return nil, err
	}
	return []TableSuite{{Table: doc.Dataset.Name, Text: text}}, nil
}

// suiteForColumns builds one suite document. Columns keep input order;
// within a column, expectations follow the fixed category order not-null,
// unique, range, regex. Both orderings are part of the output contract.
func suiteForColumns(name string, columns []Column) (string, error) {
	expectations := yamldoc.Sequence()

	for _, col := range columns {
		columnName := col["name"]
		rules := NormalizeRules(col)

		if rules.NotNull {
			kwargs := yamldoc.Mapping()
			yamldoc.Entry(kwargs, "column", yamldoc.Scalar(columnName))
			yamldoc.Append(expectations, expectation(expectNotNull, kwargs))
		}

		if rules.Unique {
			kwargs := yamldoc.Mapping()
			yamldoc.Entry(kwargs, "column", yamldoc.Scalar(columnName))
			yamldoc.Append(expectations, expectation(expectUnique, kwargs))
		}

		if rules.Range != nil {
			kwargs := yamldoc.Mapping()
			yamldoc.Entry(kwargs, "column", yamldoc.Scalar(columnName))
			if rules.Range.Min != nil {
				yamldoc.Entry(kwargs, "min_value", yamldoc.Scalar(rules.Range.Min))
			}
			if rules.Range.Max != nil {
				yamldoc.Entry(kwargs, "max_value", yamldoc.Scalar(rules.Range.Max))
			}
			yamldoc.Append(expectations, expectation(expectBetween, kwargs))
		}

		if rules.Regex != nil {
			kwargs := yamldoc.Mapping()
			yamldoc.Entry(kwargs, "column", yamldoc.Scalar(columnName))
			yamldoc.Entry(kwargs, "regex", yamldoc.Scalar(rules.Regex))
			yamldoc.Append(expectations, expectation(expectRegex, kwargs))
		}
	}

	suite := yamldoc.Mapping()
	yamldoc.Entry(suite, "expectation_suite_name", yamldoc.Scalar(name))
	yamldoc.Entry(suite, "expectations", expectations)

	return yamldoc.Marshal(suite)
}

// expectation builds one {expectation_type, kwargs} entry.
func expectation(expectationType string, kwargs *yaml.Node) *yaml.Node {
	entry := yamldoc.Mapping()
	yamldoc.Entry(entry, "expectation_type", yamldoc.Scalar(expectationType))
	yamldoc.Entry(entry, "kwargs", kwargs)
	return entry
}
