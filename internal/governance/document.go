// Package governance translates governance YAML into dbt schema/test
// documents and Great Expectations suite documents.
package governance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Column is the raw YAML representation of one column entry. Constraint
// syntax on it is heterogeneous; NormalizeRules reduces it to a RuleSet.
type Column map[string]any

// Name returns the column name, or "" when absent.
func (c Column) Name() string {
	return stringValue(c["name"])
}

// Description returns the column description, or "" when absent.
func (c Column) Description() string {
	return stringValue(c["description"])
}

// Table is one table entry of a multi-table governance document.
type Table struct {
	Name    string
	Columns []Column
}

// Dataset describes the single dataset of a single-dataset document.
type Dataset struct {
	Name     string
	Domain   string
	Kind     string // "source" or "model"
	Database string
	Schema   string
}

// Document is a fully loaded governance document. Exactly one of the two
// shapes is populated: Tables (multi-table) or Dataset+Columns
// (single-dataset). The shape is decided solely by the presence of a
// "tables" key in the source YAML.
type Document struct {
	Tables  []Table
	Dataset Dataset
	Columns []Column

	multiTable bool
}

// MultiTable reports whether the document carried a "tables" key.
func (d *Document) MultiTable() bool {
	return d.multiTable
}

// ParseError indicates a governance or sources document that is not valid
// YAML. It is fatal and propagates to the caller unmodified.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Load reads and parses a governance document. Malformed YAML returns a
// *ParseError; missing or unexpected fields never fail, they just produce
// absent output downstream.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read governance file: %w", err)
	}
	return Parse(content, path)
}

// Parse parses governance YAML content. The path is only used for error
// reporting.
func Parse(content []byte, path string) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	return fromRaw(raw), nil
}

// fromRaw builds a Document from the decoded YAML mapping. The shape tag is
// resolved once here so downstream code never re-inspects the raw input.
func fromRaw(raw map[string]any) *Document {
	doc := &Document{}
	if raw == nil {
		return doc
	}

	if tables, ok := raw["tables"]; ok {
		doc.multiTable = true
		for _, entry := range sliceValue(tables) {
			m := mapValue(entry)
			doc.Tables = append(doc.Tables, Table{
				Name:    stringValue(m["name"]),
				Columns: columnsValue(m["columns"]),
			})
		}
		return doc
	}

	ds := mapValue(raw["dataset"])
	doc.Dataset = Dataset{
		Name:     stringValue(ds["name"]),
		Domain:   stringValue(ds["domain"]),
		Kind:     stringValue(ds["kind"]),
		Database: stringValue(ds["database"]),
		Schema:   stringValue(ds["schema"]),
	}
	doc.Columns = columnsValue(raw["columns"])
	return doc
}

// columnsValue coerces a raw YAML value into a column list, dropping
// entries that are not mappings.
func columnsValue(v any) []Column {
	var cols []Column
	for _, entry := range sliceValue(v) {
		if m := mapValue(entry); m != nil {
			cols = append(cols, Column(m))
		}
	}
	return cols
}

// stringValue renders a scalar as a string, or "" for nil and non-scalars.
func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool, int, int64, uint64, float64:
		return fmt.Sprintf("%v", s)
	default:
		return ""
	}
}

// mapValue returns v as a string-keyed mapping, or nil when it is not one.
func mapValue(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// sliceValue returns v as a slice, or nil when it is not one.
func sliceValue(v any) []any {
	s, _ := v.([]any)
	return s
}
