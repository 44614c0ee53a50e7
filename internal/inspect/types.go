// Package inspect infers column-level schemas from tabular data files.
// Inference runs DuckDB first and falls back to a pure-Go value sniffer;
// both produce the same small set of semantic type tags.
package inspect

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Semantic type tags assigned to inferred columns.
const (
	TypeInteger  = "integer"
	TypeFloat    = "float"
	TypeBoolean  = "boolean"
	TypeString   = "string"
	TypeDate     = "date"
	TypeDatetime = "datetime"
	TypeTime     = "time"
	TypeDuration = "duration"
	TypeDecimal  = "decimal"
	TypeBinary   = "binary"
	TypeArray    = "array"
	TypeStruct   = "struct"
)

// ColumnType pairs a column name with its inferred type tag.
type ColumnType struct {
	Name string
	Type string
}

// Schema is the ordered column schema of one tabular file. Order follows
// the file's column order.
type Schema []ColumnType

// supportedExtensions are the file types inference accepts.
var supportedExtensions = []string{".csv", ".xlsx", ".xls"}

// UnsupportedFormatError indicates a file whose extension no inference
// strategy handles. It is fatal for that file; there is no fallback.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s (supported: %s)",
		e.Extension, e.Path, strings.Join(supportedExtensions, ", "))
}

// supportedExtension reports whether inference handles the extension.
func supportedExtension(ext string) bool {
	for _, s := range supportedExtensions {
		if s == ext {
			return true
		}
	}
	return false
}

// TableName derives a table name from a filename: the stem, lowercased,
// with spaces replaced by underscores.
func TableName(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.ReplaceAll(strings.ToLower(stem), " ", "_")
}
