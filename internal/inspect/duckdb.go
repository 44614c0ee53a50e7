package inspect

// duckdb.go - primary inference strategy backed by DuckDB's CSV reader.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// errExcelNotSupported marks files the DuckDB strategy refuses so the
// caller can fall back to the sniffer.
var errExcelNotSupported = errors.New("excel files are not supported by the duckdb inferrer")

// DuckDBInferrer infers schemas by letting DuckDB's read_csv_auto detect
// column types in an in-memory database. It handles CSV only; Excel files
// are refused and left to the fallback strategy.
type DuckDBInferrer struct{}

// Infer returns the inferred schema for a CSV file.
func (DuckDBInferrer) Infer(ctx context.Context, path string) (Schema, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
	case ".xlsx", ".xls":
		return nil, errExcelNotSupported
	default:
		return nil, &UnsupportedFormatError{Path: path, Extension: ext}
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// read_csv_auto performs the schema detection; DESCRIBE exposes it
	// without materializing the data.
	query := fmt.Sprintf(
		"SELECT column_name, column_type FROM (DESCRIBE SELECT * FROM read_csv_auto('%s', header=true))",
		strings.ReplaceAll(absPath, "'", "''"),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	var schema Schema
	for rows.Next() {
		var name, duckType string
		if err := rows.Scan(&name, &duckType); err != nil {
			return nil, fmt.Errorf("failed to scan column description: %w", err)
		}
		schema = append(schema, ColumnType{Name: name, Type: duckdbTypeTag(duckType)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column descriptions: %w", err)
	}

	return schema, nil
}

// duckdbTypeTag maps a DuckDB type name to a semantic type tag. Unknown
// types default to string.
func duckdbTypeTag(duckType string) string {
	t := strings.ToUpper(strings.TrimSpace(duckType))

	switch {
	case strings.HasSuffix(t, "[]"):
		return TypeArray
	case strings.HasPrefix(t, "STRUCT"), strings.HasPrefix(t, "MAP"):
		return TypeStruct
	case strings.HasPrefix(t, "DECIMAL"), strings.HasPrefix(t, "NUMERIC"):
		return TypeDecimal
	case strings.HasPrefix(t, "TIMESTAMP"), t == "DATETIME":
		return TypeDatetime
	}

	switch t {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT":
		return TypeInteger
	case "FLOAT", "REAL", "DOUBLE":
		return TypeFloat
	case "BOOLEAN":
		return TypeBoolean
	case "DATE":
		return TypeDate
	case "TIME":
		return TypeTime
	case "INTERVAL":
		return TypeDuration
	case "BLOB":
		return TypeBinary
	default:
		return TypeString
	}
}
