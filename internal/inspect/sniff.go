package inspect

// sniff.go - fallback inference strategy: read a sample of rows and sniff
// each column's values. Also the only strategy that reads Excel files.

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// defaultSampleRows caps how many data rows the sniffer examines.
const defaultSampleRows = 1000

// Layouts tried when sniffing temporal values, most specific first.
var (
	datetimeLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	dateLayouts = []string{"2006-01-02", "2006/01/02"}
	timeLayouts = []string{"15:04:05", "15:04"}
)

// SniffInferrer infers schemas by sampling values with pure Go readers.
// Less precise than DuckDB (no decimal, duration, or nested detection) but
// dependency-light and able to read Excel workbooks.
type SniffInferrer struct {
	// SampleRows overrides how many data rows to examine; zero means the
	// default.
	SampleRows int
}

// Infer returns the sniffed schema for a CSV or Excel file.
func (s SniffInferrer) Infer(_ context.Context, path string) (Schema, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return s.sniffCSV(path)
	case ".xlsx", ".xls":
		return s.sniffExcel(path, "")
	default:
		return nil, &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

// InferSheet sniffs a specific sheet of an Excel workbook.
func (s SniffInferrer) InferSheet(_ context.Context, path, sheet string) (Schema, error) {
	return s.sniffExcel(path, sheet)
}

func (s SniffInferrer) sampleLimit() int {
	if s.SampleRows > 0 {
		return s.SampleRows
	}
	return defaultSampleRows
}

func (s SniffInferrer) sniffCSV(path string) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return s.sniffRows(records[0], records[1:]), nil
}

func (s SniffInferrer) sniffExcel(path, sheet string) (Schema, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return s.sniffRows(rows[0], rows[1:]), nil
}

// sniffRows builds the schema from a header row and sample data rows.
func (s SniffInferrer) sniffRows(header []string, data [][]string) Schema {
	limit := s.sampleLimit()
	if len(data) > limit {
		data = data[:limit]
	}

	schema := make(Schema, 0, len(header))
	for i, name := range header {
		var values []string
		for _, row := range data {
			if i < len(row) {
				values = append(values, row[i])
			}
		}
		schema = append(schema, ColumnType{Name: name, Type: sniffType(values)})
	}
	return schema
}

// sniffType classifies a column's sampled values. Every non-empty value
// must agree on a type; anything ambiguous is a string. An all-empty
// column is a string as well.
func sniffType(values []string) string {
	seen := false
	candidates := map[string]bool{
		TypeInteger:  true,
		TypeFloat:    true,
		TypeBoolean:  true,
		TypeDate:     true,
		TypeDatetime: true,
		TypeTime:     true,
	}

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen = true

		if candidates[TypeInteger] {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				candidates[TypeInteger] = false
			}
		}
		if candidates[TypeFloat] {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				candidates[TypeFloat] = false
			}
		}
		if candidates[TypeBoolean] && !isBoolWord(v) {
			candidates[TypeBoolean] = false
		}
		if candidates[TypeDate] && !parsesAs(v, dateLayouts) {
			candidates[TypeDate] = false
		}
		if candidates[TypeDatetime] && !parsesAs(v, datetimeLayouts) {
			candidates[TypeDatetime] = false
		}
		if candidates[TypeTime] && !parsesAs(v, timeLayouts) {
			candidates[TypeTime] = false
		}
	}

	if !seen {
		return TypeString
	}

	// Preference order mirrors specificity: integer beats float, both beat
	// the temporal tags, everything beats string.
	for _, tag := range []string{TypeInteger, TypeFloat, TypeBoolean, TypeDate, TypeDatetime, TypeTime} {
		if candidates[tag] {
			return tag
		}
	}
	return TypeString
}

func isBoolWord(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false":
		return true
	default:
		return false
	}
}

func parsesAs(v string, layouts []string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
