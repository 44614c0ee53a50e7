package inspect

// infer.go - strategy dispatch: DuckDB first, value sniffer on any failure.

import "context"

// Inferrer is one schema inference strategy.
type Inferrer interface {
	Infer(ctx context.Context, path string) (Schema, error)
}

// InferSchema infers the column schema of a tabular file. The DuckDB
// strategy runs first; any failure of it, not just the anticipated Excel
// refusal, falls through to the sniffer. Only the sniffer's result or
// error is final, so an unsupported extension still surfaces as
// *UnsupportedFormatError.
func InferSchema(ctx context.Context, path string) (Schema, error) {
	schema, err := DuckDBInferrer{}.Infer(ctx, path)
	if err == nil {
		return schema, nil
	}

	return SniffInferrer{}.Infer(ctx, path)
}

// InferSheet infers the schema of one sheet of an Excel workbook. Sheet
// selection is a sniffer-only capability.
func InferSheet(ctx context.Context, path, sheet string) (Schema, error) {
	return SniffInferrer{}.InferSheet(ctx, path, sheet)
}
