package inspect

// inspect.go - inference over resolved sources.

import (
	"context"
	"log/slog"
)

// Result is the inferred schema of one source.
type Result struct {
	Table  string
	Path   string
	Schema Schema
}

// InspectSources infers a schema for every resolved source, in order. A
// failure on any file aborts the run; there is no per-file recovery.
func InspectSources(ctx context.Context, sources []Source, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		var (
			schema Schema
			err    error
		)
		if src.Sheet != "" {
			schema, err = InferSheet(ctx, src.Path, src.Sheet)
		} else {
			schema, err = InferSchema(ctx, src.Path)
		}
		if err != nil {
			return nil, err
		}

		logger.Debug("schema inferred",
			"table", src.Table, "path", src.Path, "columns", len(schema))
		results = append(results, Result{Table: src.Table, Path: src.Path, Schema: schema})
	}

	return results, nil
}
