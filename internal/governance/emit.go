package governance

// emit.go - filesystem emission of dbt and Great Expectations artifacts.

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Output kinds accepted by Emit.
const (
	KindDBT = "dbt"
	KindGE  = "ge"
)

// Subdirectories created under the output directory, one per output kind.
const (
	dbtSubdir = "dbt"
	geSubdir  = "ge"
)

// EmitOptions configures one governance emission run.
type EmitOptions struct {
	// GovernancePath is the governance YAML document to translate.
	GovernancePath string

	// OutDir receives the emitted artifacts, created if absent.
	OutDir string

	// Kinds selects the outputs to produce (KindDBT, KindGE). Validating
	// that the selection is non-empty is the caller's contract; an empty
	// selection here just writes nothing.
	Kinds []string

	// Logger defaults to a discard logger when nil.
	Logger *slog.Logger
}

// Emit loads a governance document and writes the requested artifacts:
// <out>/dbt/schema.yml or sources.yml, and <out>/ge/<table>_suite.yml per
// table. Existing files are overwritten. A malformed governance document
// fails with *ParseError before anything is written; a write failure midway
// leaves earlier outputs in place.
func Emit(opts EmitOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run_id", uuid.New().String())

	doc, err := Load(opts.GovernancePath)
	if err != nil {
		return err
	}
	logger.Debug("governance document loaded",
		"path", opts.GovernancePath,
		"multi_table", doc.MultiTable(),
	)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, kind := range opts.Kinds {
		switch kind {
		case KindDBT:
			if err := emitDBT(doc, opts.OutDir, logger); err != nil {
				return err
			}
		case KindGE:
			if err := emitSuites(doc, opts.OutDir, logger); err != nil {
				return err
			}
		}
	}

	return nil
}

func emitDBT(doc *Document, outDir string, logger *slog.Logger) error {
	text, filename, err := ToDBT(doc)
	if err != nil {
		return fmt.Errorf("failed to render dbt document: %w", err)
	}

	dir := filepath.Join(outDir, dbtSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dbt output directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write dbt document: %w", err)
	}

	logger.Info("dbt document written", "path", path)
	return nil
}

func emitSuites(doc *Document, outDir string, logger *slog.Logger) error {
	suites, err := ToSuites(doc)
	if err != nil {
		return fmt.Errorf("failed to render expectation suites: %w", err)
	}

	dir := filepath.Join(outDir, geSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ge output directory: %w", err)
	}

	for _, suite := range suites {
		path := filepath.Join(dir, fmt.Sprintf("%s_suite.yml", suite.Table))
		if err := os.WriteFile(path, []byte(suite.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write suite for %s: %w", suite.Table, err)
		}
		logger.Info("expectation suite written", "table", suite.Table, "path", path)
	}

	return nil
}
