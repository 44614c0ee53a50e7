// Package main provides tests for the SchemaForge CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/schemaforge/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "SchemaForge") {
		t.Errorf("version output should contain 'SchemaForge', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"inspect", "emit", "init", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestEmitCommand(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	governance := `version: 1
dataset:
  name: customers
columns:
  - name: customer_id
    rules:
      not_null: true
      unique: true
  - name: age
    rules:
      accepted_range:
        min: 0
        max: 120
`
	governancePath := filepath.Join(tmpDir, "governance.yaml")
	if err := os.WriteFile(governancePath, []byte(governance), 0o644); err != nil {
		t.Fatalf("failed to write governance file: %v", err)
	}

	outDir := filepath.Join(tmpDir, "out")
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"emit",
		"--governance", governancePath,
		"--emit", "dbt,ge",
		"--out-dir", outDir,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("emit command error = %v", err)
	}

	if !strings.Contains(buf.String(), "Governance emitted") {
		t.Errorf("emit output should confirm emission, got: %s", buf.String())
	}

	for _, f := range []string{
		filepath.Join("dbt", "schema.yml"),
		filepath.Join("ge", "customers_suite.yml"),
	} {
		if _, err := os.Stat(filepath.Join(outDir, f)); err != nil {
			t.Errorf("expected output file %q: %v", f, err)
		}
	}
}

func TestEmitCommandUnknownKind(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"emit", "--governance", "governance.yaml", "--emit", "sodacl"})

	if err := cmd.Execute(); err == nil {
		t.Error("emit with unknown kind should fail")
	}
}

func TestInspectCommand(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	dataDir := filepath.Join(tmpDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	csv := "id,name,amount\n1,alice,9.50\n2,bob,3.25\n"
	if err := os.WriteFile(filepath.Join(dataDir, "orders.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}

	outDir := filepath.Join(tmpDir, "out")
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"inspect",
		"--data-dir", dataDir,
		"--out-dir", outDir,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("inspect command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "orders") {
		t.Errorf("inspect summary should list the table, got: %s", output)
	}
	if !strings.Contains(output, "YAML written to:") {
		t.Errorf("inspect output should report the output folder, got: %s", output)
	}

	for _, f := range []string{"orders.schema.yaml", "_all_schemas.yaml"} {
		if _, err := os.Stat(filepath.Join(outDir, f)); err != nil {
			t.Errorf("expected output file %q: %v", f, err)
		}
	}
}
