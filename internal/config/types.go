// Package config provides project configuration for SchemaForge. It is
// decoupled from CLI concerns so other tools can load the same config.
package config

// Config holds all project configuration options.
type Config struct {
	// DataDir is scanned for tabular files when no sources config is given.
	DataDir string `koanf:"data_dir"`

	// OutDir receives every emitted YAML artifact.
	OutDir string `koanf:"out_dir"`

	// SourcesFile optionally points at a declarative sources config.
	SourcesFile string `koanf:"sources"`

	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultDataDir = "./data"
	DefaultOutDir  = "./out"
)
