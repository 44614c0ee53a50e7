package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Empty(t, cfg.SourcesFile)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", "data_dir: ./raw\nout_dir: ./built\nverbose: true\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "./raw", cfg.DataDir)
	assert.Equal(t, "./built", cfg.OutDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadDiscoversConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, ConfigFileName, "data_dir: ./landing\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "./landing", cfg.DataDir)
	assert.Equal(t, ConfigFileName, GetConfigFileUsed())
}

func TestLoadPrefersYamlOverYml(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, ConfigFileName, "data_dir: ./primary\n")
	writeConfig(t, dir, ConfigFileNameAlt, "data_dir: ./alternate\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "./primary", cfg.DataDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", "data_dir: ./from-file\n")
	t.Setenv("SCHEMAFORGE_DATA_DIR", "./from-env")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "./from-env", cfg.DataDir)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCHEMAFORGE_OUT_DIR", "./from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out-dir", "", "")
	flags.String("sources", "", "")
	require.NoError(t, flags.Parse([]string{"--out-dir", "./from-flag", "--sources", "sources.yaml"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "./from-flag", cfg.OutDir)
	assert.Equal(t, "sources.yaml", cfg.SourcesFile)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	// An unset flag must not clobber the default with its zero value.
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
}

func TestLoadBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "broken.yaml", "data_dir: [unclosed\n")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}
