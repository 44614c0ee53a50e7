package inspect

// discover.go - resolution of input files, either by directory scan or by
// a declarative sources config.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Source is one resolved input file.
type Source struct {
	Table string
	Path  string
	Sheet string // non-empty only for explicit Excel sheet selection
}

// SourcesConfig is the declarative list of inputs to inspect.
type SourcesConfig struct {
	// BaseDir anchors relative paths and globs; resolved against the
	// config file's directory when itself relative or empty.
	BaseDir string        `koanf:"base_dir"`
	Sources []SourceEntry `koanf:"sources"`
}

// SourceEntry declares one input: an explicit path or a glob, with
// optional format, sheet, and table-name overrides.
type SourceEntry struct {
	Path          string `koanf:"path"`
	Glob          string `koanf:"glob"`
	Format        string `koanf:"format"`
	Sheet         string `koanf:"sheet"`
	Table         string `koanf:"table"`
	TableFromStem bool   `koanf:"table_from_stem"`
}

// DiscoverDir resolves every supported file directly inside dir, sorted by
// filename. Table names derive from the filename stem.
func DiscoverDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExtension(ext) {
			continue
		}
		sources = append(sources, Source{
			Table: TableName(entry.Name()),
			Path:  filepath.Join(dir, entry.Name()),
		})
	}

	return sources, nil
}

// LoadSourcesConfig reads and validates a sources config file.
func LoadSourcesConfig(path string) (*SourcesConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading sources config %s: %w", path, err)
	}

	if !k.Exists("sources") {
		return nil, fmt.Errorf("invalid sources config %s: expecting a mapping with a 'sources' list", path)
	}

	var cfg SourcesConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error parsing sources config %s: %w", path, err)
	}

	return &cfg, nil
}

// DiscoverConfig resolves the inputs declared in a sources config file.
// Explicit paths are taken as-is; globs expand sorted. Table names come
// from the explicit table override, the filename stem when table_from_stem
// is set, or the stem-derived default.
func DiscoverConfig(configPath string) ([]Source, error) {
	cfg, err := LoadSourcesConfig(configPath)
	if err != nil {
		return nil, err
	}

	baseDir, err := resolveBaseDir(configPath, cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	var sources []Source
	for _, entry := range cfg.Sources {
		paths, err := resolveEntryPaths(entry, baseDir)
		if err != nil {
			return nil, err
		}

		for _, p := range paths {
			src := Source{Path: p}

			switch {
			case entry.Table != "" && !entry.TableFromStem:
				src.Table = entry.Table
			default:
				src.Table = TableName(filepath.Base(p))
			}

			// Sheet selection only applies to Excel-format entries.
			format := strings.ToLower(entry.Format)
			if (format == "xlsx" || format == "xls") && entry.Sheet != "" {
				src.Sheet = entry.Sheet
			}

			sources = append(sources, src)
		}
	}

	return sources, nil
}

// resolveBaseDir anchors the config's base_dir: absent means the config
// file's directory, relative means relative to it.
func resolveBaseDir(configPath, baseDir string) (string, error) {
	configDir := filepath.Dir(configPath)
	if baseDir == "" {
		return configDir, nil
	}
	if filepath.IsAbs(baseDir) {
		return baseDir, nil
	}
	abs, err := filepath.Abs(filepath.Join(configDir, baseDir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base_dir: %w", err)
	}
	return abs, nil
}

func resolveEntryPaths(entry SourceEntry, baseDir string) ([]string, error) {
	switch {
	case entry.Path != "":
		p := entry.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		return []string{p}, nil

	case entry.Glob != "":
		matches, err := filepath.Glob(filepath.Join(baseDir, entry.Glob))
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", entry.Glob, err)
		}
		sort.Strings(matches)

		var paths []string
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				paths = append(paths, m)
			}
		}
		return paths, nil

	default:
		return nil, fmt.Errorf("each source must have either 'path' or 'glob'")
	}
}
