package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sigview/internal/sigmf"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ArchiveDir string `toml:"archive_dir"`
	CatalogDir string `toml:"catalog_dir"`
	LogDir     string `toml:"log_dir"`
}

// Ingest controls how a recording archive is discovered and parsed.
type Ingest struct {
	MetaExtension string `toml:"meta_extension"`
	DataExtension string `toml:"data_extension"`
	// Workers bounds concurrent file parsing. Zero means GOMAXPROCS.
	Workers int `toml:"workers"`
	// ProgressEvery logs assembly progress after this many files.
	ProgressEvery int `toml:"progress_every"`
}

// Display controls terminal table output.
type Display struct {
	MaxRows int      `toml:"max_rows"`
	Columns []string `toml:"columns"`
}

// Export controls dataset file output.
type Export struct {
	Format      string `toml:"format"`
	Compression string `toml:"compression"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File additionally writes JSON logs to log_dir/sigview.log.
	File bool `toml:"file"`
}

// Config encapsulates all configuration values for sigview.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Ingest  Ingest  `toml:"ingest"`
	Display Display `toml:"display"`
	Export  Export  `toml:"export"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("sigview.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the catalog and log directories. The archive is
// never created; it is read-only input.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CatalogDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Layout returns the SigMF file-pair naming convention configured for ingest.
func (c *Config) Layout() sigmf.Layout {
	return sigmf.Layout{
		MetaExtension: c.Ingest.MetaExtension,
		DataExtension: c.Ingest.DataExtension,
	}
}

// WorkerCount resolves the effective parser concurrency.
func (c *Config) WorkerCount() int {
	if c.Ingest.Workers > 0 {
		return c.Ingest.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// CatalogPath returns the SQLite catalog database path.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Paths.CatalogDir, catalogFileName)
}

// CatalogLockPath returns the writer lock file guarding the catalog.
func (c *Config) CatalogLockPath() string {
	return filepath.Join(c.Paths.CatalogDir, catalogFileName+".lock")
}

// LogFilePath returns the JSON log file used when logging.file is enabled.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, logFileName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
