package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sigview/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SIGVIEW_ARCHIVE_DIR", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(tempHome, "sigmf"); cfg.Paths.ArchiveDir != want {
		t.Fatalf("unexpected archive dir: got %q want %q", cfg.Paths.ArchiveDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "sigview"); cfg.Paths.CatalogDir != want {
		t.Fatalf("unexpected catalog dir: got %q want %q", cfg.Paths.CatalogDir, want)
	}
	if cfg.CatalogPath() != filepath.Join(cfg.Paths.CatalogDir, "catalog.db") {
		t.Fatalf("unexpected catalog path: %q", cfg.CatalogPath())
	}
	if cfg.Ingest.MetaExtension != ".sigmf-meta" || cfg.Ingest.DataExtension != ".sigmf-data" {
		t.Fatalf("unexpected extensions: %q %q", cfg.Ingest.MetaExtension, cfg.Ingest.DataExtension)
	}
	if cfg.WorkerCount() != runtime.GOMAXPROCS(0) {
		t.Fatalf("expected worker count to default to GOMAXPROCS, got %d", cfg.WorkerCount())
	}
	if cfg.Export.Format != config.ExportFormatCSV || cfg.Export.Compression != config.CompressionNone {
		t.Fatalf("unexpected export defaults: %+v", cfg.Export)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CatalogDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.ArchiveDir); !os.IsNotExist(err) {
		t.Fatalf("archive dir must not be created, stat err = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("SIGVIEW_ARCHIVE_DIR", "")
	configPath := filepath.Join(tempDir, "sigview.toml")

	type payload struct {
		Paths struct {
			ArchiveDir string `toml:"archive_dir"`
		} `toml:"paths"`
		Ingest struct {
			MetaExtension string `toml:"meta_extension"`
			DataExtension string `toml:"data_extension"`
			Workers       int    `toml:"workers"`
		} `toml:"ingest"`
		Display struct {
			Columns []string `toml:"columns"`
		} `toml:"display"`
	}
	custom := payload{}
	custom.Paths.ArchiveDir = filepath.Join(tempDir, "captures")
	custom.Ingest.MetaExtension = "META"
	custom.Ingest.DataExtension = ".bin"
	custom.Ingest.Workers = 3
	custom.Display.Columns = []string{" snr_db ", "snr_db", "", "datatype"}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.ArchiveDir != custom.Paths.ArchiveDir {
		t.Fatalf("unexpected archive dir: %q", cfg.Paths.ArchiveDir)
	}
	layout := cfg.Layout()
	if layout.MetaExtension != ".meta" || layout.DataExtension != ".bin" {
		t.Fatalf("unexpected layout: %+v", layout)
	}
	if cfg.WorkerCount() != 3 {
		t.Fatalf("expected 3 workers, got %d", cfg.WorkerCount())
	}
	if got := strings.Join(cfg.Display.Columns, ","); got != "snr_db,datatype" {
		t.Fatalf("unexpected display columns: %q", got)
	}
}

func TestArchiveDirEnvOverridesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "sigview.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\narchive_dir = \"/from/file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	override := filepath.Join(tempDir, "override")
	t.Setenv("SIGVIEW_ARCHIVE_DIR", override)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.ArchiveDir != override {
		t.Fatalf("expected env override %q, got %q", override, cfg.Paths.ArchiveDir)
	}
}

func TestCreateSample(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("SIGVIEW_ARCHIVE_DIR", "")
	samplePath := filepath.Join(tempDir, "nested", "config.toml")

	if err := config.CreateSample(samplePath); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(samplePath)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	content := string(data)
	for _, want := range []string{"[paths]", "[ingest]", "[display]", "[export]", "[logging]"} {
		if !strings.Contains(content, want) {
			t.Fatalf("sample config missing %s section", want)
		}
	}

	if _, _, _, err := config.Load(samplePath); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "same extensions",
			mutate: func(c *config.Config) { c.Ingest.DataExtension = c.Ingest.MetaExtension },
			want:   "must differ",
		},
		{
			name:   "negative workers",
			mutate: func(c *config.Config) { c.Ingest.Workers = -1 },
			want:   "ingest.workers",
		},
		{
			name:   "negative max rows",
			mutate: func(c *config.Config) { c.Display.MaxRows = -5 },
			want:   "display.max_rows",
		},
		{
			name:   "unknown export format",
			mutate: func(c *config.Config) { c.Export.Format = "parquet" },
			want:   "export.format",
		},
		{
			name:   "unknown compression",
			mutate: func(c *config.Config) { c.Export.Compression = "gzip" },
			want:   "export.compression",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.Logging.Level = "verbose" },
			want:   "logging.level",
		},
		{
			name:   "missing catalog dir",
			mutate: func(c *config.Config) { c.Paths.CatalogDir = "" },
			want:   "paths.catalog_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
