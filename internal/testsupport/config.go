package testsupport

import (
	"path/filepath"
	"testing"

	"sigview/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The archive directory lives at BaseDir(cfg)/archive and is not created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ArchiveDir = filepath.Join(base, "archive")
	cfgVal.Paths.CatalogDir = filepath.Join(base, "catalog")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Ingest.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return builder.cfg
}

// WithWorkers overrides the ingest worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ingest.Workers = n
	}
}

// WithExtensions overrides the metadata and data extensions.
func WithExtensions(meta, data string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ingest.MetaExtension = meta
		b.cfg.Ingest.DataExtension = data
	}
}

// WithDisplayColumns sets the default visible columns.
func WithDisplayColumns(columns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Display.Columns = columns
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CatalogDir)
}
