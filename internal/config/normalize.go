package config

import (
	"fmt"
	"os"
	"strings"

	"sigview/internal/sigmf"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeIngest()
	c.normalizeDisplay()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(archiveDirEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.ArchiveDir = strings.TrimSpace(value)
	}
	var err error
	if c.Paths.ArchiveDir, err = expandPath(strings.TrimSpace(c.Paths.ArchiveDir)); err != nil {
		return fmt.Errorf("paths.archive_dir: %w", err)
	}
	if c.Paths.CatalogDir, err = expandPath(strings.TrimSpace(c.Paths.CatalogDir)); err != nil {
		return fmt.Errorf("paths.catalog_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeIngest() {
	c.Ingest.MetaExtension = normalizeExtension(c.Ingest.MetaExtension, sigmf.DefaultMetaExtension)
	c.Ingest.DataExtension = normalizeExtension(c.Ingest.DataExtension, sigmf.DefaultDataExtension)
	if c.Ingest.ProgressEvery == 0 {
		c.Ingest.ProgressEvery = defaultProgressEvery
	}
}

func normalizeExtension(ext, fallback string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return fallback
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (c *Config) normalizeDisplay() {
	if len(c.Display.Columns) == 0 {
		c.Display.Columns = nil
		return
	}
	cols := make([]string, 0, len(c.Display.Columns))
	seen := make(map[string]struct{}, len(c.Display.Columns))
	for _, col := range c.Display.Columns {
		name := strings.TrimSpace(col)
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		cols = nil
	}
	c.Display.Columns = cols
}

func (c *Config) normalizeExport() {
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	if c.Export.Format == "" {
		c.Export.Format = defaultExportFormat
	}
	c.Export.Compression = strings.ToLower(strings.TrimSpace(c.Export.Compression))
	if c.Export.Compression == "" {
		c.Export.Compression = defaultCompression
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
