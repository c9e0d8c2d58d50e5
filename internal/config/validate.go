package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.CatalogDir == "" {
		return errors.New("paths.catalog_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.MetaExtension == c.Ingest.DataExtension {
		return fmt.Errorf("ingest.meta_extension and ingest.data_extension must differ (both %q)", c.Ingest.MetaExtension)
	}
	if c.Ingest.Workers < 0 {
		return errors.New("ingest.workers must be zero or positive")
	}
	if c.Ingest.ProgressEvery < 0 {
		return errors.New("ingest.progress_every must be zero or positive")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if c.Display.MaxRows < 0 {
		return errors.New("display.max_rows must be zero or positive")
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.Format {
	case ExportFormatCSV, ExportFormatArrow:
	default:
		return fmt.Errorf("export.format must be %q or %q, got %q", ExportFormatCSV, ExportFormatArrow, c.Export.Format)
	}
	switch c.Export.Compression {
	case CompressionNone, CompressionZstd, CompressionLZ4:
	default:
		return fmt.Errorf("export.compression must be one of none, zstd, lz4; got %q", c.Export.Compression)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
