package config

import "sigview/internal/sigmf"

const (
	defaultConfigPath    = "~/.config/sigview/config.toml"
	defaultArchiveDir    = "~/sigmf"
	defaultCatalogDir    = "~/.local/share/sigview"
	defaultLogDir        = "~/.local/share/sigview/logs"
	defaultProgressEvery = 100
	defaultMaxRows       = 20
	defaultExportFormat  = ExportFormatCSV
	defaultCompression   = CompressionNone
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"

	catalogFileName = "catalog.db"
	logFileName     = "sigview.log"

	archiveDirEnv = "SIGVIEW_ARCHIVE_DIR"
)

// Export formats.
const (
	ExportFormatCSV   = "csv"
	ExportFormatArrow = "arrow"
)

// Export compression codecs.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
	CompressionLZ4  = "lz4"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArchiveDir: defaultArchiveDir,
			CatalogDir: defaultCatalogDir,
			LogDir:     defaultLogDir,
		},
		Ingest: Ingest{
			MetaExtension: sigmf.DefaultMetaExtension,
			DataExtension: sigmf.DefaultDataExtension,
			ProgressEvery: defaultProgressEvery,
		},
		Display: Display{
			MaxRows: defaultMaxRows,
		},
		Export: Export{
			Format:      defaultExportFormat,
			Compression: defaultCompression,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
