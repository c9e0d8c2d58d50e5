package export

import (
	"fmt"
	"strings"

	"sigview/internal/config"
)

// Options selects the on-disk encoding.
type Options struct {
	Format      string
	Compression string
}

// FromConfig returns the export defaults from cfg.
func FromConfig(cfg *config.Config) Options {
	return Options{Format: cfg.Export.Format, Compression: cfg.Export.Compression}
}

func (o Options) normalized() (Options, error) {
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	o.Compression = strings.ToLower(strings.TrimSpace(o.Compression))
	if o.Format == "" {
		o.Format = config.ExportFormatCSV
	}
	if o.Compression == "" {
		o.Compression = config.CompressionNone
	}
	switch o.Format {
	case config.ExportFormatCSV, config.ExportFormatArrow:
	default:
		return o, fmt.Errorf("%w: format %q", ErrUnsupported, o.Format)
	}
	switch o.Compression {
	case config.CompressionNone, config.CompressionZstd, config.CompressionLZ4:
	default:
		return o, fmt.Errorf("%w: compression %q", ErrUnsupported, o.Compression)
	}
	return o, nil
}

// Extension returns the conventional file suffix, e.g. ".arrow.zst".
func (o Options) Extension() string {
	n, err := o.normalized()
	if err != nil {
		return ""
	}
	ext := "." + n.Format
	switch n.Compression {
	case config.CompressionZstd:
		ext += ".zst"
	case config.CompressionLZ4:
		ext += ".lz4"
	}
	return ext
}

// InferOptions guesses format and compression from a file name, falling back
// to base for whatever the name does not reveal.
func InferOptions(path string, base Options) Options {
	name := strings.ToLower(path)
	out := base
	switch {
	case strings.HasSuffix(name, ".zst"):
		out.Compression = config.CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".lz4"):
		out.Compression = config.CompressionLZ4
		name = strings.TrimSuffix(name, ".lz4")
	}
	switch {
	case strings.HasSuffix(name, ".csv"):
		out.Format = config.ExportFormatCSV
	case strings.HasSuffix(name, ".arrow"), strings.HasSuffix(name, ".arrows"):
		out.Format = config.ExportFormatArrow
	}
	return out
}
