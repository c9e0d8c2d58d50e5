package sigmf

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultMetaExtension marks SigMF metadata documents.
	DefaultMetaExtension = ".sigmf-meta"
	// DefaultDataExtension marks SigMF binary sample files.
	DefaultDataExtension = ".sigmf-data"
)

// Layout describes the file-pair naming convention: every metadata document
// "X<MetaExtension>" implies a data file "X<DataExtension>" in the same directory.
type Layout struct {
	MetaExtension string
	DataExtension string
}

// DefaultLayout is the standard SigMF naming convention.
var DefaultLayout = Layout{
	MetaExtension: DefaultMetaExtension,
	DataExtension: DefaultDataExtension,
}

// ParsedFile is the result of a successful ParseFile call.
type ParsedFile struct {
	Metadata *Metadata
	DataType DataType
	MetaPath string
	DataPath string
}

// IsMetaFile reports whether path carries the metadata extension.
func (l Layout) IsMetaFile(path string) bool {
	ext := l.metaExtension()
	return strings.HasSuffix(path, ext) && len(filepath.Base(path)) > len(ext)
}

// DataPathFor derives the companion data file path by swapping the metadata
// extension for the data extension. Paths without the metadata extension have
// their last extension replaced.
func (l Layout) DataPathFor(metaPath string) string {
	base := strings.TrimSuffix(metaPath, l.metaExtension())
	if base == metaPath {
		base = strings.TrimSuffix(metaPath, filepath.Ext(metaPath))
	}
	return base + l.dataExtension()
}

// MetaPathFor is the inverse of DataPathFor.
func (l Layout) MetaPathFor(dataPath string) string {
	base := strings.TrimSuffix(dataPath, l.dataExtension())
	if base == dataPath {
		base = strings.TrimSuffix(dataPath, filepath.Ext(dataPath))
	}
	return base + l.metaExtension()
}

func (l Layout) metaExtension() string {
	return normalizeExtension(l.MetaExtension, DefaultMetaExtension)
}

func (l Layout) dataExtension() string {
	return normalizeExtension(l.DataExtension, DefaultDataExtension)
}

func normalizeExtension(ext, fallback string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return fallback
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ParseFile parses path using DefaultLayout.
func ParseFile(path string) (*ParsedFile, error) {
	return DefaultLayout.ParseFile(path)
}

// ParseFile reads the metadata document at path, resolves its datatype and
// verifies the companion data file exists. On failure no partial result is
// returned; the error is a *MetadataParseError, *UnsupportedDatatypeError or
// *MissingDataFileError.
func (l Layout) ParseFile(path string) (*ParsedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &MetadataParseError{Path: path, Reason: "read", cause: err}
	}

	meta, err := DecodeMetadata(content)
	if err != nil {
		var parseErr *MetadataParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}

	dataType, err := ParseDataType(meta.Global.Datatype)
	if err != nil {
		return nil, err
	}

	dataPath := l.DataPathFor(path)
	info, err := os.Stat(dataPath)
	if err != nil {
		return nil, &MissingDataFileError{Path: dataPath, cause: err}
	}
	if info.IsDir() {
		return nil, &MissingDataFileError{Path: dataPath}
	}

	return &ParsedFile{
		Metadata: meta,
		DataType: dataType,
		MetaPath: path,
		DataPath: dataPath,
	}, nil
}

// DecodeMetadata decodes a metadata document held in memory. Malformed JSON
// and missing required fields are reported as *MetadataParseError.
func DecodeMetadata(content []byte) (*Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(content, &meta); err != nil {
		var missing *missingFieldError
		if errors.As(err, &missing) {
			return nil, &MetadataParseError{Reason: missing.Error()}
		}
		return nil, &MetadataParseError{Reason: "decode json", cause: err}
	}
	return &meta, nil
}
