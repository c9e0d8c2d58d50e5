package testsupport

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

// NoDataFile, used as Recording.DataBytes, skips writing the companion data file.
const NoDataFile int64 = -1

// Recording describes a SigMF file pair to write into a test archive.
type Recording struct {
	// Name is the path of the pair relative to the archive root, without
	// extension. It may contain subdirectories.
	Name string
	// Datatype defaults to cf32_le.
	Datatype string
	// Global keys override or extend the default global object
	// (core:sample_rate 1e6, core:version 1.0.0).
	Global map[string]any
	// Captures defaults to a single capture at sample 0.
	Captures []map[string]any
	// Annotations is omitted from the document when nil.
	Annotations []map[string]any
	// DataBytes is the size of the data file, or NoDataFile.
	DataBytes int64
	// MetaExtension and DataExtension default to the SigMF extensions.
	MetaExtension string
	DataExtension string
}

// Document renders the metadata document for r.
func (r Recording) Document() map[string]any {
	global := map[string]any{
		"core:datatype":    r.Datatype,
		"core:sample_rate": 1e6,
		"core:version":     "1.0.0",
	}
	if r.Datatype == "" {
		global["core:datatype"] = "cf32_le"
	}
	for key, value := range r.Global {
		if value == nil {
			delete(global, key)
			continue
		}
		global[key] = value
	}

	captures := r.Captures
	if captures == nil {
		captures = []map[string]any{{"core:sample_start": 0}}
	}
	doc := map[string]any{
		"global":   global,
		"captures": captures,
	}
	if r.Annotations != nil {
		doc["annotations"] = r.Annotations
	}
	return doc
}

// WriteRecording writes the metadata document and, unless DataBytes is
// NoDataFile, a data file of DataBytes bytes. It returns the metadata path.
func WriteRecording(t testing.TB, dir string, r Recording) string {
	t.Helper()

	metaExt, dataExt := r.MetaExtension, r.DataExtension
	if metaExt == "" {
		metaExt = ".sigmf-meta"
	}
	if dataExt == "" {
		dataExt = ".sigmf-data"
	}
	base := filepath.Join(dir, filepath.FromSlash(r.Name))

	content, err := json.MarshalIndent(r.Document(), "", "  ")
	if err != nil {
		t.Fatalf("marshal recording %s: %v", r.Name, err)
	}
	metaPath := base + metaExt
	WriteText(t, metaPath, string(content))

	if r.DataBytes != NoDataFile {
		WriteFile(t, base+dataExt, r.DataBytes)
	}
	return metaPath
}

// MLAnnotation returns a minimal annotation recognized as machine-detected
// output, with extra keys merged in.
func MLAnnotation(centerFreq float64, extra map[string]any) map[string]any {
	ann := map[string]any{
		"core:sample_start": 0,
		"core:sample_count": 1024,
		"ds:sigCenterFreq":  centerFreq,
	}
	for key, value := range extra {
		ann[key] = value
	}
	return ann
}
