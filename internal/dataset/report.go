package dataset

import (
	"time"

	"sigview/internal/sigmf"
)

// FileOutcome is the result of processing one metadata document: either rows
// or an error, never both.
type FileOutcome struct {
	Path string
	Rows []Row
	Err  error
}

// FileFailure is a reportable per-file error.
type FileFailure struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func failureFor(path string, err error) FileFailure {
	return FileFailure{Path: path, Kind: sigmf.KindOf(err), Message: err.Error()}
}

// Report summarizes one assembly run.
type Report struct {
	Root       string        `json:"root"`
	Discovered int           `json:"discovered"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Rows       int           `json:"rows"`
	Duration   time.Duration `json:"duration"`
	Failures   []FileFailure `json:"failures,omitempty"`
}

func (r *Report) addFailure(f FileFailure) {
	r.Failures = append(r.Failures, f)
	r.Failed = len(r.Failures)
}
