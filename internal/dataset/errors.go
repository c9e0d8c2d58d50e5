package dataset

import "errors"

var (
	// ErrNoValidFiles is returned when assembly produced no rows at all.
	ErrNoValidFiles = errors.New("no valid SigMF files found")
	// ErrNoFiles is returned by FromFiles for an empty path list.
	ErrNoFiles = errors.New("no files provided")
	// ErrUnsupportedExtension is returned by ParsePath for files that are not
	// metadata documents.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)

// KindWalk classifies failures to read a directory or resolve a link during
// discovery.
const KindWalk = "walk"
