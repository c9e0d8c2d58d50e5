package catalog

import "errors"

var (
	// ErrRunNotFound is returned when no run matches an id or prefix.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an id prefix matches more than one run.
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
	// ErrSchemaMismatch is returned when a table does not carry the dataset schema.
	ErrSchemaMismatch = errors.New("table schema does not match the dataset schema")
	// ErrLocked is returned when the writer lock could not be acquired.
	ErrLocked = errors.New("catalog is locked by another writer")
)
