package sigmf

import (
	"errors"
	"fmt"
)

var (
	// ErrMetadataParse marks metadata documents that could not be read or decoded,
	// including documents missing required fields.
	ErrMetadataParse = errors.New("metadata parse error")
	// ErrUnsupportedDatatype marks a core:datatype outside the supported set.
	ErrUnsupportedDatatype = errors.New("unsupported datatype")
	// ErrMissingDataFile marks a metadata document whose companion data file is absent.
	ErrMissingDataFile = errors.New("missing data file")
)

// ErrorClassifier allows errors to declare a stable classification that
// ingest reports and the catalog persist alongside the message.
type ErrorClassifier interface {
	ErrorKind() string
}

// Error kinds reported by ErrorKind.
const (
	KindMetadataParse       = "metadata_parse"
	KindUnsupportedDatatype = "unsupported_datatype"
	KindMissingDataFile     = "missing_data_file"
	KindUnknown             = "unknown"
)

// KindOf returns the classification of err, or KindUnknown when err does not
// carry one.
func KindOf(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return KindUnknown
}

// MetadataParseError reports a metadata document that could not be read,
// was not valid JSON, or lacked a required field.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type MetadataParseError struct {
	Path   string
	Reason string
	cause  error
}

func (e *MetadataParseError) Error() string {
	msg := e.Reason
	if e.cause != nil {
		if msg == "" {
			msg = e.cause.Error()
		} else {
			msg = msg + ": " + e.cause.Error()
		}
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrMetadataParse, msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMetadataParse, e.Path, msg)
}

func (e *MetadataParseError) Unwrap() error { return e.cause }

func (e *MetadataParseError) Is(target error) bool { return target == ErrMetadataParse }

func (e *MetadataParseError) ErrorKind() string { return KindMetadataParse }

// UnsupportedDatatypeError carries the offending core:datatype string.
type UnsupportedDatatypeError struct {
	Datatype string
}

func (e *UnsupportedDatatypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedDatatype, e.Datatype)
}

func (e *UnsupportedDatatypeError) Is(target error) bool { return target == ErrUnsupportedDatatype }

func (e *UnsupportedDatatypeError) ErrorKind() string { return KindUnsupportedDatatype }

// MissingDataFileError names the data file path that was expected next to a
// metadata document.
type MissingDataFileError struct {
	Path  string
	cause error
}

func (e *MissingDataFileError) Error() string {
	return fmt.Sprintf("%s: expected %s", ErrMissingDataFile, e.Path)
}

func (e *MissingDataFileError) Unwrap() error { return e.cause }

func (e *MissingDataFileError) Is(target error) bool { return target == ErrMissingDataFile }

func (e *MissingDataFileError) ErrorKind() string { return KindMissingDataFile }

type missingFieldError struct {
	section string
	field   string
}

func (e *missingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.section, e.field)
}
