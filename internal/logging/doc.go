// Package logging assembles structured slog loggers and formatting helpers used
// across sigview.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so ingest code can tag log lines
// with run identifiers and file paths. The package also provides a no-op
// logger for tests and library callers that pass a nil logger.
//
// CLI output goes to stdout; logs go to stderr so that exported data can be
// piped without interleaving.
package logging
