// Package export writes dataset tables to disk as CSV or as an Arrow IPC
// stream, optionally wrapped in zstd or lz4 compression.
//
// Both encoders go through the same Arrow record so column types stay
// consistent between formats. Files are replaced atomically.
package export
