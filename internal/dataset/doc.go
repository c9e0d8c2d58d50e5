// Package dataset projects parsed SigMF recordings into flat rows and
// assembles whole archives into one table with a fixed schema.
//
// Project turns a single sigmf.ParsedFile into one row per machine-learning
// annotation (or one default row). The Assembler walks a directory tree,
// parses every metadata document concurrently, tolerates and reports per-file
// failures, and concatenates the rows in discovery order. FromFiles is the
// strict variant used when the caller names the files explicitly.
package dataset
