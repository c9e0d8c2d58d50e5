// Package sigmf loads SigMF recording metadata.
//
// A recording is a pair of files sharing a base name: a JSON metadata document
// (".sigmf-meta" by default) and a binary sample file (".sigmf-data"). This
// package decodes the metadata document into typed structs, resolves the
// declared sample encoding, and verifies that the companion data file exists.
// It never reads the sample data itself; callers only need its size to derive
// a sample count.
//
// Parsing is strict and all-or-nothing: ParseFile either returns a fully
// populated ParsedFile or one of the classified errors declared in errors.go.
package sigmf
