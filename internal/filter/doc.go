// Package filter evaluates per-column text filters against a table.
//
// Each non-blank filter text is compiled into a predicate according to the
// column's kind: exact match for strings, "at least" for numbers, and
// case-insensitive true/false for booleans. Text that does not parse for the
// column's kind imposes no constraint. All predicates must hold for a row to
// be kept; the input table is never modified.
package filter
