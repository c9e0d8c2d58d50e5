// Package catalog persists assembled datasets in SQLite so they can be
// filtered and summarized later without re-walking the archive.
//
// Each saved dataset is a run: the ingest report (root, counts, duration),
// every row of the table in assembly order, and the per-file failures. Runs
// are identified by a UUID; lookups accept any unique prefix of it.
//
// Several readers may use the catalog at once. Writers take an advisory file
// lock next to the database so concurrent `dataset --save` invocations do not
// interleave their transactions.
//
// Migrations live in migrations/*.sql and are applied in lexical order on
// Open. Add a new numbered file rather than editing an applied one.
package catalog
