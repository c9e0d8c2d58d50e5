// Package preflight provides readiness checks for the filesystem paths and
// catalog that sigview depends on.
//
// The CLI "sigview doctor" command runs RunAll and prints each Result. Checks
// never create or modify anything: a missing catalog or log directory passes
// as long as it could be created on first use.
package preflight
