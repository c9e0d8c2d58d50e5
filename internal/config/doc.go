// Package config loads, normalizes, and validates sigview configuration.
//
// Configuration lives in a TOML file (by default ~/.config/sigview/config.toml,
// falling back to ./sigview.toml). Load applies repository defaults, expands
// "~" in path fields, honours the SIGVIEW_ARCHIVE_DIR environment override, and
// validates every section before returning. CreateSample writes the embedded
// sample document used by `sigview config init`.
package config
