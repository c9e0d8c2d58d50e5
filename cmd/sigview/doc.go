// Package main hosts the sigview CLI entrypoint and command graph.
//
// The Cobra-based command tree assembles SigMF archives into datasets,
// filters and summarizes them, exports them to CSV or Arrow, and manages the
// catalog of saved runs. It centralizes configuration resolution, logger
// construction, and dataset sourcing (a fresh assembly, a catalog run, or an
// exported Arrow file) so subcommands can focus on presentation.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through dedicated commands or flags here.
package main
