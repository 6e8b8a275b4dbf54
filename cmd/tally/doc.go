// Package main hosts the tally CLI entrypoint and command graph.
//
// The cobra-based command tree translates terminal invocations into ledger
// commands, executed in-process against the data directory or over HTTP
// against a running tallyd, depending on the configured service mode. It
// centralizes configuration resolution, client selection, and the offline
// backlog so subcommands can focus on user experience instead of wiring.
package main
