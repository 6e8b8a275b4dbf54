// Package logging wraps log/slog with the handlers and helpers shared by the
// CLI, the daemon, and the release tooling.
//
// Two output formats exist: a pretty console handler that renders aligned
// key=value lines with the component attribute folded into the message prefix,
// and a JSON handler for log files and machine consumption. NewFromConfig
// mirrors terminal output into tally.log when a log directory is configured.
//
// Attr helpers (String, Int, Error, ...) keep call sites terse, and the Field*
// constants pin the structured keys used across components so log queries stay
// stable.
package logging
