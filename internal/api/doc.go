// Package api defines wire-format types and converters for the HTTP layer.
// It translates ledger models into transport-friendly DTOs shared by the
// daemon's handlers and both client implementations.
//
// Response shapes mirror the command surface: {"id"} for mutations,
// {"element"} for single reads, {"elements"} for listings grouped by table,
// {"periods"} for the period index, and {"error"} for failures. Integer map
// keys encode as JSON strings, so listings arrive as {"1": {...}, "2": {...}}.
package api
