// Package store persists ledger entries in SQLite, one database file per
// period.
//
// A Store manages the connection to a single period database: the
// standard_entries table for dated one-off entries and the recurrent_entries
// table for templates that expand into occurrences. Both tables keep
// AUTOINCREMENT ids so element ids start at 1 per table and are never reused
// within a period.
//
// The Registry sits above the Stores and owns the data directory. It opens
// period databases lazily on first use, caches the handles, and lists the
// periods that exist on disk. Period names double as file names, so the
// Registry validates them before touching the filesystem.
//
// Schema changes ship as numbered files under migrations/; applied versions
// are recorded in schema_migrations inside each period database.
package store
