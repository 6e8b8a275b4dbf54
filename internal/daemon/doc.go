// Package daemon ties the tallyd process together: single-instance locking,
// startup preflight checks, the period store registry, and the HTTP API
// server lifecycle.
package daemon
