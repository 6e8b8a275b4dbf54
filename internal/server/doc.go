// Package server exposes the ledger service over HTTP for tallyd.
//
// Routes mirror the command surface: /periods for the period listing,
// /periods/{period} for adding and listing entries, and
// /periods/{period}/{table}/{eid} for element access. Requests and responses
// use the wire shapes from internal/api. Basic auth is enforced when the
// configuration carries credentials.
package server
