// Package errkit defines the error markers shared across the ledger service,
// the HTTP layer, and the release tooling.
//
// Errors are tagged with sentinel markers through Wrap so callers can classify
// failures with errors.Is: validation problems map to HTTP 400, missing
// elements to 404, and transport failures to the unreachable marker that
// drives the offline backlog.
package errkit
