// Package client gives the CLI a uniform command surface over two transports.
//
// The local client runs the service in process against the data directory.
// The HTTP client talks to a running tallyd, carrying basic auth credentials
// and a request id, and classifies transport failures as unreachable so the
// CLI can divert mutating commands into the offline backlog.
package client
