// Package offline queues mutating requests that could not reach the service.
//
// When the HTTP client cannot reach tallyd, the CLI stores add, update,
// remove, and copy requests in a JSON backlog file inside the data directory.
// After the next command that does get through, the backlog replays in FIFO
// order; the first replay failure stops the run and leaves the failed request
// and everything behind it queued.
package offline
