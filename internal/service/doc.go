// Package service implements the ledger command surface shared by the
// in-process client and the HTTP daemon.
//
// Commands resolve the period (defaulting to the current year), normalize
// names and categories to their stored lowercase form, and apply the
// configured defaults before touching a store. Failures carry a
// classification so transports can map them: validation problems reject the
// request, missing elements report not-found.
package service
