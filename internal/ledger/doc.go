// Package ledger defines the domain model shared by the stores, the command
// service, and the renderers.
//
// Entries are signed amounts (positive earnings, negative expenses) dated
// within a yearly period. The standard table holds one-off entries; the
// recurrent table holds templates that expand into dated occurrences at
// listing time. Dates are month-day values; the period supplies the year.
package ledger
