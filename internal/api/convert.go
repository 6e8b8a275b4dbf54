package api

import (
	"tally/internal/ledger"
)

// FromEntry converts a standard entry to its API representation.
func FromEntry(entry ledger.Entry) Element {
	return Element{
		ID:       entry.ID,
		Name:     entry.Name,
		Value:    entry.Value,
		Date:     entry.Date,
		Category: entry.Category,
	}
}

// FromRecurrentEntry converts a recurrent template to its API representation.
func FromRecurrentEntry(entry ledger.RecurrentEntry) Element {
	return Element{
		ID:        entry.ID,
		Name:      entry.Name,
		Value:     entry.Value,
		Category:  entry.Category,
		Frequency: string(entry.Frequency),
		Start:     entry.Start,
		End:       entry.End,
	}
}

// FromOccurrences converts expanded occurrences, keeping the template id on
// every element.
func FromOccurrences(occurrences []ledger.Entry) []Element {
	elements := make([]Element, 0, len(occurrences))
	for _, occurrence := range occurrences {
		elements = append(elements, FromEntry(occurrence))
	}
	return elements
}

// IsRecurrent reports whether the element represents a recurrent template.
func (e Element) IsRecurrent() bool {
	return e.Frequency != ""
}
