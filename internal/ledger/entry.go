package ledger

import (
	"strings"

	"tally/internal/errkit"
)

// Table identifies one of the two entry tables of a period.
type Table string

const (
	TableStandard  Table = "standard"
	TableRecurrent Table = "recurrent"
)

// ParseTable resolves a user-supplied table name. An empty name selects the
// standard table.
func ParseTable(name string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(TableStandard):
		return TableStandard, nil
	case string(TableRecurrent):
		return TableRecurrent, nil
	default:
		return "", errkit.Wrap(errkit.ErrValidation, "ledger", "parse table", "unknown table name "+strings.TrimSpace(name), nil)
	}
}

// Entry is a single dated ledger item. Value carries the sign: positive for
// earnings, negative for expenses. Date is in canonical month-day form.
type Entry struct {
	ID       int64
	Name     string
	Value    float64
	Date     string
	Category string
}

// Validate checks the fields a store is about to persist.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errkit.Wrap(errkit.ErrValidation, "ledger", "validate entry", "name must not be empty", nil)
	}
	if _, err := ParseDayDate(e.Date, CanonicalDateLayout); err != nil {
		return err
	}
	return nil
}

// RecurrentEntry is a template that expands into dated occurrences.
type RecurrentEntry struct {
	ID        int64
	Name      string
	Value     float64
	Frequency Frequency
	Start     string
	End       string
	Category  string
}

// Validate checks the fields a store is about to persist.
func (e RecurrentEntry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errkit.Wrap(errkit.ErrValidation, "ledger", "validate entry", "name must not be empty", nil)
	}
	if _, err := ParseFrequency(string(e.Frequency)); err != nil {
		return err
	}
	start, err := ParseDayDate(e.Start, CanonicalDateLayout)
	if err != nil {
		return err
	}
	end, err := ParseDayDate(e.End, CanonicalDateLayout)
	if err != nil {
		return err
	}
	if start > end {
		return errkit.Wrap(errkit.ErrValidation, "ledger", "validate entry", "start date is after end date", nil)
	}
	return nil
}

// Occurrences expands the template into dated entries for the given year,
// one per frequency interval from start to end inclusive. The expanded
// entries carry the template's id.
func (e RecurrentEntry) Occurrences(year int) []Entry {
	dates := expandDates(e.Frequency, e.Start, e.End, year)
	occurrences := make([]Entry, 0, len(dates))
	for _, date := range dates {
		occurrences = append(occurrences, Entry{
			ID:       e.ID,
			Name:     e.Name,
			Value:    e.Value,
			Date:     date,
			Category: e.Category,
		})
	}
	return occurrences
}

// NormalizeName lowercases a name or category for storage. Display casing is
// applied by the renderers.
func NormalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
