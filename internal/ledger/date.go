package ledger

import (
	"strconv"
	"time"

	"tally/internal/errkit"
)

// CanonicalDateLayout is the storage form of month-day dates. Zero-padded so
// lexicographic order matches calendar order.
const CanonicalDateLayout = "01-02"

// Recurrence bounds applied when a template omits them.
const (
	YearStart = "01-01"
	YearEnd   = "12-31"
)

// ParseDayDate parses a month-day value using the supplied layout and returns
// the canonical form. An empty layout means the canonical layout.
func ParseDayDate(value, layout string) (string, error) {
	if layout == "" {
		layout = CanonicalDateLayout
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return "", errkit.Wrap(errkit.ErrValidation, "ledger", "parse date", "invalid date format", err)
	}
	return parsed.Format(CanonicalDateLayout), nil
}

// FormatDayDate renders a canonical month-day value using the supplied
// layout. Values that fail to parse are returned unchanged.
func FormatDayDate(canonical, layout string) string {
	if layout == "" || layout == CanonicalDateLayout {
		return canonical
	}
	parsed, err := time.Parse(CanonicalDateLayout, canonical)
	if err != nil {
		return canonical
	}
	return parsed.Format(layout)
}

// DefaultDate returns today's canonical month-day value.
func DefaultDate(now time.Time) string {
	return now.Format(CanonicalDateLayout)
}

// dateInYear anchors a canonical month-day value in the given year.
func dateInYear(canonical string, year int) (time.Time, bool) {
	parsed, err := time.Parse(CanonicalDateLayout, canonical)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
}

// DefaultPeriod names the period for the current year.
func DefaultPeriod(now time.Time) string {
	return strconv.Itoa(now.Year())
}

// ValidatePeriod rejects period names that cannot serve as database file
// stems.
func ValidatePeriod(name string) error {
	if name == "" {
		return errkit.Wrap(errkit.ErrValidation, "ledger", "validate period", "period name must not be empty", nil)
	}
	for _, r := range name {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '-' || r == '_':
		default:
			return errkit.Wrap(errkit.ErrValidation, "ledger", "validate period", "invalid period name "+name, nil)
		}
	}
	return nil
}

// PeriodYear extracts the calendar year from a numeric period name. The
// fallback year is used for period names that are not plain years.
func PeriodYear(name string, fallback int) int {
	year, err := strconv.Atoi(name)
	if err != nil || year < 1 || year > 9999 {
		return fallback
	}
	return year
}
