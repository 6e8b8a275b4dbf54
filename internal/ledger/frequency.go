package ledger

import (
	"strings"
	"time"

	"tally/internal/errkit"
)

// Frequency names a recurrence interval.
type Frequency string

const (
	FrequencyYearly     Frequency = "yearly"
	FrequencyHalfYearly Frequency = "half-yearly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencyBimonthly  Frequency = "bimonthly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyDaily      Frequency = "daily"
)

// Frequencies lists the accepted values in descending interval order.
func Frequencies() []Frequency {
	return []Frequency{
		FrequencyYearly,
		FrequencyHalfYearly,
		FrequencyQuarterly,
		FrequencyBimonthly,
		FrequencyMonthly,
		FrequencyWeekly,
		FrequencyDaily,
	}
}

// ParseFrequency resolves a user-supplied frequency name. "quarter-yearly" is
// accepted as an alias for quarterly.
func ParseFrequency(value string) (Frequency, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "quarter-yearly" {
		normalized = string(FrequencyQuarterly)
	}
	for _, frequency := range Frequencies() {
		if normalized == string(frequency) {
			return frequency, nil
		}
	}
	return "", errkit.Wrap(errkit.ErrValidation, "ledger", "parse frequency", "unknown frequency "+strings.TrimSpace(value), nil)
}

// advance returns the k-th occurrence after start. Steps are multiplied from
// the start date rather than accumulated so month rounding does not drift.
func (f Frequency) advance(start time.Time, k int) time.Time {
	switch f {
	case FrequencyYearly:
		return start.AddDate(k, 0, 0)
	case FrequencyHalfYearly:
		return start.AddDate(0, 6*k, 0)
	case FrequencyQuarterly:
		return start.AddDate(0, 3*k, 0)
	case FrequencyBimonthly:
		return start.AddDate(0, 2*k, 0)
	case FrequencyMonthly:
		return start.AddDate(0, k, 0)
	case FrequencyWeekly:
		return start.AddDate(0, 0, 7*k)
	default:
		return start.AddDate(0, 0, k)
	}
}

// expandDates lists the canonical occurrence dates of a recurrence within one
// year, from start to end inclusive.
func expandDates(frequency Frequency, start, end string, year int) []string {
	startDate, ok := dateInYear(start, year)
	if !ok {
		return nil
	}
	endDate, ok := dateInYear(end, year)
	if !ok {
		return nil
	}
	if endDate.Before(startDate) {
		return nil
	}

	var dates []string
	for k := 0; ; k++ {
		occurrence := frequency.advance(startDate, k)
		if occurrence.After(endDate) {
			break
		}
		dates = append(dates, occurrence.Format(CanonicalDateLayout))
	}
	return dates
}
