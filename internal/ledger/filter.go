package ledger

import (
	"regexp"
	"strconv"
	"strings"

	"tally/internal/errkit"
)

// Filter matches one entry field against a case-insensitive pattern.
type Filter struct {
	Key     string
	Pattern string
	matcher *regexp.Regexp
}

// Filters is the conjunction of individual field filters.
type Filters []Filter

var filterKeys = map[string]struct{}{
	"name":     {},
	"category": {},
	"date":     {},
	"value":    {},
}

// ParseFilters parses key=value items into field filters. Keys and patterns
// are lowercased; patterns are regular expressions matched anywhere in the
// field.
func ParseFilters(items []string) (Filters, error) {
	if len(items) == 0 {
		return nil, nil
	}
	filters := make(Filters, 0, len(items))
	for _, item := range items {
		key, pattern, found := strings.Cut(item, "=")
		if !found {
			return nil, errkit.Wrap(errkit.ErrValidation, "ledger", "parse filters", "invalid filter format "+strconv.Quote(item), nil)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, ok := filterKeys[key]; !ok {
			return nil, errkit.Wrap(errkit.ErrValidation, "ledger", "parse filters", "unknown filter field "+strconv.Quote(key), nil)
		}
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		matcher, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, errkit.Wrap(errkit.ErrValidation, "ledger", "parse filters", "invalid filter pattern "+strconv.Quote(pattern), err)
		}
		filters = append(filters, Filter{Key: key, Pattern: pattern, matcher: matcher})
	}
	return filters, nil
}

// Match reports whether the entry satisfies every filter.
func (fs Filters) Match(e Entry) bool {
	for _, filter := range fs {
		if !filter.match(e) {
			return false
		}
	}
	return true
}

func (f Filter) match(e Entry) bool {
	if f.matcher == nil {
		return true
	}
	var field string
	switch f.Key {
	case "name":
		field = e.Name
	case "category":
		field = e.Category
	case "date":
		field = e.Date
	case "value":
		field = strconv.FormatFloat(e.Value, 'f', -1, 64)
	default:
		return true
	}
	return f.matcher.MatchString(field)
}
