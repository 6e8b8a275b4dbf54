package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tally/internal/config"
	"tally/internal/ledger"
)

func parseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid element id %q", arg)
	}
	return id, nil
}

func parseValue(arg string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", arg)
	}
	return value, nil
}

// entryDate converts a user-entered date from the configured layout into the
// canonical storage form. Empty input passes through so the service applies
// its defaults.
func entryDate(value string, cfg *config.Config) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	canonical, err := ledger.ParseDayDate(value, cfg.Client.DateFormat)
	if err != nil {
		return "", errors.New("Invalid date format.")
	}
	return canonical, nil
}

// checkFilters rejects items without a key=value shape before they reach the
// service, matching the message users see for malformed filters.
func checkFilters(items []string) error {
	for _, item := range items {
		if !strings.Contains(item, "=") {
			return fmt.Errorf("Invalid filter format: %s.", item)
		}
	}
	return nil
}
