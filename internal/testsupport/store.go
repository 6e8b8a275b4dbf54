package testsupport

import (
	"context"
	"testing"

	"tally/internal/config"
	"tally/internal/ledger"
	"tally/internal/store"
)

// MustOpenRegistry opens a store registry over the config's data directory and
// registers cleanup.
func MustOpenRegistry(t testing.TB, cfg *config.Config) *store.Registry {
	t.Helper()

	registry := store.NewRegistry(cfg.Paths.DataDir)
	t.Cleanup(func() {
		registry.Close()
	})
	return registry
}

// MustOpenStore opens the named period store through a fresh registry and
// registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, period string) *store.Store {
	t.Helper()

	registry := MustOpenRegistry(t, cfg)
	s, err := registry.Open(period)
	if err != nil {
		t.Fatalf("registry.Open(%s): %v", period, err)
	}
	return s
}

// AddStandard inserts a dated entry for tests using the provided store.
func AddStandard(t testing.TB, s *store.Store, name string, value float64, date string) int64 {
	t.Helper()

	id, err := s.AddStandard(context.Background(), ledger.Entry{
		Name:     name,
		Value:    value,
		Date:     date,
		Category: "unspecified",
	})
	if err != nil {
		t.Fatalf("store.AddStandard: %v", err)
	}
	return id
}

// AddRecurrent inserts a recurrence template for tests using the provided
// store.
func AddRecurrent(t testing.TB, s *store.Store, name string, value float64, frequency ledger.Frequency, start, end string) int64 {
	t.Helper()

	id, err := s.AddRecurrent(context.Background(), ledger.RecurrentEntry{
		Name:      name,
		Value:     value,
		Frequency: frequency,
		Start:     start,
		End:       end,
		Category:  "unspecified",
	})
	if err != nil {
		t.Fatalf("store.AddRecurrent: %v", err)
	}
	return id
}
