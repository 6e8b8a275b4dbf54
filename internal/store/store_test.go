package store_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"tally/internal/errkit"
	"tally/internal/ledger"
	"tally/internal/testsupport"
)

func TestStandardEntryLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg, "2026")

	ctx := context.Background()
	id, err := s.AddStandard(ctx, ledger.Entry{
		Name:     "pineapple",
		Value:    -5,
		Date:     "01-02",
		Category: "groceries",
	})
	if err != nil {
		t.Fatalf("AddStandard failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first entry to get id 1, got %d", id)
	}

	fetched, err := s.GetStandard(ctx, id)
	if err != nil {
		t.Fatalf("GetStandard failed: %v", err)
	}
	if fetched.Name != "pineapple" || fetched.Value != -5 || fetched.Date != "01-02" || fetched.Category != "groceries" {
		t.Fatalf("unexpected fetched entry: %#v", fetched)
	}

	fetched.Value = -6
	fetched.Category = "food"
	if err := s.UpdateStandard(ctx, fetched); err != nil {
		t.Fatalf("UpdateStandard failed: %v", err)
	}
	updated, err := s.GetStandard(ctx, id)
	if err != nil {
		t.Fatalf("GetStandard after update failed: %v", err)
	}
	if updated.Value != -6 || updated.Category != "food" {
		t.Fatalf("update not persisted: %#v", updated)
	}

	if err := s.RemoveStandard(ctx, id); err != nil {
		t.Fatalf("RemoveStandard failed: %v", err)
	}
	if _, err := s.GetStandard(ctx, id); !errors.Is(err, errkit.ErrNotFound) {
		t.Fatalf("expected not-found after remove, got %v", err)
	}
}

func TestRecurrentEntryLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg, "2026")

	ctx := context.Background()
	id, err := s.AddRecurrent(ctx, ledger.RecurrentEntry{
		Name:      "rent",
		Value:     -1000,
		Frequency: ledger.FrequencyMonthly,
		Start:     "01-02",
		End:       "07-01",
		Category:  "housing",
	})
	if err != nil {
		t.Fatalf("AddRecurrent failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first template to get id 1, got %d", id)
	}

	fetched, err := s.GetRecurrent(ctx, id)
	if err != nil {
		t.Fatalf("GetRecurrent failed: %v", err)
	}
	if fetched.Frequency != ledger.FrequencyMonthly || fetched.Start != "01-02" || fetched.End != "07-01" {
		t.Fatalf("unexpected fetched template: %#v", fetched)
	}

	fetched.Frequency = ledger.FrequencyWeekly
	if err := s.UpdateRecurrent(ctx, fetched); err != nil {
		t.Fatalf("UpdateRecurrent failed: %v", err)
	}
	updated, err := s.GetRecurrent(ctx, id)
	if err != nil {
		t.Fatalf("GetRecurrent after update failed: %v", err)
	}
	if updated.Frequency != ledger.FrequencyWeekly {
		t.Fatalf("update not persisted: %#v", updated)
	}

	if err := s.RemoveRecurrent(ctx, id); err != nil {
		t.Fatalf("RemoveRecurrent failed: %v", err)
	}
	if _, err := s.GetRecurrent(ctx, id); !errors.Is(err, errkit.ErrNotFound) {
		t.Fatalf("expected not-found after remove, got %v", err)
	}
}

func TestTableIDsAreIndependent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg, "2026")

	standardID := testsupport.AddStandard(t, s, "coffee", -3, "02-14")
	recurrentID := testsupport.AddRecurrent(t, s, "rent", -1000, ledger.FrequencyMonthly, "01-01", "12-31")

	if standardID != 1 {
		t.Fatalf("expected standard id 1, got %d", standardID)
	}
	if recurrentID != 1 {
		t.Fatalf("expected recurrent id 1, got %d", recurrentID)
	}
}

func TestIDsSurviveReopenAndAreNotReused(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	registry := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	s, err := registry.Open("2026")
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	first := testsupport.AddStandard(t, s, "one", 1, "01-01")
	second := testsupport.AddStandard(t, s, "two", 2, "01-02")
	if err := s.RemoveStandard(ctx, second); err != nil {
		t.Fatalf("RemoveStandard: %v", err)
	}
	if err := registry.Close(); err != nil {
		t.Fatalf("registry.Close: %v", err)
	}

	reopened, err := registry.Open("2026")
	if err != nil {
		t.Fatalf("registry.Open after close: %v", err)
	}
	third := testsupport.AddStandard(t, reopened, "three", 3, "01-03")
	if third != 3 {
		t.Fatalf("expected AUTOINCREMENT to skip removed id, got %d", third)
	}

	kept, err := reopened.GetStandard(ctx, first)
	if err != nil {
		t.Fatalf("GetStandard after reopen: %v", err)
	}
	if kept.Name != "one" {
		t.Fatalf("expected persisted entry, got %#v", kept)
	}
}

func TestAddValidatesEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg, "2026")

	ctx := context.Background()
	if _, err := s.AddStandard(ctx, ledger.Entry{Name: "", Value: 1, Date: "01-01"}); !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := s.AddStandard(ctx, ledger.Entry{Name: "x", Value: 1, Date: "13-40"}); !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
	if _, err := s.AddRecurrent(ctx, ledger.RecurrentEntry{
		Name:      "x",
		Value:     1,
		Frequency: "fortnightly",
		Start:     "01-01",
		End:       "12-31",
	}); !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("expected validation error for unknown frequency, got %v", err)
	}
}

func TestListOrdersByID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg, "2026")

	names := []string{"alpha", "bravo", "charlie"}
	for i, name := range names {
		testsupport.AddStandard(t, s, name, float64(i+1), "03-01")
	}

	entries, err := s.ListStandard(context.Background())
	if err != nil {
		t.Fatalf("ListStandard failed: %v", err)
	}
	if len(entries) != len(names) {
		t.Fatalf("expected %d entries, got %d", len(names), len(entries))
	}
	for i, entry := range entries {
		if entry.ID != int64(i+1) || entry.Name != names[i] {
			t.Fatalf("unexpected order at %d: %#v", i, entry)
		}
	}
}

func TestRemoveMissingReturnsNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg, "2026")

	ctx := context.Background()
	if err := s.RemoveStandard(ctx, 42); !errors.Is(err, errkit.ErrNotFound) {
		t.Fatalf("expected not-found for missing standard entry, got %v", err)
	}
	if err := s.UpdateRecurrent(ctx, ledger.RecurrentEntry{
		ID:        42,
		Name:      "ghost",
		Value:     1,
		Frequency: ledger.FrequencyYearly,
		Start:     "01-01",
		End:       "12-31",
	}); !errors.Is(err, errkit.ErrNotFound) {
		t.Fatalf("expected not-found for missing template, got %v", err)
	}
}

func TestRegistryListsPeriodsOnDisk(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	registry := testsupport.MustOpenRegistry(t, cfg)

	periods, err := registry.Periods()
	if err != nil {
		t.Fatalf("Periods on fresh directory failed: %v", err)
	}
	if len(periods) != 0 {
		t.Fatalf("expected no periods before first open, got %v", periods)
	}

	for _, period := range []string{"2027", "2025", "2026"} {
		if _, err := registry.Open(period); err != nil {
			t.Fatalf("registry.Open(%s): %v", period, err)
		}
	}

	periods, err = registry.Periods()
	if err != nil {
		t.Fatalf("Periods failed: %v", err)
	}
	want := []string{"2025", "2026", "2027"}
	if len(periods) != len(want) {
		t.Fatalf("expected %v, got %v", want, periods)
	}
	for i := range want {
		if periods[i] != want[i] {
			t.Fatalf("expected sorted periods %v, got %v", want, periods)
		}
	}

	if _, err := os.Stat(registry.PeriodPath("2025")); err != nil {
		t.Fatalf("expected period database on disk: %v", err)
	}
}

func TestRegistryRejectsUnsafePeriodNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	registry := testsupport.MustOpenRegistry(t, cfg)

	for _, period := range []string{"", "..", "2026/extra", "a b"} {
		if _, err := registry.Open(period); !errors.Is(err, errkit.ErrValidation) {
			t.Fatalf("expected validation error for period %q, got %v", period, err)
		}
	}
}

func TestRegistryCachesHandles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	registry := testsupport.MustOpenRegistry(t, cfg)

	first, err := registry.Open("2026")
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	second, err := registry.Open("2026")
	if err != nil {
		t.Fatalf("registry.Open again: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached store handle on repeat open")
	}
}
