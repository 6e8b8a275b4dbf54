package ledger_test

import (
	"errors"
	"testing"

	"tally/internal/errkit"
	"tally/internal/ledger"
)

func TestParseFiltersRejectsMalformedItem(t *testing.T) {
	_, err := ledger.ParseFilters([]string{"categoryclothes"})
	if err == nil {
		t.Fatal("expected error for item without separator")
	}
	if !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestParseFiltersRejectsUnknownField(t *testing.T) {
	if _, err := ledger.ParseFilters([]string{"mood=grim"}); err == nil {
		t.Fatal("expected error for unknown filter field")
	}
}

func TestFiltersMatchFields(t *testing.T) {
	entry := ledger.Entry{Name: "pants", Value: -99, Date: "01-15", Category: "clothes"}

	cases := []struct {
		name  string
		items []string
		want  bool
	}{
		{"category substring", []string{"category=cloth"}, true},
		{"category case-insensitive", []string{"category=CLOTHES"}, true},
		{"category miss", []string{"category=groceries"}, false},
		{"name regex", []string{"name=^pa"}, true},
		{"date prefix", []string{"date=01-"}, true},
		{"value", []string{"value=-99"}, true},
		{"conjunction", []string{"category=clothes", "name=pants"}, true},
		{"conjunction miss", []string{"category=clothes", "name=shirt"}, false},
	}
	for _, tc := range cases {
		filters, err := ledger.ParseFilters(tc.items)
		if err != nil {
			t.Fatalf("%s: ParseFilters returned error: %v", tc.name, err)
		}
		if got := filters.Match(entry); got != tc.want {
			t.Fatalf("%s: Match = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
	filters, err := ledger.ParseFilters(nil)
	if err != nil {
		t.Fatalf("ParseFilters returned error: %v", err)
	}
	if !filters.Match(ledger.Entry{Name: "anything"}) {
		t.Fatal("expected empty filters to match")
	}
}
