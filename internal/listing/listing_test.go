package listing_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tally/internal/api"
	"tally/internal/errkit"
	"tally/internal/listing"
)

func sampleElements() api.Elements {
	return api.Elements{
		Standard: map[int64]api.Element{
			1: {ID: 1, Name: "new shoes", Value: -49.95, Date: "03-09", Category: "clothes"},
			2: {ID: 2, Name: "lottery prize", Value: 250, Date: "04-01", Category: "unspecified"},
			3: {ID: 3, Name: "beer", Value: -5.5, Date: "05-20", Category: "bars"},
		},
		Recurrent: map[int64][]api.Element{
			1: {
				{ID: 1, Name: "rent", Value: -1000, Date: "01-02", Category: "housing"},
				{ID: 1, Name: "rent", Value: -1000, Date: "02-02", Category: "housing"},
			},
		},
	}
}

func TestRenderShowsSectionsAndTotals(t *testing.T) {
	out, err := listing.Render("2026", sampleElements(), listing.Options{Plain: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"Period 2026",
		"Earnings",
		"Expenses",
		"New Shoes",
		"Lottery Prize",
		"Rent",
		"49.95",
		"250.00",
		"2055.45",
		"Total",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}

	if strings.Contains(out, "-49.95") {
		t.Fatalf("expected section values without signs, got:\n%s", out)
	}
	if !strings.Contains(out, "Clothes") || !strings.Contains(out, "Housing") {
		t.Fatalf("expected title-cased category rows, got:\n%s", out)
	}
}

func TestRenderSideBySideByDefault(t *testing.T) {
	out, err := listing.Render("2026", sampleElements(), listing.Options{Plain: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	joined := false
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, " | ") {
			joined = true
			break
		}
	}
	if !joined {
		t.Fatalf("expected side-by-side join separator, got:\n%s", out)
	}
}

func TestRenderStackedLayout(t *testing.T) {
	out, err := listing.Render("2026", sampleElements(), listing.Options{Plain: true, Stacked: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, " | ") {
		t.Fatalf("expected stacked layout without join separator, got:\n%s", out)
	}
	earnings := strings.Index(out, "Earnings")
	expenses := strings.Index(out, "Expenses")
	if earnings < 0 || expenses < 0 || earnings > expenses {
		t.Fatalf("expected Earnings section before Expenses, got:\n%s", out)
	}
}

func TestRenderSortsEntriesByValue(t *testing.T) {
	elements := api.Elements{
		Standard: map[int64]api.Element{
			1: {ID: 1, Name: "expensive", Value: -100, Date: "01-01", Category: "stuff"},
			2: {ID: 2, Name: "cheap", Value: -1, Date: "01-02", Category: "stuff"},
			3: {ID: 3, Name: "midrange", Value: -50, Date: "01-03", Category: "stuff"},
		},
		Recurrent: map[int64][]api.Element{},
	}
	out, err := listing.Render("2026", elements, listing.Options{Plain: true, EntrySort: listing.SortValue})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	cheap := strings.Index(out, "Cheap")
	midrange := strings.Index(out, "Midrange")
	expensive := strings.Index(out, "Expensive")
	if !(cheap < midrange && midrange < expensive) {
		t.Fatalf("expected ascending value order, got:\n%s", out)
	}
}

func TestRenderAppliesDateLayout(t *testing.T) {
	out, err := listing.Render("2026", sampleElements(), listing.Options{Plain: true, DateLayout: "02.01."})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "09.03.") {
		t.Fatalf("expected reformatted date 09.03., got:\n%s", out)
	}
}

func TestRenderRejectsUnknownSortKeys(t *testing.T) {
	if _, err := listing.Render("2026", sampleElements(), listing.Options{EntrySort: "color"}); !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("expected validation error for entry sort, got %v", err)
	}
	if _, err := listing.Render("2026", sampleElements(), listing.Options{CategorySort: "date"}); !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("expected validation error for category sort, got %v", err)
	}
}

func TestTerminalDetection(t *testing.T) {
	if listing.Terminal(&bytes.Buffer{}) {
		t.Fatal("expected buffer writer to be reported as non-terminal")
	}
}
