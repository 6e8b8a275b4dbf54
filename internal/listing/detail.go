package listing

import (
	"fmt"
	"strconv"
	"strings"

	"tally/internal/api"
	"tally/internal/ledger"
)

// Detail renders the aligned field block for a single element. Values keep
// their sign here; the section listing is what folds signs away.
func Detail(element api.Element, dateLayout string) string {
	type field struct {
		label string
		value string
	}
	fields := []field{
		{"Name", titleCaser.String(element.Name)},
		{"Value", strconv.FormatFloat(element.Value, 'f', 2, 64)},
	}
	if element.IsRecurrent() {
		fields = append(fields,
			field{"Frequency", element.Frequency},
			field{"Start", ledger.FormatDayDate(element.Start, dateLayout)},
			field{"End", ledger.FormatDayDate(element.End, dateLayout)},
		)
	} else {
		fields = append(fields, field{"Date", ledger.FormatDayDate(element.Date, dateLayout)})
	}
	fields = append(fields, field{"Category", element.Category})

	width := 0
	for _, f := range fields {
		if len(f.label) > width {
			width = len(f.label)
		}
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s: %s", width, f.label, f.value)
	}
	return b.String()
}
