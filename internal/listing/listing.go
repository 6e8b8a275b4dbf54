package listing

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tally/internal/api"
	"tally/internal/errkit"
	"tally/internal/ledger"
)

// Sort keys understood by Options.
const (
	SortName  = "name"
	SortValue = "value"
	SortDate  = "date"
	SortID    = "id"
)

// Options control sorting, date display, and layout of a period listing.
type Options struct {
	EntrySort    string
	CategorySort string
	DateLayout   string
	Stacked      bool
	Plain        bool
}

func (o Options) normalized() (Options, error) {
	if o.EntrySort == "" {
		o.EntrySort = SortName
	}
	switch o.EntrySort {
	case SortName, SortValue, SortDate, SortID:
	default:
		return o, errkit.Wrap(errkit.ErrValidation, "listing", "sort entries", "unknown sort key "+o.EntrySort, nil)
	}
	if o.CategorySort == "" {
		o.CategorySort = SortName
	}
	switch o.CategorySort {
	case SortName, SortValue:
	default:
		return o, errkit.Wrap(errkit.ErrValidation, "listing", "sort categories", "unknown sort key "+o.CategorySort, nil)
	}
	return o, nil
}

type row struct {
	name  string
	value float64
	date  string
	id    int64
}

type categoryGroup struct {
	name  string
	total float64
	rows  []row
}

type section struct {
	title      string
	total      float64
	categories []categoryGroup
}

var titleCaser = cases.Title(language.English)

// Render produces the listing of a period's elements. Recurrent occurrences
// are listed like dated entries, carrying their template id.
func Render(period string, elements api.Elements, opts Options) (string, error) {
	opts, err := opts.normalized()
	if err != nil {
		return "", err
	}

	var earnings, expenses []api.Element
	split := func(element api.Element) {
		if element.Value < 0 {
			expenses = append(expenses, element)
		} else {
			earnings = append(earnings, element)
		}
	}
	for _, id := range sortedKeys(elements.Standard) {
		split(elements.Standard[id])
	}
	for _, id := range sortedRecurrentKeys(elements.Recurrent) {
		for _, occurrence := range elements.Recurrent[id] {
			split(occurrence)
		}
	}

	blocks := []string{
		renderSection(buildSection("Earnings", earnings, opts), opts),
		renderSection(buildSection("Expenses", expenses, opts), opts),
	}

	var body string
	if opts.Stacked {
		body = blocks[0] + "\n" + blocks[1]
	} else {
		body = joinSideBySide(blocks[0], blocks[1])
	}
	return banner("Period "+period, body) + "\n" + body, nil
}

func sortedKeys(elements map[int64]api.Element) []int64 {
	keys := make([]int64, 0, len(elements))
	for id := range elements {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedRecurrentKeys(elements map[int64][]api.Element) []int64 {
	keys := make([]int64, 0, len(elements))
	for id := range elements {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func buildSection(title string, elements []api.Element, opts Options) section {
	sec := section{title: title}
	groups := make(map[string]*categoryGroup)
	for _, element := range elements {
		value := math.Abs(element.Value)
		group, ok := groups[element.Category]
		if !ok {
			group = &categoryGroup{name: element.Category}
			groups[element.Category] = group
		}
		group.rows = append(group.rows, row{
			name:  element.Name,
			value: value,
			date:  element.Date,
			id:    element.ID,
		})
		group.total += value
		sec.total += value
	}

	sec.categories = make([]categoryGroup, 0, len(groups))
	for _, group := range groups {
		sortRows(group.rows, opts.EntrySort)
		sec.categories = append(sec.categories, *group)
	}
	sortCategories(sec.categories, opts.CategorySort)
	return sec
}

func sortRows(rows []row, key string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch key {
		case SortValue:
			if a.value != b.value {
				return a.value < b.value
			}
		case SortDate:
			if a.date != b.date {
				return a.date < b.date
			}
		case SortID:
			if a.id != b.id {
				return a.id < b.id
			}
		default:
			if a.name != b.name {
				return a.name < b.name
			}
		}
		if a.id != b.id {
			return a.id < b.id
		}
		return a.date < b.date
	})
}

func sortCategories(categories []categoryGroup, key string) {
	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if key == SortValue && a.total != b.total {
			return a.total < b.total
		}
		return a.name < b.name
	})
}

func renderSection(sec section, opts Options) string {
	rows := make([][]string, 0, len(sec.categories)*2)
	for _, group := range sec.categories {
		rows = append(rows, []string{titleCaser.String(group.name), money(group.total), "", ""})
		for _, entry := range group.rows {
			rows = append(rows, []string{
				"  " + titleCaser.String(entry.name),
				money(entry.value),
				ledger.FormatDayDate(entry.date, opts.DateLayout),
				strconv.FormatInt(entry.id, 10),
			})
		}
	}
	footer := []string{"Total", money(sec.total), "", ""}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignRight}
	return renderTable(sec.title, []string{"Name", "Value", "Date", "ID"}, rows, footer, aligns, opts.Plain)
}

func money(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// joinSideBySide puts two rendered tables next to each other, padding the left
// block to a uniform width.
func joinSideBySide(left, right string) string {
	leftLines := strings.Split(strings.TrimRight(left, "\n"), "\n")
	rightLines := strings.Split(strings.TrimRight(right, "\n"), "\n")

	width := 0
	for _, line := range leftLines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}

	count := len(leftLines)
	if len(rightLines) > count {
		count = len(rightLines)
	}
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var leftLine, rightLine string
		if i < len(leftLines) {
			leftLine = leftLines[i]
		}
		if i < len(rightLines) {
			rightLine = rightLines[i]
		}
		padded := leftLine + strings.Repeat(" ", width-runewidth.StringWidth(leftLine))
		lines = append(lines, strings.TrimRight(padded+" | "+rightLine, " "))
	}
	return strings.Join(lines, "\n")
}

// banner centers a title line over the rendered body.
func banner(title, body string) string {
	width := 0
	for _, line := range strings.Split(body, "\n") {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	pad := (width - runewidth.StringWidth(title)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + title
}
