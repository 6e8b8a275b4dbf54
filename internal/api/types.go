package api

// Element describes a ledger entry in a transport-friendly format. Standard
// entries carry a date; recurrent templates carry frequency, start, and end.
type Element struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Date      string  `json:"date,omitempty"`
	Category  string  `json:"category"`
	Frequency string  `json:"frequency,omitempty"`
	Start     string  `json:"start,omitempty"`
	End       string  `json:"end,omitempty"`
}

// Elements groups listing results by table. Recurrent templates map to the
// occurrences they expand into.
type Elements struct {
	Standard  map[int64]Element   `json:"standard"`
	Recurrent map[int64][]Element `json:"recurrent"`
}

// AddRequest carries the fields for creating an entry. Empty optional fields
// take the service defaults (today's date, the default category, a full-year
// recurrence window).
type AddRequest struct {
	Table     string  `json:"tableName,omitempty"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Date      string  `json:"date,omitempty"`
	Category  string  `json:"category,omitempty"`
	Frequency string  `json:"frequency,omitempty"`
	Start     string  `json:"start,omitempty"`
	End       string  `json:"end,omitempty"`
}

// UpdateRequest carries a partial entry update. Nil fields are left unchanged.
type UpdateRequest struct {
	Name      *string  `json:"name,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Date      *string  `json:"date,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Frequency *string  `json:"frequency,omitempty"`
	Start     *string  `json:"start,omitempty"`
	End       *string  `json:"end,omitempty"`
}

// Empty reports whether the update carries no field changes.
func (r UpdateRequest) Empty() bool {
	return r.Name == nil && r.Value == nil && r.Date == nil && r.Category == nil &&
		r.Frequency == nil && r.Start == nil && r.End == nil
}

// CopyRequest names an entry to duplicate from one period into another.
type CopyRequest struct {
	SourcePeriod      string `json:"sourcePeriod"`
	DestinationPeriod string `json:"destinationPeriod"`
	Table             string `json:"tableName,omitempty"`
	EntryID           int64  `json:"eid"`
}

// ListRequest restricts a period listing to entries matching every filter.
type ListRequest struct {
	Filters []string `json:"filters,omitempty"`
}

// IDResponse acknowledges a mutation with the affected entry id.
type IDResponse struct {
	ID int64 `json:"id"`
}

// ElementResponse wraps a single entry.
type ElementResponse struct {
	Element Element `json:"element"`
}

// ElementsResponse wraps a period listing.
type ElementsResponse struct {
	Elements Elements `json:"elements"`
}

// PeriodsResponse lists the period names found in the data directory.
type PeriodsResponse struct {
	Periods []string `json:"periods"`
}

// ErrorResponse carries a failure description.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
