package assessment

import (
	"strings"
)

// StatusFilterAll is the filter literal that disables the status filter.
const StatusFilterAll = "all"

// Filter narrows a list of assessments. A nil Status matches every status and
// an empty Search matches every record.
type Filter struct {
	Search string
	Status *Status
}

// ParseStatusFilter turns "all" (or "") into a nil filter and anything else
// into the matching status.
func ParseStatusFilter(s string) (*Status, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == StatusFilterAll {
		return nil, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// StatusLabel returns the filter literal for the current status filter.
func (f Filter) StatusLabel() string {
	if f.Status == nil {
		return StatusFilterAll
	}
	return f.Status.String()
}

// Matches reports whether a passes both the search and the status filter.
// Search is a case-insensitive substring match on vendor or service name.
func (f Filter) Matches(a *Assessment) bool {
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.VendorName), term) ||
		strings.Contains(strings.ToLower(a.ServiceName), term)
}

// Apply returns the records that match f, in input order.
func (f Filter) Apply(list []*Assessment) []*Assessment {
	out := make([]*Assessment, 0, len(list))
	for _, a := range list {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// ParseQuery builds a filter and a sort state from their string forms, as
// they arrive in URL query parameters and RPC requests. A column without an
// order sorts ascending.
func ParseQuery(search, status, column, order string) (Filter, SortState, error) {
	f := Filter{Search: search}

	st, err := ParseStatusFilter(status)
	if err != nil {
		return f, SortState{}, err
	}
	f.Status = st

	if strings.TrimSpace(column) == "" {
		return f, SortState{}, nil
	}

	col, err := ParseColumn(column)
	if err != nil {
		return f, SortState{}, err
	}
	dir := Ascending
	if strings.TrimSpace(order) != "" {
		if dir, err = ParseDirection(order); err != nil {
			return f, SortState{}, err
		}
	}

	return f, SortState{Column: col, Direction: dir}, nil
}
