package assessment

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/vendorrisk/internal/common"
)

// Column names a sortable dashboard column.
type Column string

const (
	ColumnSubmittedAt    Column = "submittedAt"
	ColumnVendorName     Column = "vendorName"
	ColumnServiceName    Column = "serviceName"
	ColumnDeploymentType Column = "deploymentType"
	ColumnStatus         Column = "status"
	ColumnLastUpdated    Column = "lastUpdated"
)

// Columns lists the sortable columns in table order.
func Columns() []Column {
	return []Column{
		ColumnSubmittedAt,
		ColumnVendorName,
		ColumnServiceName,
		ColumnDeploymentType,
		ColumnStatus,
		ColumnLastUpdated,
	}
}

// ParseColumn accepts a column name case-insensitively.
func ParseColumn(s string) (Column, error) {
	for _, c := range Columns() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrorInvalidColumn, s)
}

// Direction is one position of the tri-state sort cycle.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// ParseDirection accepts "asc", "desc" and "" / "none".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return Unsorted, nil
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return Unsorted, fmt.Errorf("%w: sort order %q", common.ErrorInvalidRequest, s)
}

// SortState is the single active sort column and its direction. The zero
// value is unsorted.
type SortState struct {
	Column    Column
	Direction Direction
}

// Toggle advances the cycle for col. The same column goes
// unsorted -> ascending -> descending -> unsorted; a different column
// replaces the sort and starts at ascending.
func (s SortState) Toggle(col Column) SortState {
	if s.Column != col || s.Direction == Unsorted {
		return SortState{Column: col, Direction: Ascending}
	}
	if s.Direction == Ascending {
		return SortState{Column: col, Direction: Descending}
	}
	return SortState{}
}

// Active reports whether any sort applies.
func (s SortState) Active() bool {
	return s.Column != "" && s.Direction != Unsorted
}

// compareBy returns the ascending order for col. Text columns compare
// naturally and ignore case.
func compareBy(col Column) func(a, b *Assessment) int {
	switch col {
	case ColumnSubmittedAt:
		return func(a, b *Assessment) int { return a.SubmittedAt.Compare(b.SubmittedAt) }
	case ColumnVendorName:
		return func(a, b *Assessment) int { return naturalCompare(a.VendorName, b.VendorName) }
	case ColumnServiceName:
		return func(a, b *Assessment) int { return naturalCompare(a.ServiceName, b.ServiceName) }
	case ColumnDeploymentType:
		return func(a, b *Assessment) int { return naturalCompare(a.DeploymentType, b.DeploymentType) }
	case ColumnStatus:
		return func(a, b *Assessment) int { return naturalCompare(a.Status.String(), b.Status.String()) }
	case ColumnLastUpdated:
		return func(a, b *Assessment) int { return a.LastUpdated.Compare(b.LastUpdated) }
	}
	return nil
}

// Sort returns a sorted copy of list. Ties keep their input order, and an
// inactive state returns the input order unchanged.
func (s SortState) Sort(list []*Assessment) []*Assessment {
	out := slices.Clone(list)
	if !s.Active() {
		return out
	}
	cmp := compareBy(s.Column)
	if cmp == nil {
		return out
	}
	if s.Direction == Descending {
		asc := cmp
		cmp = func(a, b *Assessment) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// View derives the displayed rows: filter first, then sort.
func View(list []*Assessment, f Filter, s SortState) []*Assessment {
	return s.Sort(f.Apply(list))
}
