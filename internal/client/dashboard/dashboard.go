// Package dashboard is the admin view over all assessments: it keeps the
// records as loaded from a DataSource and derives the visible rows from the
// current search, status filter and sort.
package dashboard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/client/review"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
)

// DataSource loads assessments and records reviewer decisions.
type DataSource interface {
	List(ctx context.Context, f assessment.Filter) ([]*assessment.Assessment, error)
	Update(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error)
}

type Dashboard struct {
	source   DataSource
	records  []*assessment.Assessment
	filter   assessment.Filter
	sort     assessment.SortState
	selected string
}

func New(source DataSource) *Dashboard {
	return &Dashboard{source: source}
}

// Load replaces the records with everything the source holds. The current
// search, filter, sort and selection survive.
func (d *Dashboard) Load(ctx context.Context) error {
	list, err := d.source.List(ctx, assessment.Filter{})
	if err != nil {
		return err
	}
	d.records = list
	return nil
}

// Records returns every loaded record in source order.
func (d *Dashboard) Records() []*assessment.Assessment {
	return append([]*assessment.Assessment(nil), d.records...)
}

// Rows is the visible table: filtered, then sorted.
func (d *Dashboard) Rows() []*assessment.Assessment {
	return assessment.View(d.records, d.filter, d.sort)
}

func (d *Dashboard) Filter() assessment.Filter {
	return d.filter
}

func (d *Dashboard) SortState() assessment.SortState {
	return d.sort
}

func (d *Dashboard) SetSearch(term string) {
	d.filter.Search = term
}

// SetStatusFilter accepts a status literal or "all".
func (d *Dashboard) SetStatusFilter(s string) error {
	st, err := assessment.ParseStatusFilter(s)
	if err != nil {
		return err
	}
	d.filter.Status = st
	return nil
}

// ToggleSort advances col through unsorted, ascending and descending. Any
// other active column is dropped and col starts at ascending.
func (d *Dashboard) ToggleSort(col assessment.Column) assessment.SortState {
	d.sort = d.sort.Toggle(col)
	return d.sort
}

// Open selects the row at index (zero based, as shown by Rows) and returns
// its detail modal.
func (d *Dashboard) Open(index int) (*review.Modal, error) {
	rows := d.Rows()
	if index < 0 || index >= len(rows) {
		return nil, fmt.Errorf("%w: no row %d", common.ErrorInvalidRequest, index+1)
	}
	return d.OpenByID(rows[index].ID)
}

// OpenByID selects the record with id and returns its detail modal.
func (d *Dashboard) OpenByID(id string) (*review.Modal, error) {
	a := d.find(id)
	if a == nil {
		return nil, fmt.Errorf("%w: assessment %s", common.ErrorNotFound, id)
	}
	d.selected = id

	return review.NewModal(a, d.Close, func(ctx context.Context, u assessment.StatusUpdate) error {
		return d.UpdateStatus(ctx, id, u)
	}), nil
}

// Selected returns the open record, or nil.
func (d *Dashboard) Selected() *assessment.Assessment {
	if d.selected == "" {
		return nil
	}
	return d.find(d.selected)
}

// Close clears the selection.
func (d *Dashboard) Close() {
	d.selected = ""
}

// UpdateStatus forwards the decision to the source, replaces the record with
// the one returned and closes the detail view. On error nothing changes.
func (d *Dashboard) UpdateStatus(ctx context.Context, id string, u assessment.StatusUpdate) error {
	updated, err := d.source.Update(ctx, id, u)
	if err != nil {
		return err
	}

	for i, a := range d.records {
		if a.ID == updated.ID {
			d.records[i] = updated
			break
		}
	}
	d.selected = ""
	return nil
}

func (d *Dashboard) find(id string) *assessment.Assessment {
	for _, a := range d.records {
		if a.ID == id {
			return a
		}
	}
	return nil
}
