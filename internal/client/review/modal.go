// Package review holds the state of the assessment detail modal: a read-only
// view of one record, a notes draft and the three reviewer decisions.
package review

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
)

// UpdateFunc receives a reviewer decision for the open assessment.
type UpdateFunc func(ctx context.Context, u assessment.StatusUpdate) error

// Action is one decision button.
type Action struct {
	Label  string
	Status assessment.Status
}

var actions = []Action{
	{Label: "Request More Info", Status: assessment.StatusNeedsInfo},
	{Label: "Reject", Status: assessment.StatusRejected},
	{Label: "Approve", Status: assessment.StatusApproved},
}

// Actions lists the decisions in display order.
func Actions() []Action {
	return append([]Action(nil), actions...)
}

type Modal struct {
	assessment *assessment.Assessment
	notes      string
	onClose    func()
	onUpdate   UpdateFunc
}

// NewModal opens a for review. The notes draft starts from the stored
// reviewer notes.
func NewModal(a *assessment.Assessment, onClose func(), onUpdate UpdateFunc) *Modal {
	return &Modal{
		assessment: a,
		notes:      a.Notes(),
		onClose:    onClose,
		onUpdate:   onUpdate,
	}
}

func (m *Modal) Assessment() *assessment.Assessment {
	return m.assessment
}

func (m *Modal) Notes() string {
	return m.notes
}

// SetNotes replaces the draft. Notes are free text.
func (m *Modal) SetNotes(notes string) {
	m.notes = notes
}

func (m *Modal) Actions() []Action {
	return Actions()
}

// Act sends the decision together with the current draft, once.
func (m *Modal) Act(ctx context.Context, status assessment.Status) error {
	for _, a := range actions {
		if a.Status == status {
			return m.onUpdate(ctx, assessment.StatusUpdate{Status: status, ReviewerNotes: m.notes})
		}
	}
	return fmt.Errorf("%w: %s is not a review action", common.ErrorInvalidStatus, status)
}

func (m *Modal) RequestMoreInfo(ctx context.Context) error {
	return m.Act(ctx, assessment.StatusNeedsInfo)
}

func (m *Modal) Reject(ctx context.Context) error {
	return m.Act(ctx, assessment.StatusRejected)
}

func (m *Modal) Approve(ctx context.Context) error {
	return m.Act(ctx, assessment.StatusApproved)
}

// Close dismisses the modal without saving the draft.
func (m *Modal) Close() {
	if m.onClose != nil {
		m.onClose()
	}
}
