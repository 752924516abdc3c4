package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
	"github.com/google/uuid"
)

// MemorySource keeps assessments in process memory. It backs the offline
// mode of the CLI and doubles as the intake submitter there.
type MemorySource struct {
	mu      sync.Mutex
	records []*assessment.Assessment
	now     func() time.Time
	newID   func() string
}

func NewMemorySource(list []*assessment.Assessment) *MemorySource {
	m := &MemorySource{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, a := range list {
		m.records = append(m.records, a.Clone())
	}
	return m
}

func (m *MemorySource) List(ctx context.Context, f assessment.Filter) ([]*assessment.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*assessment.Assessment, 0, len(m.records))
	for _, a := range f.Apply(m.records) {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (m *MemorySource) Update(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error) {
	if !u.Status.IsReviewDecision() {
		return nil, fmt.Errorf("%w: %s is not a review decision", common.ErrorInvalidStatus, u.Status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.records {
		if a.ID == id {
			a.Apply(u, m.now())
			return a.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: assessment %s", common.ErrorNotFound, id)
}

// Submit stores the form as a new pending assessment. A repeated request
// token returns the record created first.
func (m *MemorySource) Submit(ctx context.Context, form assessment.IntakeForm) (*reviewrpc.SubmitResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if form.RequestToken != "" {
		for _, a := range m.records {
			if a.RequestToken == form.RequestToken {
				return &reviewrpc.SubmitResponse{Assessment: a.Clone(), Uploads: []reviewrpc.Upload{}, Replayed: true}, nil
			}
		}
	}

	a, err := form.ToAssessment(m.newID(), m.now())
	if err != nil {
		return nil, err
	}
	m.records = append(m.records, a)

	return &reviewrpc.SubmitResponse{Assessment: a.Clone(), Uploads: []reviewrpc.Upload{}}, nil
}

// DocumentURL always fails: offline mode has no document store.
func (m *MemorySource) DocumentURL(ctx context.Context, id, name string) (string, error) {
	return "", common.ErrorDocumentStoreDisabled
}
