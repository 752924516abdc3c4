package assessments

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
)

// MemoryRepository keeps assessments in process memory. Records are cloned
// on the way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*assessment.Assessment
	tokens  map[string]string
	order   []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*assessment.Assessment),
		tokens:  make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, a *assessment.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[a.ID]; ok {
		return fmt.Errorf("%w: assessment %s", common.ErrorAlreadyExists, a.ID)
	}
	if a.RequestToken != "" {
		if _, ok := r.tokens[a.RequestToken]; ok {
			return fmt.Errorf("%w: request token", common.ErrorAlreadyExists)
		}
		r.tokens[a.RequestToken] = a.ID
	}

	r.records[a.ID] = a.Clone()
	r.order = append(r.order, a.ID)
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*assessment.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: assessment %s", common.ErrorNotFound, id)
	}
	return a.Clone(), nil
}

func (r *MemoryRepository) GetByRequestToken(ctx context.Context, token string) (*assessment.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.tokens[token]
	if !ok || token == "" {
		return nil, fmt.Errorf("%w: request token", common.ErrorNotFound)
	}
	return r.records[id].Clone(), nil
}

func (r *MemoryRepository) List(ctx context.Context, f assessment.Filter) ([]*assessment.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*assessment.Assessment, 0, len(r.order))
	for _, id := range r.order {
		a := r.records[id]
		if f.Matches(a) {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, fn UpdateFunc) (*assessment.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: assessment %s", common.ErrorNotFound, id)
	}

	draft := cur.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}

	next := cur.Clone()
	next.Status = draft.Status
	next.ReviewerNotes = draft.ReviewerNotes
	next.LastUpdated = draft.LastUpdated

	r.records[id] = next
	return next.Clone(), nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), nil
}
