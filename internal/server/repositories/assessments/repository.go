// Package assessments stores vendor risk assessments. Two implementations
// share the Repository contract: an in-memory store used by default and a
// PostgreSQL store selected by configuration.
package assessments

import (
	"context"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
)

// UpdateFunc mutates a record inside Repository.Update. Only the review
// fields (status, reviewer notes, last updated) are persisted. Returning an
// error aborts the update and leaves the stored record untouched.
type UpdateFunc func(a *assessment.Assessment) error

type Repository interface {
	// Create stores a new record. Duplicate ids or request tokens yield
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, a *assessment.Assessment) error
	// Get returns the record with id or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*assessment.Assessment, error)
	// GetByRequestToken returns the record created with token or
	// common.ErrorNotFound.
	GetByRequestToken(ctx context.Context, token string) (*assessment.Assessment, error)
	// List returns the records matching f in insertion order.
	List(ctx context.Context, f assessment.Filter) ([]*assessment.Assessment, error)
	// Update applies fn to the record with id as one atomic
	// read-modify-write and returns the stored result.
	Update(ctx context.Context, id string, fn UpdateFunc) (*assessment.Assessment, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
