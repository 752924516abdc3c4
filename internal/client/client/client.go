package client

import (
	"context"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
)

// Client is everything the CLI needs from the review backend.
type Client interface {
	List(ctx context.Context, f assessment.Filter) ([]*assessment.Assessment, error)
	Update(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error)
	Submit(ctx context.Context, form assessment.IntakeForm) (*reviewrpc.SubmitResponse, error)
	DocumentURL(ctx context.Context, id, name string) (string, error)
	Ping(ctx context.Context) error
	Close() error
}
