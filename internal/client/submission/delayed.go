package submission

import (
	"context"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
)

// DefaultDelay is the simulated round trip of an offline submission.
const DefaultDelay = time.Second

// DelayedSubmitter waits Delay before handing the form to Next. The wait
// honours context cancellation.
type DelayedSubmitter struct {
	Delay time.Duration
	Next  Submitter
}

func NewDelayedSubmitter(next Submitter) *DelayedSubmitter {
	return &DelayedSubmitter{Delay: DefaultDelay, Next: next}
}

func (d *DelayedSubmitter) Submit(ctx context.Context, form assessment.IntakeForm) (*reviewrpc.SubmitResponse, error) {
	t := time.NewTimer(d.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
	}

	return d.Next.Submit(ctx, form)
}
