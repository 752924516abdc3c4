// Package submission drives one intake form through its asynchronous
// lifecycle: idle, submitting, then success or error.
package submission

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Submitting
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Submitter sends a validated form to the review service. The form carries
// the request token of the attempt.
type Submitter interface {
	Submit(ctx context.Context, form assessment.IntakeForm) (*reviewrpc.SubmitResponse, error)
}

// Snapshot is the observable state of a Controller. Error is set only in the
// Error state and Result only in the Success state.
type Snapshot struct {
	State  State
	Error  string
	Result *reviewrpc.SubmitResponse
}

func (s Snapshot) IsSubmitting() bool { return s.State == Submitting }
func (s Snapshot) IsSuccess() bool    { return s.State == Success }

type Option func(*Controller)

// WithObserver registers fn to receive every state transition in order. fn
// runs with the controller locked and must not call back into it.
func WithObserver(fn func(Snapshot)) Option {
	return func(c *Controller) { c.observer = fn }
}

// WithTokenSource replaces the request token generator.
func WithTokenSource(fn func() string) Option {
	return func(c *Controller) { c.newToken = fn }
}

type Controller struct {
	submitter Submitter
	logger    logging.Logger
	newToken  func() string
	observer  func(Snapshot)

	mu   sync.Mutex
	snap Snapshot
	// seq numbers attempts; attempt is the outstanding one, 0 when none.
	seq     uint64
	attempt uint64
	cancel  context.CancelFunc
}

func NewController(s Submitter, logger logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		submitter: s,
		logger:    logger,
		newToken:  uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *Controller) setLocked(s Snapshot) {
	c.snap = s
	if c.observer != nil {
		c.observer(s)
	}
}

// Submit validates form and, when valid, sends it. Invalid forms return a
// *assessment.ValidationError and leave the state untouched. While an
// attempt is outstanding further calls fail with
// common.ErrSubmissionInFlight. Submitter failures land in the Error state
// with the generic message and are returned for the caller's own use.
func (c *Controller) Submit(ctx context.Context, form assessment.IntakeForm) (*reviewrpc.SubmitResponse, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.snap.State == Submitting {
		c.mu.Unlock()
		return nil, common.ErrSubmissionInFlight
	}

	if form.RequestToken == "" {
		form.RequestToken = c.newToken()
	}
	c.seq++
	id := c.seq
	attemptCtx, cancel := context.WithCancel(ctx)
	c.attempt = id
	c.cancel = cancel
	c.setLocked(Snapshot{State: Submitting})
	c.mu.Unlock()

	res, err := c.submitter.Submit(attemptCtx, form)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt != id {
		// reset or cancelled while in flight
		return nil, common.ErrSubmissionCanceled
	}
	c.attempt = 0
	c.cancel = nil

	if err != nil {
		c.logger.Error(ctx, "submission failed", "error", err.Error())
		c.setLocked(Snapshot{State: Error, Error: common.GenericSubmissionError})
		return nil, err
	}

	c.setLocked(Snapshot{State: Success, Result: res})
	return res, nil
}

// Cancel aborts the outstanding attempt, if any, and moves to Error.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap.State != Submitting {
		return
	}
	c.abortLocked()
	c.setLocked(Snapshot{State: Error, Error: common.GenericSubmissionError})
}

// Reset returns to Idle from any state. An outstanding attempt is cancelled
// and its result discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.setLocked(Snapshot{State: Idle})
}

func (c *Controller) abortLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = nil
	c.attempt = 0
}

// IsCanceled reports whether err is the result of Reset or Cancel racing an
// attempt.
func IsCanceled(err error) bool {
	return errors.Is(err, common.ErrSubmissionCanceled)
}
