package verifykit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/optimode/verifykit/internal/addr"
	"github.com/optimode/verifykit/types"
	"github.com/optimode/verifykit/verify"
)

// DefaultDebounce is the quiet period applied between the last Trigger call
// and the verification request it issues.
const DefaultDebounce = 500 * time.Millisecond

// Controller coalesces a rapid stream of candidate email strings into
// debounced remote verification requests. It guarantees last-trigger-wins:
// at most one request's outcome can ever reach observable state, always the
// most recently issued one. A superseded request is cancelled, and its
// settlement, even if it arrives late, is discarded.
//
// Call Close when done; afterwards no timer fires and no callback runs.
type Controller struct {
	verifier verify.Verifier
	debounce time.Duration
	onResult func(types.Result)
	onError  func(error)
	log      zerolog.Logger

	mu     sync.Mutex
	gen    uint64             // bumped on every trigger/reset; tags the live request
	timer  *time.Timer        // pending debounce timer, nil when none
	cancel context.CancelFunc // cancels the in-flight request, nil when none
	state  State
	closed bool
}

// NewController creates a Controller around the given verifier.
func NewController(v verify.Verifier, opts ...ControllerOption) *Controller {
	c := &Controller{
		verifier: v,
		debounce: DefaultDebounce,
		log:      zerolog.Nop(),
		state:    State{Phase: types.PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Trigger submits a candidate email string.
//
// Any pending debounce timer is cleared first, so an older trigger's delayed
// execution can never fire after a newer one. Empty or structurally
// incomplete input (no @ sign) synchronously cancels everything and returns
// the controller to the idle phase without issuing a request. Complete input
// schedules a request after the debounce delay; a delay of zero issues it
// immediately on a fresh goroutine.
func (c *Controller) Trigger(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.stopTimerLocked()
	c.gen++

	a := addr.Parse(email)
	if !a.Complete {
		// No request is issued and no stale result or error lingers.
		c.cancelInFlightLocked()
		c.state = State{Phase: types.PhaseIdle}
		return
	}

	gen := c.gen
	if c.debounce <= 0 {
		go c.execute(gen, a)
		return
	}
	c.timer = time.AfterFunc(c.debounce, func() { c.execute(gen, a) })
}

// Reset cancels any pending debounce timer and any in-flight request, clears
// result and error, and returns to the idle phase. Idempotent.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Close disposes of the controller: it resets and latches closed. After
// Close returns, no debounce timer fires and no callback executes for
// requests issued earlier. Safe to call multiple times.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.closed = true
	return nil
}

// State returns a snapshot of the observable state. Result is populated
// only in the resolved phase, ErrorMessage only in the errored phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if c.state.Result != nil {
		cp := *c.state.Result
		s.Result = &cp
	}
	return s
}

// execute opens the request tagged with gen. It runs on the debounce timer's
// goroutine, or on a fresh one when the delay is disabled.
func (c *Controller) execute(gen uint64, a addr.Addr) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return // superseded while waiting
	}

	// The previous request, if still in flight, is now superseded: cancel it
	// so its outcome can never reach observable state.
	c.cancelInFlightLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = State{Phase: types.PhaseValidating}

	reqID := uuid.NewString()
	c.log.Debug().Str("requestID", reqID).Str("email", a.Raw).Msg("verification request issued")
	c.mu.Unlock()

	res, err := c.verifier.Verify(ctx, a.Normalized())
	cancel()

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		c.log.Debug().Str("requestID", reqID).Msg("stale outcome discarded")
		return
	}
	c.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Cancellation is not an error: the request was superseded or
			// the controller was reset. Stay silent.
			c.mu.Unlock()
			return
		}
		c.state = State{Phase: types.PhaseErrored, ErrorMessage: errorMessage(err)}
		onError := c.onError
		c.mu.Unlock()

		c.log.Debug().Str("requestID", reqID).Err(err).Msg("verification failed")
		if onError != nil {
			onError(err)
		}
		return
	}

	c.state = State{Phase: types.PhaseResolved, Result: &res}
	onResult := c.onResult
	c.mu.Unlock()

	c.log.Debug().Str("requestID", reqID).Str("verdict", res.Verdict).Msg("verification resolved")
	if onResult != nil {
		onResult(res)
	}
}

func (c *Controller) resetLocked() {
	c.gen++
	c.stopTimerLocked()
	c.cancelInFlightLocked()
	c.state = State{Phase: types.PhaseIdle}
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) cancelInFlightLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
