package access

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrHostStopped is returned by Submit when the host's worker is no longer
// running (shutting down or already stopped).
var ErrHostStopped = errors.New("access: host stopped")

type workItem struct {
	fn       func() (interface{}, error)
	resultCh chan result
}

type result struct {
	val interface{}
	err error
}

// Host is the single-threaded-apartment worker described in spec §4.7: all
// platform accessibility calls must originate from the one goroutine that
// runs Start, so COM objects, cache requests, and event registrations live
// and die on it. Modeled on the teacher's pipeline.Pipeline Run/Done
// shutdown discipline (github.com/peco/peco/pipeline), collapsed to a
// single stage since there is only one worker, not a chain.
type Host struct {
	workCh chan workItem
	done   chan struct{}
	cancel context.CancelFunc
}

// NewHost creates a Host. Call Start before Submit.
func NewHost() *Host {
	return &Host{
		workCh: make(chan workItem),
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine, bound to ctx.
func (h *Host) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	go h.run(ctx)
}

func (h *Host) run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.drain()
			return
		case w := <-h.workCh:
			val, err := safeCall(w.fn)
			w.resultCh <- result{val, err}
		}
	}
}

// drain replies to any work already queued at shutdown time rather than
// leaving submitters blocked (spec §4.7: "disposal drains outstanding work").
func (h *Host) drain() {
	for {
		select {
		case w := <-h.workCh:
			w.resultCh <- result{nil, ErrHostStopped}
		default:
			return
		}
	}
}

func safeCall(fn func() (interface{}, error)) (val interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("access: worker panic: %v", r)
		}
	}()
	return fn()
}

// Submit marshals work onto the worker and blocks for its result. Calls
// serialize in submission order (spec §4.7).
func (h *Host) Submit(work func() (interface{}, error)) (interface{}, error) {
	resultCh := make(chan result, 1)
	select {
	case h.workCh <- workItem{fn: work, resultCh: resultCh}:
	case <-h.done:
		return nil, ErrHostStopped
	}

	select {
	case r := <-resultCh:
		return r.val, r.err
	case <-h.done:
		return nil, ErrHostStopped
	}
}

// Dispose stops the worker, waiting up to timeout for it to exit (spec
// §4.7: "stops the worker within five seconds").
func (h *Host) Dispose(timeout time.Duration) error {
	if h.cancel != nil {
		h.cancel()
	}
	select {
	case <-h.done:
		return nil
	case <-time.After(timeout):
		return errors.New("access: host did not stop within timeout")
	}
}
