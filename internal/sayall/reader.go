// Package sayall implements the Say-All reader task (C15, spec §4.15): a
// cancellable goroutine that walks the cursor line by line, enqueueing each
// non-empty line for speech until the document ends or it is cancelled.
//
// Grounded on the teacher's pipeline.Pipeline Run/Done discipline
// (github.com/peco/peco/pipeline): one goroutine per run, a context
// cancellation as the sole stop signal, and a "starting a new run cancels
// the old one" restart rule mirroring pipeline.Pipeline.Run being reentrant
// per invocation.
package sayall

import (
	"context"
	"runtime"
	"sync"

	"github.com/screenreader/core/internal/speech"
	"github.com/screenreader/core/internal/vbuffer"
)

// Reader drives a single Say-All pass over a cursor. Safe for concurrent
// use; Start/Stop may be called from the bus consumer goroutine while a
// prior run is still unwinding on its own goroutine.
type Reader struct {
	queue *speech.Queue

	mu      sync.Mutex
	cancel  context.CancelFunc
	reading bool
}

// NewReader creates a Reader enqueuing lines onto queue.
func NewReader(queue *speech.Queue) *Reader {
	return &Reader{queue: queue}
}

// IsReading reports whether a Say-All pass is currently in progress.
func (r *Reader) IsReading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reading
}

// Start begins a new Say-All pass over cur, cancelling any run already in
// progress first (spec §4.15: "starting Say-All while one is in progress
// cancels the prior reader before starting").
func (r *Reader) Start(ctx context.Context, cur *vbuffer.Cursor) {
	r.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.reading = true
	r.mu.Unlock()

	go r.run(runCtx, cur)
}

// Stop cancels the in-progress pass, if any. Called on any key event,
// StopSpeech, or a cursor-changing command (spec §4.15 step 4).
func (r *Reader) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *Reader) run(ctx context.Context, cur *vbuffer.Cursor) {
	defer r.finish()

	r.speakIfNonEmpty(cur.CurrentLine())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := cur.NextLine()
		if res.Cue == vbuffer.CueBoundary {
			return
		}

		r.speakIfNonEmpty(res.Text)

		// Yield a scheduling quantum so a concurrent Stop() takes effect
		// before the next line is queued (spec §4.15 step 3).
		select {
		case <-ctx.Done():
			return
		default:
			runtime.Gosched()
		}
	}
}

func (r *Reader) speakIfNonEmpty(text string) {
	if text == "" {
		return
	}
	r.queue.Enqueue(speech.New(text))
}

func (r *Reader) finish() {
	r.mu.Lock()
	r.reading = false
	r.mu.Unlock()
}
