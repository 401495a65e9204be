package speech

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lestrrat-go/pdebug"
)

// CoalesceWindow is the wait applied when a drained batch is a single
// Normal-priority utterance, to pick up closely-following utterances
// before dispatching (spec §4.1 step 5).
const CoalesceWindow = 50 * time.Millisecond

// ErrorLog receives backend errors encountered while speaking; each is
// logged and skipped per spec §7 ("backend-speak-error").
type ErrorLog func(u Utterance, err error)

// Queue is the single-consumer utterance dispatcher described in spec
// §4.1. Grounded on pipeline.Pipeline's Run/Done discipline
// (github.com/peco/peco/pipeline): one goroutine owns the channel and the
// backend, producers only ever enqueue.
type Queue struct {
	backend Backend
	onError ErrorLog

	mu     sync.Mutex
	buf    []Utterance
	signal chan struct{}

	done     chan struct{}
	disposed sync.Once
}

// NewQueue creates a Queue driving backend. onError may be nil.
func NewQueue(backend Backend, onError ErrorLog) *Queue {
	if onError == nil {
		onError = func(Utterance, error) {}
	}
	return &Queue{
		backend: backend,
		onError: onError,
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Enqueue submits u for eventual playback. It never blocks or fails
// (spec §4.1 contract). An Interrupt-priority utterance also fires the
// backend's synchronous cancel immediately, so in-flight playback stops
// without waiting for the consumer loop's next tick (spec §5: "Interrupt
// cancels current playback synchronously").
func (q *Queue) Enqueue(u Utterance) {
	q.mu.Lock()
	q.buf = append(q.buf, u)
	q.mu.Unlock()

	if u.Priority == Interrupt {
		q.backend.Cancel()
	}

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Cancel stops in-progress playback immediately without enqueueing an
// utterance, for callers (e.g. the stop-speech command) that want silence
// rather than an empty utterance reaching the backend's Speak method.
func (q *Queue) Cancel() {
	q.backend.Cancel()
}

func (q *Queue) drain() []Utterance {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return nil
	}
	out := q.buf
	q.buf = nil
	return out
}

// Run drives the consumer loop (spec §4.1 algorithm). It returns when ctx
// is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-q.signal:
		}

		batch := q.drain()
		if len(batch) == 0 {
			continue
		}

		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].Priority < batch[j].Priority
		})

		if containsPriority(batch, Interrupt) {
			q.backend.Cancel()
		}

		if len(batch) == 1 && batch[0].Priority == Normal {
			batch = q.extendWithCoalesceWindow(ctx, batch)
		}

		combined := coalesceNormalRuns(batch)

		for _, u := range combined {
			if pdebug.Enabled {
				pdebug.Printf("speech.Queue: speaking %q (priority=%s)", u.Text, u.Priority)
			}
			if err := q.backend.Speak(ctx, u); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				q.onError(u, err)
			}
		}
	}
}

// extendWithCoalesceWindow implements step 5: wait up to CoalesceWindow for
// additional utterances, then drain again (non-blocking) and append.
func (q *Queue) extendWithCoalesceWindow(ctx context.Context, batch []Utterance) []Utterance {
	timer := time.NewTimer(CoalesceWindow)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return batch
	case <-timer.C:
	}

	if more := q.drain(); len(more) > 0 {
		batch = append(batch, more...)
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].Priority < batch[j].Priority
		})
	}
	return batch
}

func containsPriority(batch []Utterance, p Priority) bool {
	for _, u := range batch {
		if u.Priority == p {
			return true
		}
	}
	return false
}

// coalesceNormalRuns combines every maximal run of consecutive
// Normal-priority utterances into one utterance whose text is the runs'
// texts joined with ". ". Non-Normal utterances remain individual
// (spec §4.1 step 6).
func coalesceNormalRuns(batch []Utterance) []Utterance {
	out := make([]Utterance, 0, len(batch))
	i := 0
	for i < len(batch) {
		if batch[i].Priority != Normal {
			out = append(out, batch[i])
			i++
			continue
		}
		start := i
		var texts []string
		for i < len(batch) && batch[i].Priority == Normal {
			texts = append(texts, batch[i].Text)
			i++
		}
		merged := batch[start]
		merged.Text = strings.Join(texts, ". ")
		out = append(out, merged)
	}
	return out
}

// Dispose drains and closes the queue cleanly within the given timeout
// (spec §4.1 contract, §5 disposal timeout of 2s). Call after cancelling
// the context passed to Run.
func (q *Queue) Dispose(timeout time.Duration) {
	q.disposed.Do(func() {
		select {
		case <-q.done:
		case <-time.After(timeout):
		}
	})
}
