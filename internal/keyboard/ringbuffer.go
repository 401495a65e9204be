// Package keyboard implements the low-level keyboard hook's bounded
// capture queue (C4) and the Win32 hook installation shim. Grounded on the
// teacher's channel-based producer/consumer split (input.go), generalized
// from termbox's blocking event channel to a fixed-capacity, drop-oldest
// ring buffer, since the spec requires the hook callback to never block
// (spec §4.4, §5: "the hook callback's hot path ... no heap allocation, no
// logging, no synchronization beyond the queue's internal atomics").
package keyboard

import (
	"sync"

	"github.com/screenreader/core/internal/keys"
)

// QueueCapacity is the bounded capacity of the hook's key event queue
// (spec §4.4).
const QueueCapacity = 256

// RingBuffer is a fixed-capacity, drop-oldest queue of key events. Pushes
// never block: once full, the oldest entry is silently discarded in favor
// of the newest (spec §4.4: "Queue overflow drops the oldest key --
// acceptable because screen reader responsiveness outranks perfect echo").
//
// Push is called from the hook callback and must not allocate on the heap
// in steady state; the backing array is pre-allocated at construction.
type RingBuffer struct {
	mu       sync.Mutex
	buf      [QueueCapacity]keys.KeyEvent
	head     int // index of the oldest element
	size     int
	dropped  uint64
	notifyCh chan struct{}
}

// NewRingBuffer creates an empty, full-capacity RingBuffer.
func NewRingBuffer() *RingBuffer {
	return &RingBuffer{notifyCh: make(chan struct{}, 1)}
}

// Push appends k, overwriting the oldest entry if the buffer is full. It
// never blocks.
func (r *RingBuffer) Push(k keys.KeyEvent) {
	r.mu.Lock()
	if r.size == QueueCapacity {
		// overwrite oldest
		r.buf[r.head] = k
		r.head = (r.head + 1) % QueueCapacity
		r.dropped++
	} else {
		idx := (r.head + r.size) % QueueCapacity
		r.buf[idx] = k
		r.size++
	}
	r.mu.Unlock()

	select {
	case r.notifyCh <- struct{}{}:
	default:
	}
}

// Pop removes and returns the oldest event, if any.
func (r *RingBuffer) Pop() (keys.KeyEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size == 0 {
		return keys.KeyEvent{}, false
	}
	k := r.buf[r.head]
	r.head = (r.head + 1) % QueueCapacity
	r.size--
	return k, true
}

// Notify returns a channel that receives a value whenever the buffer
// transitions from empty to non-empty (best-effort; consumers should still
// loop on Pop until it returns false).
func (r *RingBuffer) Notify() <-chan struct{} {
	return r.notifyCh
}

// Dropped returns the number of events dropped due to overflow so far.
func (r *RingBuffer) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Len returns the current number of queued events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}
