package keyboard

import (
	"context"
	"time"

	"github.com/screenreader/core/internal/keys"
)

// DispatchFunc resolves and posts a single key event; satisfied by
// (*keymap.Dispatcher).Dispatch. Declared as a func type here (rather than
// importing package keymap) so package keyboard stays a leaf: only the
// hook implementation and its bounded queue live here.
type DispatchFunc func(k keys.KeyEvent) (consumed bool)

// Consumer drains a RingBuffer and hands each event to a DispatchFunc.
// This is execution context 2 from spec §5 ("Input consumer task --
// resolves commands, posts to bus"): the only code that touches modifier
// tracking, command resolution, and bus dispatch for keyboard input.
type Consumer struct {
	queue    *RingBuffer
	dispatch DispatchFunc
	idleWait time.Duration
}

// NewConsumer creates a Consumer.
func NewConsumer(queue *RingBuffer, dispatch DispatchFunc) *Consumer {
	return &Consumer{queue: queue, dispatch: dispatch, idleWait: 5 * time.Millisecond}
}

// Run pops events until ctx is cancelled, blocking efficiently on the
// queue's notify channel between pops rather than busy-polling.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		for {
			k, ok := c.queue.Pop()
			if !ok {
				break
			}
			c.dispatch(k)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.queue.Notify():
		case <-time.After(c.idleWait):
		}
	}
}
