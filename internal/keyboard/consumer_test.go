package keyboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/screenreader/core/internal/keys"
)

func TestConsumerDrainsQueuedEvents(t *testing.T) {
	queue := NewRingBuffer()
	var mu sync.Mutex
	var seen []keys.VKCode

	c := NewConsumer(queue, func(k keys.KeyEvent) bool {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, k.VK)
		return true
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()

	queue.Push(keys.KeyEvent{VK: 1})
	queue.Push(keys.KeyEvent{VK: 2})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, time.Millisecond)

	cancel()
	<-done
}
