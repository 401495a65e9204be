package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostSubmitReturnsResult(t *testing.T) {
	h := NewHost()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx)

	val, err := h.Submit(func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestHostSubmitPropagatesError(t *testing.T) {
	h := NewHost()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx)

	boom := errors.New("boom")
	_, err := h.Submit(func() (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestHostSubmitSerializesOrder(t *testing.T) {
	h := NewHost()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		val, err := h.Submit(func() (interface{}, error) {
			order = append(order, i)
			return nil, nil
		})
		require.NoError(t, err)
		assert.Nil(t, val)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestHostDisposeStopsWorker(t *testing.T) {
	h := NewHost()
	h.Start(context.Background())

	_, err := h.Submit(func() (interface{}, error) { return nil, nil })
	require.NoError(t, err)

	require.NoError(t, h.Dispose(time.Second))

	_, err = h.Submit(func() (interface{}, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrHostStopped)
}
