package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu        sync.Mutex
	spoken    []Utterance
	cancelled int
	speakErr  error
	delay     time.Duration
}

func (f *fakeBackend) Speak(ctx context.Context, u Utterance) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, u)
	return nil
}

func (f *fakeBackend) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled++
}
func (f *fakeBackend) SetRate(wpm int) error        { return nil }
func (f *fakeBackend) SetVoice(name string) error   { return nil }
func (f *fakeBackend) AvailableVoices() []string    { return nil }
func (f *fakeBackend) IsSpeaking() bool             { return false }
func (f *fakeBackend) snapshot() []Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Utterance, len(f.spoken))
	copy(out, f.spoken)
	return out
}

func startQueue(t *testing.T, q *Queue) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = q.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestQueueCoalescesNormalPriorityWithinWindow(t *testing.T) {
	backend := &fakeBackend{}
	q := NewQueue(backend, nil)
	stop := startQueue(t, q)
	defer stop()

	q.Enqueue(New("one"))
	q.Enqueue(New("two"))
	q.Enqueue(New("three"))

	require.Eventually(t, func() bool {
		return len(backend.snapshot()) == 1
	}, time.Second, time.Millisecond)

	spoken := backend.snapshot()
	assert.Equal(t, "one. two. three", spoken[0].Text)
}

func TestQueueInterruptCancelsBeforeSpeaking(t *testing.T) {
	backend := &fakeBackend{delay: 100 * time.Millisecond}
	q := NewQueue(backend, nil)
	stop := startQueue(t, q)
	defer stop()

	q.Enqueue(New("normal one"))
	time.Sleep(10 * time.Millisecond) // let it start speaking
	q.Enqueue(NewWithPriority("urgent", Interrupt))

	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.cancelled > 0
	}, time.Second, time.Millisecond)
}

func TestQueueCancelStopsPlaybackWithoutEnqueueing(t *testing.T) {
	backend := &fakeBackend{}
	q := NewQueue(backend, nil)
	stop := startQueue(t, q)
	defer stop()

	q.Cancel()

	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.cancelled == 1
	}, time.Second, time.Millisecond)
	assert.Empty(t, backend.snapshot())
}

func TestQueuePriorityOrdering(t *testing.T) {
	backend := &fakeBackend{}
	q := NewQueue(backend, nil)

	// Exercise the sort/coalesce logic directly without the background
	// consumer loop racing the assertions.
	batch := []Utterance{
		NewWithPriority("low", Low),
		NewWithPriority("interrupt", Interrupt),
		NewWithPriority("normal-a", Normal),
		NewWithPriority("normal-b", Normal),
		NewWithPriority("high", High),
	}
	// simulate the stable sort the Run loop performs
	sorted := append([]Utterance(nil), batch...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Priority < sorted[j-1].Priority; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	combined := coalesceNormalRuns(sorted)
	require.Len(t, combined, 4)
	assert.Equal(t, "interrupt", combined[0].Text)
	assert.Equal(t, "high", combined[1].Text)
	assert.Equal(t, "normal-a. normal-b", combined[2].Text)
	assert.Equal(t, "low", combined[3].Text)
}

func TestQueueBackendErrorIsLoggedAndSkipped(t *testing.T) {
	backend := &fakeBackend{speakErr: errors.New("tts exploded")}
	var loggedErr error
	q := NewQueue(backend, func(u Utterance, err error) { loggedErr = err })
	stop := startQueue(t, q)
	defer stop()

	q.Enqueue(New("hello"))

	require.Eventually(t, func() bool { return loggedErr != nil }, time.Second, time.Millisecond)
	assert.Equal(t, "tts exploded", loggedErr.Error())
}

func TestCuePlayerMissingAssetIsNoOp(t *testing.T) {
	loader := fakeLoader{}
	device := &recordingDevice{}
	p := NewCuePlayer(loader, device, true)
	p.Play("does_not_exist")
	assert.Eventually(t, func() bool { return true }, 10*time.Millisecond, time.Millisecond)
	assert.Equal(t, 0, device.count())
}

func TestCuePlayerPlaysLoadedAsset(t *testing.T) {
	loader := fakeLoader{CueBoundary: []byte{1, 2, 3}}
	device := &recordingDevice{}
	p := NewCuePlayer(loader, device, true)
	p.Play(CueBoundary)
	require.Eventually(t, func() bool { return device.count() == 1 }, time.Second, time.Millisecond)
}

func TestCuePlayerDisabledIsNoOp(t *testing.T) {
	loader := fakeLoader{CueBoundary: []byte{1, 2, 3}}
	device := &recordingDevice{}
	p := NewCuePlayer(loader, device, false)
	p.Play(CueBoundary)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, device.count())
}

type fakeLoader map[string][]byte

func (f fakeLoader) Load(name string) ([]byte, bool) {
	d, ok := f[name]
	return d, ok
}

type recordingDevice struct {
	mu sync.Mutex
	n  int
}

func (d *recordingDevice) Play(pcm []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.n++
}

func (d *recordingDevice) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.n
}
