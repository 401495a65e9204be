package mode

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenreader/core/internal/clock"
	"github.com/screenreader/core/internal/event"
	"github.com/screenreader/core/internal/keys"
	"github.com/screenreader/core/internal/speech"
	"github.com/screenreader/core/internal/vbuffer"
)

type fakeBackend struct {
	mu     sync.Mutex
	spoken []speech.Utterance
}

func (f *fakeBackend) Speak(ctx context.Context, u speech.Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, u)
	return nil
}
func (f *fakeBackend) Cancel()                    {}
func (f *fakeBackend) SetRate(wpm int) error       { return nil }
func (f *fakeBackend) SetVoice(name string) error  { return nil }
func (f *fakeBackend) AvailableVoices() []string   { return nil }
func (f *fakeBackend) IsSpeaking() bool            { return false }

func (f *fakeBackend) snapshot() []speech.Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]speech.Utterance, len(f.spoken))
	copy(out, f.spoken)
	return out
}

func startQueue(t *testing.T, q *speech.Queue) func() {
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

type fakeExecutor struct {
	mu  sync.Mutex
	ran []keys.Command
}

func (f *fakeExecutor) Execute(cmd keys.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ran = append(f.ran, cmd)
}

func (f *fakeExecutor) snapshot() []keys.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]keys.Command, len(f.ran))
	copy(out, f.ran)
	return out
}

func newTestManager(t *testing.T, current CurrentNodeFunc) (*Manager, *fakeBackend, *recordingDevice, *fakeExecutor, func()) {
	t.Helper()
	bus := event.New(16)
	backend := &fakeBackend{}
	queue := speech.NewQueue(backend, nil)
	device := &recordingDevice{}
	loader := fakeLoader{speech.CueFocusMode: {1}, speech.CueBrowseMode: {2}}
	cues := speech.NewCuePlayer(loader, device, true)
	exec := &fakeExecutor{}
	m := NewManager(bus, queue, cues, clock.System, current, exec)
	stopQueue := startQueue(t, queue)
	return m, backend, device, exec, stopQueue
}

func navEvt(cmd keys.Command) event.ScreenReaderEvent {
	return event.NewNavigationCommand(time.Time{}, cmd)
}

func TestToggleModeBrowseToFocusPlaysCueAndSpeech(t *testing.T) {
	m, backend, device, _, stop := newTestManager(t, nil)
	defer stop()

	m.handleNavigation(navEvt(keys.ToggleMode))

	assert.Equal(t, event.Focus, m.Mode())
	require.Eventually(t, func() bool { return len(backend.snapshot()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, "Focus mode", backend.snapshot()[0].Text)
	assert.Equal(t, speech.Interrupt, backend.snapshot()[0].Priority)
	assert.Equal(t, 1, device.count())
}

func TestToggleModeFocusToBrowse(t *testing.T) {
	m, backend, _, _, stop := newTestManager(t, nil)
	defer stop()

	m.handleNavigation(navEvt(keys.ToggleMode))
	require.Eventually(t, func() bool { return len(backend.snapshot()) == 1 }, time.Second, time.Millisecond)

	m.handleNavigation(navEvt(keys.ToggleMode))

	assert.Equal(t, event.Browse, m.Mode())
	require.Eventually(t, func() bool { return len(backend.snapshot()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, "Browse mode", backend.snapshot()[1].Text)
}

func TestBrowseModePassesCommandsThroughToExecutor(t *testing.T) {
	m, _, _, exec, stop := newTestManager(t, nil)
	defer stop()

	m.handleNavigation(navEvt(keys.NextHeading))

	assert.Equal(t, []keys.Command{keys.NextHeading}, exec.snapshot())
}

func TestFocusModeSwallowsCommandsExceptActivateAndToggleAndStop(t *testing.T) {
	m, _, _, exec, stop := newTestManager(t, nil)
	defer stop()

	m.handleNavigation(navEvt(keys.ToggleMode)) // Browse -> Focus
	assert.Equal(t, event.Focus, m.Mode())

	m.handleNavigation(navEvt(keys.NextHeading))
	m.handleNavigation(navEvt(keys.StopSpeech))
	m.handleNavigation(navEvt(keys.ActivateElement))

	assert.Equal(t, []keys.Command{keys.StopSpeech, keys.ActivateElement}, exec.snapshot())
}

func TestActivateElementOnEditFieldSwitchesToFocus(t *testing.T) {
	current := &vbuffer.Node{ControlType: "Edit"}
	m, backend, _, exec, stop := newTestManager(t, func() *vbuffer.Node { return current })
	defer stop()

	m.handleNavigation(navEvt(keys.ActivateElement))

	assert.Equal(t, event.Focus, m.Mode())
	require.Eventually(t, func() bool { return len(backend.snapshot()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []keys.Command{keys.ActivateElement}, exec.snapshot())
}

func TestActivateElementOnNonEditFieldStaysInBrowse(t *testing.T) {
	current := &vbuffer.Node{ControlType: "Heading"}
	m, _, _, exec, stop := newTestManager(t, func() *vbuffer.Node { return current })
	defer stop()

	m.handleNavigation(navEvt(keys.ActivateElement))

	assert.Equal(t, event.Browse, m.Mode())
	assert.Equal(t, []keys.Command{keys.ActivateElement}, exec.snapshot())
}

func TestFocusChangedToNonFormFieldSwitchesBackToBrowse(t *testing.T) {
	m, backend, _, _, stop := newTestManager(t, nil)
	defer stop()

	m.handleNavigation(navEvt(keys.ToggleMode)) // enter Focus
	require.Eventually(t, func() bool { return len(backend.snapshot()) == 1 }, time.Second, time.Millisecond)

	m.handleFocusChanged(event.NewFocusChanged(time.Time{}, event.FocusChangedData{ControlType: "Heading"}))

	assert.Equal(t, event.Browse, m.Mode())
	require.Eventually(t, func() bool { return len(backend.snapshot()) == 2 }, time.Second, time.Millisecond)
}

func TestFocusChangedToFormFieldStaysInFocus(t *testing.T) {
	m, backend, _, _, stop := newTestManager(t, nil)
	defer stop()

	m.handleNavigation(navEvt(keys.ToggleMode))
	require.Eventually(t, func() bool { return len(backend.snapshot()) == 1 }, time.Second, time.Millisecond)

	m.handleFocusChanged(event.NewFocusChanged(time.Time{}, event.FocusChangedData{ControlType: "Edit"}))

	assert.Equal(t, event.Focus, m.Mode())
}
