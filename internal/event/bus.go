package event

import (
	"context"
	"sync"
	"time"

	"github.com/lestrrat-go/pdebug"
)

// FocusCoalesceWindow is the draining window applied to FocusChanged
// events before dispatch (spec §4.3).
const FocusCoalesceWindow = 30 * time.Millisecond

// Subscriber receives dispatched events. Subscribers for the three
// notification kinds the bus exposes (focus processed, navigation command
// received, raw key received) are registered via Bus.OnFocus,
// Bus.OnNavigation, Bus.OnRawKey; any other event kind is delivered to the
// catch-all subscriber registered via Bus.OnAny, so that LiveRegionChanged,
// ModeChanged, TypingEcho, StructureChanged, PropertyChanged and
// Notification events still reach interested components.
type Subscriber func(ScreenReaderEvent)

// Bus is a multi-producer, single-consumer channel of ScreenReaderEvents
// with a fixed buffer size set by New (spec §4.3); it is not unbounded
// (see Post). Grounded on the teacher's hub.Hub: one
// channel carries every event kind (rather than hub's one-channel-per-kind),
// since the spec requires a single consumer loop that can coalesce
// FocusChanged events against the rest of the stream in arrival order.
type Bus struct {
	ch chan ScreenReaderEvent

	mutex        sync.RWMutex
	onFocus      []Subscriber
	onNavigation []Subscriber
	onRawKey     []Subscriber
	onAny        []Subscriber

	errLog func(error)
}

// Option configures a Bus at construction.
type Option func(*Bus)

// WithErrorLog installs a callback invoked whenever a subscriber panics;
// defaults to a no-op.
func WithErrorLog(f func(error)) Option {
	return func(b *Bus) { b.errLog = f }
}

// New creates a Bus whose channel holds up to bufsiz events (0 is
// allowed and makes every Post wait until Run receives the event).
func New(bufsiz int, opts ...Option) *Bus {
	b := &Bus{
		ch: make(chan ScreenReaderEvent, bufsiz),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Chan exposes the bus's underlying channel, following the teacher's
// QueryCh/DrawCh style of exposing channels directly (github.com/peco/peco/hub).
// Tests and bootstrap code may read from it directly for assertions;
// production code should prefer Post/OnFocus/OnNavigation/OnRawKey/OnAny.
func (b *Bus) Chan() chan ScreenReaderEvent {
	return b.ch
}

// Post sends an event onto the bus with a plain channel send: it returns
// at once while the buffer has room, and blocks the producer while the
// buffer is full until Run receives an event. Events are never dropped
// (unlike the hook's hot path in C4, which uses a bounded ring buffer
// with drop-oldest instead).
func (b *Bus) Post(evt ScreenReaderEvent) {
	b.ch <- evt
}

// OnFocus registers a subscriber for the "focus processed" notification.
func (b *Bus) OnFocus(s Subscriber) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.onFocus = append(b.onFocus, s)
}

// OnNavigation registers a subscriber for "navigation command received".
func (b *Bus) OnNavigation(s Subscriber) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.onNavigation = append(b.onNavigation, s)
}

// OnRawKey registers a subscriber for "raw key received".
func (b *Bus) OnRawKey(s Subscriber) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.onRawKey = append(b.onRawKey, s)
}

// OnAny registers a subscriber invoked for every event kind other than the
// three with dedicated registries above.
func (b *Bus) OnAny(s Subscriber) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.onAny = append(b.onAny, s)
}

func (b *Bus) dispatch(evt ScreenReaderEvent) {
	if pdebug.Enabled {
		g := pdebug.Marker("Bus.dispatch (%s)", evt.Kind)
		defer g.End()
	}

	var subs []Subscriber
	b.mutex.RLock()
	switch evt.Kind {
	case FocusChanged:
		subs = b.onFocus
	case NavigationCommand:
		subs = b.onNavigation
	case RawKey:
		subs = b.onRawKey
	default:
		subs = b.onAny
	}
	b.mutex.RUnlock()

	for _, s := range subs {
		b.callSafely(s, evt)
	}
}

// callSafely invokes a subscriber, recovering from panics and reporting
// them through errLog rather than letting them stop the consumer loop
// (spec §4.3: "Errors inside a subscriber are caught and logged").
func (b *Bus) callSafely(s Subscriber, evt ScreenReaderEvent) {
	defer func() {
		if r := recover(); r != nil && b.errLog != nil {
			b.errLog(panicError{r})
		}
	}()
	s(evt)
}

type panicError struct{ v any }

func (p panicError) Error() string {
	return "panic in bus subscriber"
}

// Run drives the bus's single consumer loop (spec §4.3):
//  1. Read one event.
//  2. If it is FocusChanged, wait 30ms, then drain: among drained events
//     keep only the last FocusChanged; any non-focus event encountered
//     during drain is dispatched first (preserving arrival order for
//     non-focus events). After draining, dispatch the kept focus event.
//  3. Otherwise dispatch immediately.
//
// Run returns when ctx is cancelled.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-b.ch:
			if evt.Kind == FocusChanged {
				b.drainFocus(ctx, evt)
			} else {
				b.dispatch(evt)
			}
		}
	}
}

func (b *Bus) drainFocus(ctx context.Context, first ScreenReaderEvent) {
	timer := time.NewTimer(FocusCoalesceWindow)
	defer timer.Stop()

	kept := first
	for {
		select {
		case <-ctx.Done():
			b.dispatch(kept)
			return
		case <-timer.C:
			// Window elapsed: drain whatever is already queued without
			// blocking, then dispatch the kept focus event.
			b.drainAvailable(&kept)
			b.dispatch(kept)
			return
		case evt := <-b.ch:
			if evt.Kind == FocusChanged {
				kept = evt
			} else {
				b.dispatch(evt)
			}
		}
	}
}

// drainAvailable consumes every event currently queued (non-blocking),
// dispatching non-focus events immediately and keeping only the last
// FocusChanged seen into *kept.
func (b *Bus) drainAvailable(kept *ScreenReaderEvent) {
	for {
		select {
		case evt := <-b.ch:
			if evt.Kind == FocusChanged {
				*kept = evt
			} else {
				b.dispatch(evt)
			}
		default:
			return
		}
	}
}
