package keymap

import (
	"github.com/screenreader/core/internal/clock"
	"github.com/screenreader/core/internal/event"
	"github.com/screenreader/core/internal/keys"
)

// ModeSnapshot returns the current mode, snapshotted at the moment of
// resolution (spec §4.5: "Resolution takes the current mode (snapshotted)").
type ModeSnapshot func() event.Mode

// Dispatcher implements the keymap consumer described in spec §4.5:
//   - On key-down with a resolution: post NavigationCommand to the bus,
//     consume the key.
//   - On key-down without a resolution: post RawKey, pass through.
//   - On key-up: always post RawKey (typing-echo needs key-up).
type Dispatcher struct {
	keymap *Keymap
	mode   ModeSnapshot
	bus    *event.Bus
	clock  clock.Clock
}

// NewDispatcher creates a Dispatcher posting to bus.
func NewDispatcher(km *Keymap, mode ModeSnapshot, bus *event.Bus, clk clock.Clock) *Dispatcher {
	if clk == nil {
		clk = clock.System
	}
	return &Dispatcher{keymap: km, mode: mode, bus: bus, clock: clk}
}

// Dispatch resolves and posts a single key event. It returns true if the
// key was consumed (a NavigationCommand was resolved on key-down).
func (d *Dispatcher) Dispatch(k keys.KeyEvent) (consumed bool) {
	now := d.clock.Now()

	if !k.Down {
		d.bus.Post(event.NewRawKey(now, k))
		return false
	}

	if cmd, ok := d.keymap.Resolve(k.Modifiers, k.VK, d.mode()); ok {
		d.bus.Post(event.NewNavigationCommand(now, cmd))
		return true
	}

	d.bus.Post(event.NewRawKey(now, k))
	return false
}
