// Package mode implements the Browse/Focus state machine (C15, spec §4.10):
// the process-wide gate deciding which navigation commands reach the
// quick-nav executor versus pass through to the focused application, and the
// mode-toggle/auto-switch side effects (cue + Interrupt-priority speech).
//
// Grounded on the teacher's Peco struct (github.com/peco/peco/state.go):
// a small set of mutex-guarded mode flags consulted on every keystroke,
// generalized from peco's single SingleKeyJump/selection-mode flags to the
// spec's two-state Browse/Focus machine with its own transition table.
package mode

import (
	"sync"

	"github.com/screenreader/core/internal/clock"
	"github.com/screenreader/core/internal/event"
	"github.com/screenreader/core/internal/keys"
	"github.com/screenreader/core/internal/speech"
	"github.com/screenreader/core/internal/vbuffer"
)

// Executor runs a navigation command once the mode manager has decided it
// is allowed through (spec §4.10: "pass through ... Browse consumes →
// QuickNav"). Implemented by the top-level app wiring quick-nav, the
// cursor, Say-All and the Elements-List dialog to commands.
type Executor interface {
	Execute(cmd keys.Command)
}

// CurrentNodeFunc returns the node the cursor currently sits on, or nil.
// Consulted only for ActivateElement (spec §4.10: "command on node whose
// control-type is an edit field").
type CurrentNodeFunc func() *vbuffer.Node

// Manager owns the Browse/Focus state and subscribes to the bus's
// navigation-command and focus-changed notifications to drive it.
type Manager struct {
	bus      *event.Bus
	queue    *speech.Queue
	cues     *speech.CuePlayer
	clock    clock.Clock
	current  CurrentNodeFunc
	executor Executor

	mu   sync.Mutex
	mode event.Mode
}

// NewManager creates a Manager in the initial Browse state (spec §4.10).
// current and executor may be nil in tests that only exercise mode
// transitions in isolation.
func NewManager(bus *event.Bus, queue *speech.Queue, cues *speech.CuePlayer, c clock.Clock, current CurrentNodeFunc, executor Executor) *Manager {
	return &Manager{
		bus:      bus,
		queue:    queue,
		cues:     cues,
		clock:    c,
		current:  current,
		executor: executor,
		mode:     event.Browse,
	}
}

// Start registers the manager's bus subscriptions. Call once during
// startup wiring.
func (m *Manager) Start() {
	m.bus.OnNavigation(m.handleNavigation)
	m.bus.OnFocus(m.handleFocusChanged)
}

// Mode returns the current mode.
func (m *Manager) Mode() event.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *Manager) handleNavigation(evt event.ScreenReaderEvent) {
	cmd := evt.Navigation.Command

	if cmd == keys.ToggleMode {
		m.toggle()
		return
	}
	if cmd == keys.StopSpeech {
		m.run(cmd)
		return
	}

	if m.Mode() == event.Focus {
		// spec §4.10: every other command is swallowed in Focus mode,
		// except ActivateElement is not blocked (enables entering a
		// nested field from within the focused control).
		if cmd == keys.ActivateElement {
			m.run(cmd)
		}
		return
	}

	if cmd == keys.ActivateElement && m.current != nil {
		if n := m.current(); n != nil && n.IsEditField() {
			m.switchTo(event.Focus, "ActivateElement on edit field")
		}
	}
	m.run(cmd)
}

func (m *Manager) handleFocusChanged(evt event.ScreenReaderEvent) {
	if m.Mode() != event.Focus {
		return
	}
	if !vbuffer.IsFormFieldControlType(evt.Focus.ControlType) {
		m.switchTo(event.Browse, "focus left form field")
	}
}

func (m *Manager) run(cmd keys.Command) {
	if m.executor != nil {
		m.executor.Execute(cmd)
	}
}

func (m *Manager) toggle() {
	if m.Mode() == event.Browse {
		m.switchTo(event.Focus, "ToggleMode")
	} else {
		m.switchTo(event.Browse, "ToggleMode")
	}
}

// switchTo transitions the mode, posting ModeChanged and playing the
// cue + Interrupt-priority speech pair the spec's transition table
// requires for every Browse<->Focus edge.
func (m *Manager) switchTo(newMode event.Mode, reason string) {
	m.mu.Lock()
	if m.mode == newMode {
		m.mu.Unlock()
		return
	}
	m.mode = newMode
	m.mu.Unlock()

	now := m.clock.Now()
	m.bus.Post(event.NewModeChanged(now, newMode, reason))

	if newMode == event.Focus {
		m.cues.Play(speech.CueFocusMode)
		m.queue.Enqueue(speech.NewWithPriority("Focus mode", speech.Interrupt))
	} else {
		m.cues.Play(speech.CueBrowseMode)
		m.queue.Enqueue(speech.NewWithPriority("Browse mode", speech.Interrupt))
	}
}
