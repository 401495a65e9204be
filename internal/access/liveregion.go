package access

import (
	"strings"
	"sync"
	"time"

	"github.com/screenreader/core/internal/clock"
	"github.com/screenreader/core/internal/event"
)

// PoliteThrottle is the minimum interval between two polite announcements
// from the same source (spec §4.9).
const PoliteThrottle = 500 * time.Millisecond

type sourceState struct {
	lastKnownText string
	lastPolite    time.Time
	havePolite    bool
}

// LiveRegionMonitor implements the diff+throttle gate described in spec
// §4.9, grounded on the teacher's query.Query-style mutex-guarded state
// (github.com/peco/peco/query), generalized from a single rune buffer to a
// per-source map.
type LiveRegionMonitor struct {
	mu      sync.Mutex
	clock   clock.Clock
	sources map[string]*sourceState
}

// NewLiveRegionMonitor creates a monitor. A nil clock defaults to
// clock.System.
func NewLiveRegionMonitor(c clock.Clock) *LiveRegionMonitor {
	if c == nil {
		c = clock.System
	}
	return &LiveRegionMonitor{clock: c, sources: map[string]*sourceState{}}
}

// ShouldAnnounce implements the rules of spec §4.9, evaluated in order:
//  1. Absent sourceID: announce iff text is non-empty.
//  2. Unchanged text for this source: never announce (diff detection).
//  3. Record the new text.
//  4. Empty/whitespace text: never announce.
//  5. Assertive politeness bypasses the throttle.
//  6. Polite announcements are throttled to one per PoliteThrottle.
func (m *LiveRegionMonitor) ShouldAnnounce(sourceID, text string, politeness event.Politeness) bool {
	if sourceID == "" {
		return strings.TrimSpace(text) != ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sources[sourceID]
	if !ok {
		st = &sourceState{}
		m.sources[sourceID] = st
	}

	if text == st.lastKnownText {
		return false
	}
	st.lastKnownText = text

	if strings.TrimSpace(text) == "" {
		return false
	}

	if politeness == event.Assertive {
		return true
	}

	now := m.clock.Now()
	if st.havePolite && now.Sub(st.lastPolite) < PoliteThrottle {
		return false
	}

	st.lastPolite = now
	st.havePolite = true
	return true
}

// Reset clears all per-source state (spec §3: "cleared on explicit reset").
func (m *LiveRegionMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources = map[string]*sourceState{}
}
