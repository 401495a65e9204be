package access

import (
	"github.com/screenreader/core/internal/clock"
	"github.com/screenreader/core/internal/event"
)

// Translator converts platform accessibility callbacks into bus events
// (spec §4.8). Every method here must stay cheap and non-blocking: it runs
// on a platform-internal worker, not on Host's apartment thread.
type Translator struct {
	bus   *event.Bus
	clock clock.Clock
}

// NewTranslator creates a Translator posting onto bus.
func NewTranslator(bus *event.Bus, c clock.Clock) *Translator {
	if c == nil {
		c = clock.System
	}
	return &Translator{bus: bus, clock: c}
}

// OnFocusChanged translates a focus-change callback. Any failure reading el
// falls back to a minimal event carrying the control-type translation
// alone, rather than dropping the signal (spec §4.8 failure policy).
func (t *Translator) OnFocusChanged(controlTypeID int, el Element) {
	data := event.FocusChangedData{ControlType: ControlTypeName(controlTypeID)}
	if el != nil {
		func() {
			defer func() { recover() }()
			data.RuntimeID = el.RuntimeID()
			data.Name = el.Name()
		}()
	}
	t.bus.Post(event.NewFocusChanged(t.clock.Now(), data))
}

// OnStructureChanged translates a structure-change callback. newRoot is nil
// when the subtree was deleted.
func (t *Translator) OnStructureChanged(runtimeID []int, newRoot Element) {
	t.bus.Post(event.NewStructureChanged(t.clock.Now(), runtimeID, newRoot))
}

// OnPropertyChanged translates a Name or ExpandCollapseState property
// change (spec §4.8).
func (t *Translator) OnPropertyChanged(runtimeID []int, property, value string) {
	t.bus.Post(event.NewPropertyChanged(t.clock.Now(), runtimeID, property, value))
}

// OnNotification translates a platform notification message.
func (t *Translator) OnNotification(text string) {
	t.bus.Post(event.NewNotification(t.clock.Now(), text))
}

// OnLiveRegionChanged posts a live-region change already accepted by the
// monitor (spec §4.9); the monitor's should_announce gate is applied by the
// caller before reaching here.
func (t *Translator) OnLiveRegionChanged(sourceID, text string, politeness event.Politeness) {
	t.bus.Post(event.NewLiveRegionChanged(t.clock.Now(), event.LiveRegionChangedData{
		SourceID:   sourceID,
		Text:       text,
		Politeness: politeness,
	}))
}
