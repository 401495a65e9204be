// Package event defines the screen-reader's event model: the tagged union
// of events that flow from input capture and the accessibility surface
// toward the mode manager, announcement builder, and speech queue.
//
// Grounded on the teacher's hub.Payload[T] envelope (github.com/peco/peco/hub):
// events are value-like, carry everything needed to dispatch without
// touching live accessibility objects, and are read by a single consumer.
package event

import (
	"time"

	"github.com/screenreader/core/internal/keys"
)

// Kind identifies which variant of ScreenReaderEvent is populated.
type Kind int

const (
	FocusChanged Kind = iota
	NavigationCommand
	RawKey
	LiveRegionChanged
	ModeChanged
	TypingEcho
	StructureChanged
	PropertyChanged
	Notification
)

func (k Kind) String() string {
	switch k {
	case FocusChanged:
		return "FocusChanged"
	case NavigationCommand:
		return "NavigationCommand"
	case RawKey:
		return "RawKey"
	case LiveRegionChanged:
		return "LiveRegionChanged"
	case ModeChanged:
		return "ModeChanged"
	case TypingEcho:
		return "TypingEcho"
	case StructureChanged:
		return "StructureChanged"
	case PropertyChanged:
		return "PropertyChanged"
	case Notification:
		return "Notification"
	default:
		return "Unknown"
	}
}

// Mode is the Browse/Focus process-wide state (spec §3, §4.10).
type Mode int

const (
	Browse Mode = iota
	Focus
)

func (m Mode) String() string {
	if m == Focus {
		return "Focus"
	}
	return "Browse"
}

// Politeness controls whether a live-region change interrupts or is
// throttled (spec §4.9, glossary).
type Politeness int

const (
	Polite Politeness = iota
	Assertive
)

// FocusChangedData carries the newly focused node's identifying info.
// RuntimeID is a small integer sequence (spec §3); ControlType is the
// translated short string (spec §4.8).
type FocusChangedData struct {
	RuntimeID   []int
	ControlType string
	Name        string
}

// NavigationCommandData carries the resolved command (spec §4.5).
type NavigationCommandData struct {
	Command keys.Command
}

// RawKeyData carries an unresolved key event, passed through to
// typing-echo and Focus-mode applications (spec §4.4).
type RawKeyData struct {
	Key keys.KeyEvent
}

// LiveRegionChangedData carries a source's new text and politeness.
type LiveRegionChangedData struct {
	SourceID   string
	Text       string
	Politeness Politeness
}

// ModeChangedData carries the new mode and a human-readable reason
// (spec §6: "Mode change semantics visible to collaborators").
type ModeChangedData struct {
	NewMode Mode
	Reason  string
}

// TypingEchoData carries a completed word or single character echo
// (spec §4.6).
type TypingEchoData struct {
	Text   string
	IsWord bool
}

// StructureChangedData carries the runtime id whose subtree changed, and
// the new subtree root (nil means the subtree was deleted). The element
// interface (access.Element) is declared in package access; to avoid an
// import cycle it's typed as any here and asserted back to access.Element
// by the app's structure-change handler before the incremental updater runs.
type StructureChangedData struct {
	RuntimeID     []int
	NewSubtreeRoot any
}

// PropertyChangedData carries a Name or ExpandCollapseState change
// (spec §4.8).
type PropertyChangedData struct {
	RuntimeID []int
	Property  string
	Value     string
}

// NotificationData carries a platform notification message, spoken
// verbatim at High priority by the app's catch-all bus subscriber.
type NotificationData struct {
	Text string
}

// ScreenReaderEvent is the tagged union described in spec §3. Every event
// carries a monotonic timestamp. Exactly one of the Data fields is
// meaningful, selected by Kind.
type ScreenReaderEvent struct {
	Kind      Kind
	Timestamp time.Time

	Focus            FocusChangedData
	Navigation       NavigationCommandData
	RawKeyEvt        RawKeyData
	LiveRegion       LiveRegionChangedData
	ModeChangedEvt   ModeChangedData
	TypingEchoEvt    TypingEchoData
	StructureChanged StructureChangedData
	PropertyChanged  PropertyChangedData
	NotificationEvt  NotificationData
}

// NewFocusChanged builds a FocusChanged event.
func NewFocusChanged(now time.Time, d FocusChangedData) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: FocusChanged, Timestamp: now, Focus: d}
}

// NewNavigationCommand builds a NavigationCommand event.
func NewNavigationCommand(now time.Time, cmd keys.Command) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: NavigationCommand, Timestamp: now, Navigation: NavigationCommandData{Command: cmd}}
}

// NewRawKey builds a RawKey event.
func NewRawKey(now time.Time, k keys.KeyEvent) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: RawKey, Timestamp: now, RawKeyEvt: RawKeyData{Key: k}}
}

// NewLiveRegionChanged builds a LiveRegionChanged event.
func NewLiveRegionChanged(now time.Time, d LiveRegionChangedData) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: LiveRegionChanged, Timestamp: now, LiveRegion: d}
}

// NewModeChanged builds a ModeChanged event.
func NewModeChanged(now time.Time, m Mode, reason string) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: ModeChanged, Timestamp: now, ModeChangedEvt: ModeChangedData{NewMode: m, Reason: reason}}
}

// NewTypingEcho builds a TypingEcho event.
func NewTypingEcho(now time.Time, text string, isWord bool) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: TypingEcho, Timestamp: now, TypingEchoEvt: TypingEchoData{Text: text, IsWord: isWord}}
}

// NewStructureChanged builds a StructureChanged event.
func NewStructureChanged(now time.Time, runtimeID []int, newRoot any) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: StructureChanged, Timestamp: now, StructureChanged: StructureChangedData{RuntimeID: runtimeID, NewSubtreeRoot: newRoot}}
}

// NewPropertyChanged builds a PropertyChanged event.
func NewPropertyChanged(now time.Time, runtimeID []int, prop, value string) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: PropertyChanged, Timestamp: now, PropertyChanged: PropertyChangedData{RuntimeID: runtimeID, Property: prop, Value: value}}
}

// NewNotification builds a Notification event.
func NewNotification(now time.Time, text string) ScreenReaderEvent {
	return ScreenReaderEvent{Kind: Notification, Timestamp: now, NotificationEvt: NotificationData{Text: text}}
}
