// Package access implements the accessibility subsystem: a single-threaded
// worker host for all platform calls (C7), the translation of platform
// callbacks into bus events (C8), and the live-region diff/throttle monitor
// (C9). Grounded on the teacher's pipeline.Pipeline Run/Done discipline
// (github.com/peco/peco/pipeline) for the host's worker loop.
package access

// Element is the abstract accessibility element tree interface (spec §6),
// implemented by the platform layer and by test fakes.
type Element interface {
	RuntimeID() []int
	Name() string
	ControlType() string
	ARIARole() string
	ARIAProperties() string
	IsFocusable() bool
	Children() []Element
}
