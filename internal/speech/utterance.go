// Package speech implements the priority-ordered utterance queue (C1) and
// the audio cue player (C2). The queue's drain/sort/coalesce/speak loop is
// grounded on the teacher's pipeline.Pipeline run-loop discipline
// (github.com/peco/peco/pipeline): a single consumer goroutine owns a
// channel, drains it into a scratch slice, and feeds a downstream sink
// (here, the Backend) until the context is cancelled.
package speech

// Priority is an ordered enum; lower value is more urgent (spec §3).
type Priority int

const (
	Interrupt Priority = iota
	High
	Normal
	Low
)

func (p Priority) String() string {
	switch p {
	case Interrupt:
		return "Interrupt"
	case High:
		return "High"
	case Normal:
		return "Normal"
	case Low:
		return "Low"
	default:
		return "Unknown"
	}
}

// Utterance is an immutable (text, priority, optional cue id) tuple
// (spec §3). Created by producers, consumed by the queue, never mutated.
type Utterance struct {
	Text     string
	Priority Priority
	CueID    string // optional; empty means no associated audio cue
}

// New creates a Normal-priority utterance with no cue.
func New(text string) Utterance {
	return Utterance{Text: text, Priority: Normal}
}

// NewWithPriority creates an utterance at the given priority.
func NewWithPriority(text string, p Priority) Utterance {
	return Utterance{Text: text, Priority: p}
}

// WithCue returns a copy of u carrying the given cue id.
func (u Utterance) WithCue(cueID string) Utterance {
	u.CueID = cueID
	return u
}
