// Package nav implements quick-navigation (C14): jumping the cursor by
// element kind through a Document's pre-built indices, and the
// verbosity-gated announcement builder that renders a node to speech text.
//
// Grounded on the teacher's filter.go scan-and-sort discipline
// (github.com/peco/peco/filter) and page.go's offset arithmetic
// (github.com/peco/peco/page.go), generalized from "scan a line buffer for
// a query match" to "scan a sorted id index for a predicate match", with
// the same forward/backward/wrap shape.
package nav

import "github.com/screenreader/core/internal/vbuffer"

// Kind identifies which of the five pre-built indices (or the
// not-yet-built table index) a quick-nav command targets (spec §4.14).
type Kind int

const (
	KindHeading Kind = iota
	KindLink
	KindLandmark
	KindFormField
	KindFocusable
	KindTable // no index is built for tables; always reports a boundary
)

// Cue mirrors vbuffer.BoundaryCue so callers of this package don't need to
// import vbuffer just to read a quick-nav result's cue.
type Cue = vbuffer.BoundaryCue

const (
	CueNone     = vbuffer.CueNone
	CueBoundary = vbuffer.CueBoundary
	CueWrap     = vbuffer.CueWrap
)

// Result is the outcome of a single quick-nav jump.
type Result struct {
	Node *vbuffer.Node
	Cue  Cue
}

// Predicate gates which index entries count as a match (spec §4.14:
// "HeadingLevelN uses heading_level == N; others accept all").
type Predicate func(*vbuffer.Node) bool

// AcceptAll is the predicate used by every command except HeadingLevelN.
func AcceptAll(*vbuffer.Node) bool { return true }

// HeadingLevel returns a predicate matching only headings at exactly level.
func HeadingLevel(level int) Predicate {
	return func(n *vbuffer.Node) bool { return n.HeadingLevel == level }
}

func indexFor(doc *vbuffer.Document, kind Kind) *vbuffer.Index {
	switch kind {
	case KindHeading:
		return doc.Headings
	case KindLink:
		return doc.Links
	case KindLandmark:
		return doc.Landmarks
	case KindFormField:
		return doc.FormFields
	case KindFocusable:
		return doc.FocusableElements
	default:
		return nil
	}
}

// Next implements the "Next" selection algorithm of spec §4.14.
func Next(doc *vbuffer.Document, kind Kind, currentID int, wrap bool, pred Predicate) Result {
	idx := indexFor(doc, kind)
	if idx == nil {
		return Result{Cue: CueBoundary}
	}

	from := currentID
	if idx.Has(currentID) {
		from = currentID + 1
	}

	var match *vbuffer.Node
	idx.AscendFrom(from, func(id int) bool {
		n := doc.Nodes[id]
		if pred(n) {
			match = n
			return false
		}
		return true
	})
	if match != nil {
		return Result{Node: match}
	}

	if wrap {
		var wrapped *vbuffer.Node
		idx.Ascend(func(id int) bool {
			if id >= from {
				return false
			}
			n := doc.Nodes[id]
			if pred(n) {
				wrapped = n
				return false
			}
			return true
		})
		if wrapped != nil {
			return Result{Node: wrapped, Cue: CueWrap}
		}
	}

	return Result{Cue: CueBoundary}
}

// Prev implements the symmetric "Prev" selection algorithm of spec §4.14.
func Prev(doc *vbuffer.Document, kind Kind, currentID int, wrap bool, pred Predicate) Result {
	idx := indexFor(doc, kind)
	if idx == nil {
		return Result{Cue: CueBoundary}
	}

	from := currentID
	if idx.Has(currentID) {
		from = currentID - 1
	}

	var match *vbuffer.Node
	idx.DescendFrom(from, func(id int) bool {
		n := doc.Nodes[id]
		if pred(n) {
			match = n
			return false
		}
		return true
	})
	if match != nil {
		return Result{Node: match}
	}

	if wrap {
		var wrapped *vbuffer.Node
		max, ok := idx.Max()
		if ok {
			idx.DescendFrom(max, func(id int) bool {
				if id <= from {
					return false
				}
				n := doc.Nodes[id]
				if pred(n) {
					wrapped = n
					return false
				}
				return true
			})
		}
		if wrapped != nil {
			return Result{Node: wrapped, Cue: CueWrap}
		}
	}

	return Result{Cue: CueBoundary}
}
