// Package elementslist implements the Elements-List dialog (C15, spec
// §4.16): a modal, tab-switched list of headings/links/landmarks/form-fields
// drawn from a VBufferDocument snapshot, narrowed by a case-insensitive
// substring filter.
//
// Grounded on the teacher's filter package (github.com/peco/peco/filter)
// for the match-narrowing shape, simplified from filter's regexp-based
// matching to plain substring containment per spec §4.16 ("contains the
// filter, case-insensitive"); and on single_key_jump.go's small
// prefix/index bookkeeping style for the per-tab entry list.
package elementslist

import (
	"strconv"
	"strings"

	"github.com/screenreader/core/internal/vbuffer"
)

// Tab identifies one of the four index-backed lists the dialog switches
// between (spec §4.16: "tabs correspond to the four indices").
type Tab int

const (
	TabHeadings Tab = iota
	TabLinks
	TabLandmarks
	TabFormFields
)

// Entry is a single row: the backing node plus its rendered display text.
type Entry struct {
	Node    *vbuffer.Node
	Display string
}

// DisplayText renders n the way spec §4.16 specifies per kind:
// headings as "H{level}: {name}"; landmarks as "{type}" or "{type}: {name}";
// others prefer name, else "[{control_type}]".
func DisplayText(tab Tab, n *vbuffer.Node) string {
	switch tab {
	case TabHeadings:
		return "H" + strconv.Itoa(n.HeadingLevel) + ": " + n.Name
	case TabLandmarks:
		if n.Name == "" {
			return n.LandmarkType
		}
		return n.LandmarkType + ": " + n.Name
	default:
		if n.Name != "" {
			return n.Name
		}
		return "[" + n.ControlType + "]"
	}
}

// indexFor returns the pre-built index backing tab.
func indexFor(doc *vbuffer.Document, tab Tab) *vbuffer.Index {
	switch tab {
	case TabHeadings:
		return doc.Headings
	case TabLinks:
		return doc.Links
	case TabLandmarks:
		return doc.Landmarks
	case TabFormFields:
		return doc.FormFields
	default:
		return nil
	}
}

// Entries lists every node in tab's index, in document order, rendered to
// display text.
func Entries(doc *vbuffer.Document, tab Tab) []Entry {
	idx := indexFor(doc, tab)
	if idx == nil {
		return nil
	}
	entries := make([]Entry, 0, idx.Len())
	idx.Ascend(func(id int) bool {
		n := doc.Nodes[id]
		entries = append(entries, Entry{Node: n, Display: DisplayText(tab, n)})
		return true
	})
	return entries
}

// Filter narrows entries to those whose display text contains filter,
// case-insensitively (spec §4.16). An empty filter returns entries
// unchanged.
func Filter(entries []Entry, filter string) []Entry {
	if filter == "" {
		return entries
	}
	needle := strings.ToLower(filter)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Display), needle) {
			out = append(out, e)
		}
	}
	return out
}
