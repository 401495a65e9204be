package vbuffer

import "sort"

// Document is the immutable snapshot described in spec §3: flat text, root
// node, document-ordered node list, five pre-built indices, and a
// runtime-id lookup map. Grounded on the teacher's buffer.Memory
// (github.com/peco/peco/buffer), whose full-snapshot-swap-on-replace
// discipline this mirrors: a Document is never mutated in place, only
// replaced wholesale by the builder or incremental updater.
type Document struct {
	FlatText string
	Root     *Node
	Nodes    []*Node // document order; Nodes[i].ID == i

	Headings          *Index
	Links             *Index
	Landmarks         *Index
	FocusableElements *Index
	FormFields        *Index

	runtimeIDs map[string]*Node
}

// newEmptyDocument creates a Document with initialized (empty) indices.
func newEmptyDocument() *Document {
	return &Document{
		Headings:          NewIndex(),
		Links:             NewIndex(),
		Landmarks:         NewIndex(),
		FocusableElements: NewIndex(),
		FormFields:        NewIndex(),
		runtimeIDs:        map[string]*Node{},
	}
}

// FindByRuntimeID is the O(1) hash lookup described in spec §4.11.
func (d *Document) FindByRuntimeID(runtimeID []int) (*Node, bool) {
	n, ok := d.runtimeIDs[runtimeIDKey(runtimeID)]
	return n, ok
}

// FindNodeAtOffset performs the binary search described in spec §4.11:
// returns the last node whose range brackets o, or (nil, false) if o is out
// of range.
func (d *Document) FindNodeAtOffset(o int) (*Node, bool) {
	if o < 0 || o > len(d.FlatText) {
		return nil, false
	}
	i := sort.Search(len(d.Nodes), func(i int) bool {
		return d.Nodes[i].Range.Start > o
	})
	// i is the first node whose range starts after o; the candidate is i-1.
	for j := i - 1; j >= 0; j-- {
		n := d.Nodes[j]
		if n.Range.Start <= o && o <= n.Range.End {
			return n, true
		}
		if n.Range.Start < n.Range.End {
			// A non-empty range that doesn't bracket o means nodes before
			// it can't either, since Nodes is sorted by Range.Start.
			break
		}
	}
	return nil, false
}

// indexAndRuntimeMap populates the five indices and the runtime-id map from
// d.Nodes. Shared by the builder and the incremental updater's full re-scan
// (spec §4.12 step 6).
func (d *Document) indexAndRuntimeMap() {
	d.Headings = NewIndex()
	d.Links = NewIndex()
	d.Landmarks = NewIndex()
	d.FocusableElements = NewIndex()
	d.FormFields = NewIndex()
	d.runtimeIDs = map[string]*Node{}

	for _, n := range d.Nodes {
		if n.IsHeading() {
			d.Headings.Add(n.ID)
		}
		if n.LinkFlag {
			d.Links.Add(n.ID)
		}
		if n.LandmarkType != "" {
			d.Landmarks.Add(n.ID)
		}
		if n.FocusableFlag {
			d.FocusableElements.Add(n.ID)
		}
		if n.IsFormField() {
			d.FormFields.Add(n.ID)
		}
		if key := runtimeIDKey(n.RuntimeID); key != "" {
			d.runtimeIDs[key] = n
		}
	}
}
