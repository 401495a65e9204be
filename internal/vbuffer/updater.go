package vbuffer

import "github.com/screenreader/core/internal/access"

// ApplyStructureChange implements the splice algorithm of spec §4.12 for a
// single StructureChanged(runtime_id, new_subtree_root) event. newRoot nil
// means the subtree was deleted. Returns a fresh immutable Document;
// concurrent readers of doc are unaffected (doc itself is never mutated).
func ApplyStructureChange(doc *Document, runtimeID []int, newRoot access.Element) *Document {
	oldNode, ok := doc.FindByRuntimeID(runtimeID)
	if !ok {
		// Step 1: not found, document unchanged.
		return doc
	}

	startIdx := oldNode.ID
	count := subtreeNodeCount(oldNode)
	endIdx := startIdx + count - 1 // inclusive; subtrees are contiguous in document order

	spanStart := oldNode.Range.Start
	spanEnd := spanStart
	for i := startIdx; i <= endIdx; i++ {
		if doc.Nodes[i].Range.End > spanEnd {
			spanEnd = doc.Nodes[i].Range.End
		}
	}
	spanLength := spanEnd - spanStart

	// Clone the whole old tree once, up front, so the "before" and "after"
	// segments keep pointing at each other's clones rather than at stale
	// originals once the subtree in between is spliced out.
	clones := cloneTree(doc.Nodes)
	parentClone := clones[startIdx].Parent

	if newRoot == nil {
		return spliceDeletion(clones, startIdx, endIdx, spanStart, spanEnd, spanLength, parentClone, doc.FlatText)
	}
	return spliceReplacement(clones, startIdx, endIdx, spanStart, spanEnd, spanLength, parentClone, newRoot, doc.FlatText)
}

func subtreeNodeCount(n *Node) int {
	count := 1
	for _, c := range n.Children {
		count += subtreeNodeCount(c)
	}
	return count
}

func spliceDeletion(clones []*Node, startIdx, endIdx, spanStart, spanEnd, spanLength int, parentClone *Node, oldText string) *Document {
	next := newEmptyDocument()
	next.FlatText = oldText[:spanStart] + oldText[spanEnd:]

	removedClone := clones[startIdx]
	after := clones[endIdx+1:]
	shiftRanges(after, -spanLength)

	combined := make([]*Node, 0, len(clones)-(endIdx-startIdx+1))
	combined = append(combined, clones[:startIdx]...)
	combined = append(combined, after...)

	if parentClone != nil {
		removeChild(parentClone, removedClone)
	}

	renumberAndRelink(combined)
	next.Root = findRoot(combined)
	next.Nodes = combined
	next.indexAndRuntimeMap()
	return next
}

func spliceReplacement(clones []*Node, startIdx, endIdx, spanStart, spanEnd, spanLength int, parentClone *Node, newRoot access.Element, oldText string) *Document {
	fragment := Build(newRoot)

	next := newEmptyDocument()
	next.FlatText = oldText[:spanStart] + fragment.FlatText + oldText[spanEnd:]

	fragNodes := fragment.Nodes // freshly built; safe to take ownership of
	shiftRanges(fragNodes, spanStart)
	var fragRoot *Node
	if len(fragNodes) > 0 {
		fragRoot = fragNodes[0]
	}

	removedClone := clones[startIdx]
	after := clones[endIdx+1:]
	shiftRanges(after, len(fragment.FlatText)-spanLength)

	combined := make([]*Node, 0, startIdx+len(fragNodes)+len(after))
	combined = append(combined, clones[:startIdx]...)
	combined = append(combined, fragNodes...)
	combined = append(combined, after...)

	if parentClone != nil {
		replaceChild(parentClone, removedClone, fragRoot)
	}
	if fragRoot != nil {
		fragRoot.Parent = parentClone
	}

	renumberAndRelink(combined)
	next.Root = findRoot(combined)
	next.Nodes = combined
	next.indexAndRuntimeMap()
	return next
}

// cloneTree returns shallow copies of every node in ns (document order),
// with every Parent/Children/Prev/Next pointer re-pointed to the
// corresponding clone, so the result is a fully independent tree that
// shares no mutable state with ns (spec §4.12: "concurrent readers of the
// old snapshot are unaffected").
func cloneTree(ns []*Node) []*Node {
	out := make([]*Node, len(ns))
	orig := make(map[*Node]*Node, len(ns))
	for i, n := range ns {
		c := *n
		out[i] = &c
		orig[n] = &c
	}
	for i, n := range ns {
		c := out[i]
		if p, ok := orig[n.Parent]; ok {
			c.Parent = p
		}
		c.Prev = orig[n.Prev]
		c.Next = orig[n.Next]
		children := make([]*Node, len(n.Children))
		for j, ch := range n.Children {
			children[j] = orig[ch]
		}
		c.Children = children
	}
	return out
}

func removeChild(parent, child *Node) {
	children := make([]*Node, 0, len(parent.Children))
	for _, c := range parent.Children {
		if c != child {
			children = append(children, c)
		}
	}
	parent.Children = children
}

func replaceChild(parent, oldChild, newChild *Node) {
	for i, c := range parent.Children {
		if c == oldChild {
			if newChild == nil {
				parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			} else {
				parent.Children[i] = newChild
			}
			return
		}
	}
}

// findRoot returns the node with no parent, or nil if combined is empty.
func findRoot(combined []*Node) *Node {
	for _, n := range combined {
		if n.Parent == nil {
			return n
		}
	}
	return nil
}

func shiftRanges(ns []*Node, delta int) {
	for _, n := range ns {
		n.Range.Start += delta
		n.Range.End += delta
	}
}

// renumberAndRelink assigns dense sequential ids (position in combined) and
// rebuilds Prev/Next as a strict linked walk (spec §4.12 step 5).
func renumberAndRelink(combined []*Node) {
	for i, n := range combined {
		n.ID = i
	}
	linkOrder(combined)
}
