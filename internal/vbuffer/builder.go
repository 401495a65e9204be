package vbuffer

import (
	"strings"

	"github.com/screenreader/core/internal/access"
)

type buildFrame struct {
	el     access.Element
	parent *Node
}

// Build walks root in iterative pre-order (spec §4.11), assigning dense
// document-order ids, parsing each element's ARIA role/properties into the
// node flags of spec §3, and constructing the flat-text buffer by
// concatenating text-bearing nodes' names with a newline separator;
// container control types (spec §3) contribute no text.
//
// Grounded on the teacher's pipeline source-walk discipline
// (github.com/peco/peco/pipeline), generalized from a linear stdin scan to
// a tree walk with an explicit stack rather than recursion, so build depth
// is bounded by heap, not goroutine stack.
func Build(root access.Element) *Document {
	doc := newEmptyDocument()
	if root == nil {
		return doc
	}

	var text strings.Builder
	stack := []buildFrame{{el: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := buildNode(f.el, len(doc.Nodes), &text)
		doc.Nodes = append(doc.Nodes, node)

		if f.parent != nil {
			node.Parent = f.parent
			f.parent.Children = append(f.parent.Children, node)
		} else {
			doc.Root = node
		}

		children := f.el.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, buildFrame{el: children[i], parent: node})
		}
	}

	linkOrder(doc.Nodes)
	doc.FlatText = text.String()
	doc.indexAndRuntimeMap()
	return doc
}

func buildNode(el access.Element, id int, text *strings.Builder) *Node {
	role := el.ARIARole()
	props := access.ParseARIAProperties(el.ARIAProperties())
	controlType := el.ControlType()

	n := &Node{
		ID:             id,
		RuntimeID:      el.RuntimeID(),
		Name:           el.Name(),
		ControlType:    controlType,
		ARIARole:       role,
		HeadingLevel:   access.HeadingLevel(role, props),
		LandmarkType:   access.LandmarkType(role),
		LinkFlag:       controlType == "Hyperlink" || strings.EqualFold(role, "link"),
		VisitedFlag:    props.Bool("visited"),
		RequiredFlag:   props.Bool("required"),
		ExpandableFlag: props.Bool("expandable"),
		ExpandedFlag:   props.Bool("expanded"),
		FocusableFlag:  el.IsFocusable(),
	}

	start := text.Len()
	if !IsContainerControlType(controlType) && n.Name != "" {
		text.WriteString(n.Name)
		n.Range = Range{Start: start, End: text.Len()}
		text.WriteByte('\n')
	} else {
		n.Range = Range{Start: start, End: start}
	}

	return n
}

// linkOrder sets Prev/Next so that walking from root reproduces the same
// sequence as pre-order DFS (spec §3 invariant).
func linkOrder(nodes []*Node) {
	for i, n := range nodes {
		n.Prev, n.Next = nil, nil
		if i > 0 {
			n.Prev = nodes[i-1]
		}
		if i < len(nodes)-1 {
			n.Next = nodes[i+1]
		}
	}
}
