// Package vbuffer implements the virtual buffer: an immutable, indexed
// snapshot of an accessibility element tree (C10), the builder that
// produces one (C11), the incremental splice updater (C12), and a cursor
// for character/word/line movement (C13).
//
// Grounded on the teacher's line.Line/line.Raw (github.com/peco/peco/line)
// for the node's immutable-value-with-id shape, and selection.Set
// (github.com/peco/peco/selection) for the btree-backed sorted-id indices.
package vbuffer

// Landmark type strings (spec §3): a fixed eight-entry enumerated set.
const (
	LandmarkBanner        = "Banner"
	LandmarkComplementary = "Complementary"
	LandmarkContentInfo   = "Content info"
	LandmarkForm          = "Form"
	LandmarkMain          = "Main"
	LandmarkNavigation    = "Navigation"
	LandmarkRegion        = "Region"
	LandmarkSearch        = "Search"
)

// formFieldControlTypes is the fixed set used by IsFormField (spec §3).
var formFieldControlTypes = map[string]bool{
	"Edit":        true,
	"ComboBox":    true,
	"CheckBox":    true,
	"RadioButton": true,
	"Spinner":     true,
	"Slider":      true,
	"List":        true,
	"ListItem":    true,
}

// containerControlTypes contribute no text to the flat-text buffer (spec
// §3/§4.11).
var containerControlTypes = map[string]bool{
	"Document": true,
	"Group":    true,
	"Pane":     true,
	"Window":   true,
	"ToolBar":  true,
	"Menu":     true,
	"Bar":      true,
	"TitleBar": true,
}

// IsContainerControlType reports whether a control type contributes no text
// of its own to the flat-text buffer.
func IsContainerControlType(controlType string) bool {
	return containerControlTypes[controlType]
}

// IsFormFieldControlType reports whether controlType is in the fixed
// form-field control-type set (spec §3/§4.10), independent of a node's
// required/expandable flags. Used by the mode manager, which only has a
// bare control-type string from a FocusChanged event rather than a full Node.
func IsFormFieldControlType(controlType string) bool {
	return formFieldControlTypes[controlType]
}

// Range is a half-open [Start,End) span into the document's flat text.
type Range struct {
	Start int
	End   int
}

// Node is a single virtual-buffer node (spec §3).
type Node struct {
	ID             int
	RuntimeID      []int
	Name           string
	ControlType    string
	ARIARole       string
	HeadingLevel   int // 0-6; 0 means "not a heading"
	LandmarkType   string
	LinkFlag       bool
	VisitedFlag    bool
	RequiredFlag   bool
	ExpandableFlag bool
	ExpandedFlag   bool
	FocusableFlag  bool
	Range          Range

	Parent   *Node
	Children []*Node
	Prev     *Node
	Next     *Node
}

// IsHeading reports whether the node is a heading (spec §3: HeadingLevel>0).
func (n *Node) IsHeading() bool {
	return n.HeadingLevel > 0
}

// IsFormField implements the spec §3 FormField rule: control-type in the
// fixed set, or the required/expandable flag is set.
func (n *Node) IsFormField() bool {
	return formFieldControlTypes[n.ControlType] || n.RequiredFlag || n.ExpandableFlag
}

// IsEditField implements spec §4.10's IsEditField predicate, used by the
// mode manager to decide whether activating a node should switch to Focus
// mode.
func (n *Node) IsEditField() bool {
	switch n.ControlType {
	case "Edit", "ComboBox", "CheckBox", "RadioButton", "Spinner", "Slider", "List", "ListItem":
		return true
	}
	return n.FocusableFlag
}

// runtimeIDKey joins a runtime id into a stable map key for find_by_runtime_id.
func runtimeIDKey(id []int) string {
	if len(id) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(id)*4)
	for i, v := range id {
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = appendInt(buf, v)
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
