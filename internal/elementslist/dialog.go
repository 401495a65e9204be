package elementslist

import "github.com/screenreader/core/internal/vbuffer"

// Key identifies one of the fixed set of inputs the dialog reacts to;
// screen.go's translateEvent maps tcell key events onto these before
// handing them to the Controller, keeping the Controller free of any
// platform key-code dependency (spec §4.16 has no bearing on virtual-key
// numbers).
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyNextTab
	KeyPrevTab
	KeyEnter
	KeyEscape
	KeyBackspace
)

// Result is returned once the dialog is dismissed, either by selection or
// cancellation (spec §4.16: "Enter ... selects ... Escape cancels").
type Result struct {
	Node      *vbuffer.Node
	Cancelled bool
}

// Controller is the dialog's pure state machine: current tab, filter text,
// and selected row within the filtered list. It has no knowledge of tcell;
// a thin Run loop (screen.go) feeds it polled key/rune events and renders its
// state, following the teacher's ui.Screen/ui.Layout split of terminal I/O
// from redrawable state (github.com/peco/peco/ui).
type Controller struct {
	doc      *vbuffer.Document
	tab      Tab
	filter   string
	selected int
}

// NewController opens the dialog over a snapshot of doc, starting on the
// Headings tab (spec §4.16).
func NewController(doc *vbuffer.Document) *Controller {
	return &Controller{doc: doc, tab: TabHeadings}
}

// Tab returns the active tab.
func (c *Controller) Tab() Tab { return c.tab }

// FilterText returns the current filter string.
func (c *Controller) FilterText() string { return c.filter }

// Entries returns the active tab's entries narrowed by the current filter.
func (c *Controller) Entries() []Entry {
	return Filter(Entries(c.doc, c.tab), c.filter)
}

// Selected returns the index of the highlighted row within Entries(), or -1
// if the filtered list is empty.
func (c *Controller) Selected() int {
	entries := c.Entries()
	if len(entries) == 0 {
		return -1
	}
	if c.selected >= len(entries) {
		return len(entries) - 1
	}
	return c.selected
}

// HandleKey applies one input to the dialog's state. If the dialog should
// close (Enter or Escape), HandleKey returns a non-nil Result; otherwise it
// returns nil and the caller should redraw and keep polling.
func (c *Controller) HandleKey(k Key) *Result {
	switch k {
	case KeyUp:
		c.move(-1)
	case KeyDown:
		c.move(1)
	case KeyNextTab:
		c.switchTab(1)
	case KeyPrevTab:
		c.switchTab(-1)
	case KeyBackspace:
		if len(c.filter) > 0 {
			c.filter = c.filter[:len(c.filter)-1]
			c.selected = 0
		}
	case KeyEnter:
		if idx := c.Selected(); idx >= 0 {
			return &Result{Node: c.Entries()[idx].Node}
		}
		return &Result{Cancelled: true}
	case KeyEscape:
		return &Result{Cancelled: true}
	}
	return nil
}

// Type appends a filter character (spec §4.16: "a filter text field narrows
// the active tab's list").
func (c *Controller) Type(r rune) {
	c.filter += string(r)
	c.selected = 0
}

func (c *Controller) move(delta int) {
	entries := c.Entries()
	if len(entries) == 0 {
		return
	}
	next := c.Selected() + delta
	if next < 0 {
		next = 0
	}
	if next >= len(entries) {
		next = len(entries) - 1
	}
	c.selected = next
}

// switchTab cycles through the four tabs in a fixed order, resetting the
// filter and selection, so a match string is not carried across unrelated
// entry kinds.
func (c *Controller) switchTab(delta int) {
	const tabCount = 4
	next := (int(c.tab) + delta + tabCount) % tabCount
	c.tab = Tab(next)
	c.filter = ""
	c.selected = 0
}
