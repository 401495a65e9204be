// Package keys defines the fixed-size key event and modifier types shared
// between the keyboard hook (C4), the keymap (C5), and the event bus (C3).
// It is kept separate from package keyboard so that internal/event can
// depend on these value types without creating an import cycle with the
// hook implementation.
package keys

// Modifier is a bitfield of {Shift, Ctrl, Alt, "Insert" modifier} (spec §3).
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModInsert // the configurable "Insert" screen-reader modifier key
)

// Has reports whether m contains all bits of x.
func (m Modifier) Has(x Modifier) bool {
	return m&x == x
}

// String renders the modifier set as a pipe-joined name list, matching the
// keymap file grammar in spec §6 ("Shift|Ctrl|Alt|Insert").
func (m Modifier) String() string {
	if m == 0 {
		return "None"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if m.Has(ModShift) {
		add("Shift")
	}
	if m.Has(ModCtrl) {
		add("Ctrl")
	}
	if m.Has(ModAlt) {
		add("Alt")
	}
	if m.Has(ModInsert) {
		add("Insert")
	}
	return s
}

// VKCode is a virtual-key code, as reported by the platform keyboard hook.
type VKCode int

// KeyEvent is (virtual-key code, modifier set, key-down/up flag, OS
// timestamp), fixed-size and trivially copyable per spec §3 — no heap
// allocation is needed to construct or pass one.
type KeyEvent struct {
	VK        VKCode
	Modifiers Modifier
	Down      bool
	TimestampMS int64 // OS timestamp in milliseconds, as supplied by the hook
}

// Command is the closed set of recognized navigation commands (spec §4.5).
type Command int

const (
	CommandNone Command = iota
	NextHeading
	PrevHeading
	HeadingLevel1
	HeadingLevel2
	HeadingLevel3
	HeadingLevel4
	HeadingLevel5
	HeadingLevel6
	NextLink
	PrevLink
	NextLandmark
	PrevLandmark
	NextFormField
	PrevFormField
	NextTable
	PrevTable
	NextFocusable
	PrevFocusable
	NextLine
	PrevLine
	NextWord
	PrevWord
	NextChar
	PrevChar
	ActivateElement
	ToggleMode
	SayAll
	StopSpeech
	ElementsList
	ReadCurrentLine
	ReadCurrentWord
)

var commandNames = map[Command]string{
	CommandNone:     "None",
	NextHeading:     "NextHeading",
	PrevHeading:     "PrevHeading",
	HeadingLevel1:   "HeadingLevel1",
	HeadingLevel2:   "HeadingLevel2",
	HeadingLevel3:   "HeadingLevel3",
	HeadingLevel4:   "HeadingLevel4",
	HeadingLevel5:   "HeadingLevel5",
	HeadingLevel6:   "HeadingLevel6",
	NextLink:        "NextLink",
	PrevLink:        "PrevLink",
	NextLandmark:    "NextLandmark",
	PrevLandmark:    "PrevLandmark",
	NextFormField:   "NextFormField",
	PrevFormField:   "PrevFormField",
	NextTable:       "NextTable",
	PrevTable:       "PrevTable",
	NextFocusable:   "NextFocusable",
	PrevFocusable:   "PrevFocusable",
	NextLine:        "NextLine",
	PrevLine:        "PrevLine",
	NextWord:        "NextWord",
	PrevWord:        "PrevWord",
	NextChar:        "NextChar",
	PrevChar:        "PrevChar",
	ActivateElement: "ActivateElement",
	ToggleMode:      "ToggleMode",
	SayAll:          "SayAll",
	StopSpeech:      "StopSpeech",
	ElementsList:    "ElementsList",
	ReadCurrentLine: "ReadCurrentLine",
	ReadCurrentWord: "ReadCurrentWord",
}

// String renders the command's name, as used in keymap files (spec §6).
func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "Unknown"
}

// CommandByName resolves a command name (as it appears in a keymap file)
// back to a Command. The empty string and unknown names return
// (CommandNone, false).
func CommandByName(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CommandNone, false
}

// HeadingLevelOf returns the heading level (1-6) a HeadingLevelN command
// jumps to, or 0 if cmd is not a HeadingLevelN command.
func HeadingLevelOf(cmd Command) int {
	switch cmd {
	case HeadingLevel1:
		return 1
	case HeadingLevel2:
		return 2
	case HeadingLevel3:
		return 3
	case HeadingLevel4:
		return 4
	case HeadingLevel5:
		return 5
	case HeadingLevel6:
		return 6
	default:
		return 0
	}
}
