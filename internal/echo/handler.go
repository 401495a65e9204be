package echo

import (
	"fmt"

	"github.com/screenreader/core/internal/keys"
)

// Mode is the typing-echo mode (spec §3, §6).
type Mode int

const (
	ModeNone Mode = iota
	ModeCharacters
	ModeWords
	ModeBoth
)

var modeNames = map[Mode]string{
	ModeNone:       "None",
	ModeCharacters: "Characters",
	ModeWords:      "Words",
	ModeBoth:       "Both",
}

// String renders m using the settings-file spelling (spec §6).
func (m Mode) String() string {
	return modeNames[m]
}

// MarshalText implements encoding.TextMarshaler so Mode round-trips through
// the settings JSON file as one of "None"/"Characters"/"Words"/"Both"
// (spec §6), matching the teacher's OnCancelBehavior pattern (config.go).
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case "None":
		*m = ModeNone
	case "Characters":
		*m = ModeCharacters
	case "Words":
		*m = ModeWords
	case "Both":
		*m = ModeBoth
	default:
		return fmt.Errorf("invalid typing-echo mode %q", s)
	}
	return nil
}

// Win32 virtual-key codes used to classify printable/boundary keys. Kept
// local (not imported from package keyboard) since typing-echo only needs
// the numeric values, not the hook itself.
const (
	vkBack      = 0x08
	vkTab       = 0x09
	vkReturn    = 0x0D
	vkSpace     = 0x20
	vkDelete    = 0x2E
	vk0         = 0x30
	vk9         = 0x39
	vkA         = 0x41
	vkZ         = 0x5A
	vkNumpad0   = 0x60
	vkNumpad9   = 0x69
	vkOEM1      = 0xBA // ;:
	vkOEMPlus   = 0xBB // =+
	vkOEMComma  = 0xBC // ,<
	vkOEMMinus  = 0xBD // -_
	vkOEMPeriod = 0xBE // .>
	vkOEM2      = 0xBF // /?
	vkOEM3      = 0xC0 // `~
	vkOEM4      = 0xDB // [{
	vkOEM5      = 0xDC // \|
	vkOEM6      = 0xDD // ]}
	vkOEM7      = 0xDE // '"
)

// wordBoundaryNames maps a word-boundary key's VK code to the spoken name
// used when Characters/Both mode additionally echoes the boundary key
// (spec §4.6: "Space", "Return", "comma", ...).
var wordBoundaryNames = map[keys.VKCode]string{
	vkSpace:  "Space",
	vkReturn: "Return",
}

// punctuationBoundaries lists the "fixed punctuation set" word-boundary
// keys beyond Enter/Space (spec §4.6), named by their unshifted glyph.
var punctuationBoundaries = map[keys.VKCode]string{
	vkOEMComma:  "comma",
	vkOEMPeriod: "period",
	vkOEM1:      "semicolon",
}

// Echo produces the consumer-facing result of a single key event.
type Echo struct {
	Text   string
	IsWord bool
}

// Handler implements the typing-echo handler described in spec §4.6.
type Handler struct {
	buf     *WordBuffer
	getMode func() Mode
}

// NewHandler creates a Handler. getMode is called on every key event so
// mode changes (a settings update) take effect immediately.
func NewHandler(getMode func() Mode) *Handler {
	return &Handler{buf: NewWordBuffer(), getMode: getMode}
}

// HandleKeyDown processes Backspace/Delete (spec §4.6: "On key-down of
// Backspace/Delete: pop one char from the word buffer").
func (h *Handler) HandleKeyDown(k keys.KeyEvent) {
	mode := h.getMode()
	if mode == ModeNone {
		h.buf.Reset()
		return
	}
	if k.VK == vkBack || k.VK == vkDelete {
		h.buf.PopLast()
	}
}

// HandleKeyUp processes a key-up event and returns zero or more Echoes to
// speak, per spec §4.6's ordered rules. Mode None clears the buffer and
// emits nothing.
func (h *Handler) HandleKeyUp(k keys.KeyEvent) []Echo {
	mode := h.getMode()
	if mode == ModeNone {
		h.buf.Reset()
		return nil
	}

	if name, isBoundary := boundaryName(k.VK); isBoundary {
		var out []Echo
		if (mode == ModeWords || mode == ModeBoth) && !h.buf.Empty() {
			out = append(out, Echo{Text: h.buf.String(), IsWord: true})
			h.buf.Reset()
		}
		if mode == ModeCharacters || mode == ModeBoth {
			out = append(out, Echo{Text: name, IsWord: false})
		}
		return out
	}

	if ch, ok := printableChar(k.VK, k.Modifiers); ok {
		h.buf.Append(ch)
		if mode == ModeCharacters || mode == ModeBoth {
			return []Echo{{Text: charName(ch), IsWord: false}}
		}
	}
	return nil
}

func boundaryName(vk keys.VKCode) (string, bool) {
	if name, ok := wordBoundaryNames[vk]; ok {
		return name, true
	}
	if name, ok := punctuationBoundaries[vk]; ok {
		return name, true
	}
	return "", false
}

var shiftedDigits = map[keys.VKCode]rune{
	vk0 + 0: ')',
	vk0 + 1: '!',
	vk0 + 2: '@',
	vk0 + 3: '#',
	vk0 + 4: '$',
	vk0 + 5: '%',
	vk0 + 6: '^',
	vk0 + 7: '&',
	vk0 + 8: '*',
	vk0 + 9: '(',
}

// printableChar maps a key-up's virtual-key code to the printable
// character it produces, honoring shift-mapping for the number row (spec
// §4.6: "uppercase A-Z, digits, numeric keypad, with shift-mapping for the
// number row").
func printableChar(vk keys.VKCode, mods keys.Modifier) (rune, bool) {
	switch {
	case vk >= vkA && vk <= vkZ:
		r := rune('a' + (vk - vkA))
		if mods.Has(keys.ModShift) {
			r = rune('A' + (vk - vkA))
		}
		return r, true
	case vk >= vk0 && vk <= vk9:
		if mods.Has(keys.ModShift) {
			if r, ok := shiftedDigits[vk]; ok {
				return r, true
			}
		}
		return rune('0' + (vk - vk0)), true
	case vk >= vkNumpad0 && vk <= vkNumpad9:
		return rune('0' + (vk - vkNumpad0)), true
	default:
		return 0, false
	}
}

// symbolNames gives spoken names for punctuation/symbol characters (spec
// §4.6: "@" -> "at", "#" -> "hash", ...).
var symbolNames = map[rune]string{
	'@': "at",
	'#': "hash",
	'$': "dollar",
	'%': "percent",
	'^': "caret",
	'&': "ampersand",
	'*': "asterisk",
	'(': "left paren",
	')': "right paren",
	'!': "exclamation",
}

// charName returns the spoken name for ch: its symbol name if one exists,
// otherwise the character itself as a one-rune string.
func charName(ch rune) string {
	if name, ok := symbolNames[ch]; ok {
		return name
	}
	return string(ch)
}
