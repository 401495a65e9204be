package keymap

import (
	"fmt"
	"strings"

	"github.com/screenreader/core/internal/keys"
)

// parseModifiers parses the pipe-separated modifier grammar from spec §6:
// "modifiers is pipe-separated among {None, Shift, Ctrl, Alt, Insert}".
// None combined with any other name is a load error (DESIGN.md Open
// Question decision).
func parseModifiers(s string) (keys.Modifier, error) {
	if s == "" {
		return 0, nil
	}
	parts := strings.Split(s, "|")
	var mods keys.Modifier
	sawNone := false
	for _, p := range parts {
		switch strings.TrimSpace(p) {
		case "None":
			sawNone = true
		case "Shift":
			mods |= keys.ModShift
		case "Ctrl":
			mods |= keys.ModCtrl
		case "Alt":
			mods |= keys.ModAlt
		case "Insert":
			mods |= keys.ModInsert
		default:
			return 0, fmt.Errorf("unknown modifier %q", p)
		}
	}
	if sawNone && mods != 0 {
		return 0, fmt.Errorf("modifier %q combines None with other modifiers", s)
	}
	return mods, nil
}

// parseMode parses the mode grammar from spec §6: "Browse", "Focus", or
// "Any".
func parseMode(s string) (Mode, error) {
	switch s {
	case "Browse":
		return ModeBrowse, nil
	case "Focus":
		return ModeFocus, nil
	case "Any", "":
		return ModeAny, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}
