// Package keymap implements the (modifiers, key, mode) -> command lookup
// described in spec §4.5, grounded on the teacher's keymap.go /
// internal/keyseq: peco's (modifier, key, sequence) trie keyed to an
// Action is replaced here by a flat map keyed on (modifier bitfield,
// virtual-key code, mode), since the spec's command set has no multi-key
// chaining. The load/merge-over-defaults/compile pipeline in
// ApplyKeybinding is retained in shape as Keymap.Load.
package keymap

import (
	"fmt"

	"github.com/screenreader/core/internal/event"
	"github.com/screenreader/core/internal/keys"
)

// Mode selects which of the two real modes (or both) a binding applies to.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeFocus
	ModeAny // expands into one entry per real mode at load time
)

func modeFromEventMode(m event.Mode) Mode {
	if m == event.Focus {
		return ModeFocus
	}
	return ModeBrowse
}

// triple is the map key: (modifiers, vk, mode). Any never appears as a key
// once loaded -- it is expanded into ModeBrowse and ModeFocus entries.
type triple struct {
	Mods keys.Modifier
	VK   keys.VKCode
	Mode Mode
}

// Keymap is the compiled (modifiers,key,mode) -> command lookup table.
type Keymap struct {
	bindings map[triple]keys.Command
}

// New creates an empty Keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[triple]keys.Command)}
}

// Bind registers a single binding, expanding ModeAny into both real modes.
func (k *Keymap) Bind(mods keys.Modifier, vk keys.VKCode, mode Mode, cmd keys.Command) {
	if mode == ModeAny {
		k.bindings[triple{mods, vk, ModeBrowse}] = cmd
		k.bindings[triple{mods, vk, ModeFocus}] = cmd
		return
	}
	k.bindings[triple{mods, vk, mode}] = cmd
}

// Unbind removes a binding, if present.
func (k *Keymap) Unbind(mods keys.Modifier, vk keys.VKCode, mode Mode) {
	if mode == ModeAny {
		delete(k.bindings, triple{mods, vk, ModeBrowse})
		delete(k.bindings, triple{mods, vk, ModeFocus})
		return
	}
	delete(k.bindings, triple{mods, vk, mode})
}

// Resolve probes the exact (modifiers, vk, mode) triple (spec §4.5:
// "Resolution takes the current mode (snapshotted) and probes the exact
// triple").
func (k *Keymap) Resolve(mods keys.Modifier, vk keys.VKCode, mode event.Mode) (keys.Command, bool) {
	cmd, ok := k.bindings[triple{mods, vk, modeFromEventMode(mode)}]
	return cmd, ok
}

// Len reports the number of compiled (non-Any) bindings.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Default installs the built-in binding set. Callers typically call this
// before Load to merge file-provided bindings over these defaults (spec
// §6 keymap file format; the "-" delete-entry convention from the
// teacher's ApplyKeybinding is preserved: a Binding passed to Load whose
// Command is the literal string "-" removes that entry).
func Default(insertIsModifier bool) *Keymap {
	k := New()
	mod := keys.ModInsert
	_ = insertIsModifier // modifier key choice only affects which VK maps to ModInsert upstream in C4

	// The concrete default bindings are intentionally minimal here; a real
	// deployment ships a keymap.json (spec §6) loaded via Load on top of
	// this set.
	type b struct {
		mods keys.Modifier
		vk   keys.VKCode
		mode Mode
		cmd  keys.Command
	}
	defaults := []b{
		{mod, vkH, ModeBrowse, keys.NextHeading},
		{mod | keys.ModShift, vkH, ModeBrowse, keys.PrevHeading},
		{mod, vkK, ModeBrowse, keys.NextLink},
		{mod | keys.ModShift, vkK, ModeBrowse, keys.PrevLink},
		{mod, vkD, ModeBrowse, keys.NextLandmark},
		{mod | keys.ModShift, vkD, ModeBrowse, keys.PrevLandmark},
		{mod, vkF, ModeBrowse, keys.NextFormField},
		{mod | keys.ModShift, vkF, ModeBrowse, keys.PrevFormField},
		{mod, vkT, ModeBrowse, keys.NextTable},
		{mod | keys.ModShift, vkT, ModeBrowse, keys.PrevTable},
		{mod, vkTab, ModeAny, keys.NextFocusable},
		{mod | keys.ModShift, vkTab, ModeAny, keys.PrevFocusable},
		{0, vkDown, ModeBrowse, keys.NextLine},
		{0, vkUp, ModeBrowse, keys.PrevLine},
		{0, vkRight, ModeBrowse, keys.NextChar},
		{0, vkLeft, ModeBrowse, keys.PrevChar},
		{keys.ModCtrl, vkRight, ModeBrowse, keys.NextWord},
		{keys.ModCtrl, vkLeft, ModeBrowse, keys.PrevWord},
		{0, vkEnter, ModeAny, keys.ActivateElement},
		{mod, vkEnter, ModeAny, keys.ToggleMode},
		{mod, vkDown, ModeAny, keys.SayAll},
		{keys.ModCtrl, vkEscape, ModeAny, keys.StopSpeech},
		{mod, vkF7, ModeBrowse, keys.ElementsList},
		{mod, vkNumpad8, ModeBrowse, keys.ReadCurrentLine},
		{mod, vkNumpad5, ModeBrowse, keys.ReadCurrentWord},
	}
	for _, d := range defaults {
		k.Bind(d.mods, d.vk, d.mode, d.cmd)
	}
	return k
}

// Placeholder virtual-key codes. Matches the low 8 bits of the real Win32
// VK_* constants used by package keyboard; kept local to this package so
// unit tests don't need a platform build to exercise resolution.
const (
	vkH      keys.VKCode = 0x48
	vkK      keys.VKCode = 0x4B
	vkD      keys.VKCode = 0x44
	vkF      keys.VKCode = 0x46
	vkT      keys.VKCode = 0x54
	vkTab    keys.VKCode = 0x09
	vkDown   keys.VKCode = 0x28
	vkUp     keys.VKCode = 0x26
	vkLeft   keys.VKCode = 0x25
	vkRight  keys.VKCode = 0x27
	vkEnter  keys.VKCode = 0x0D
	vkEscape keys.VKCode = 0x1B
	vkF7     keys.VKCode = 0x76
	vkNumpad8 keys.VKCode = 0x68
	vkNumpad5 keys.VKCode = 0x65
)

// Binding is one entry of a keymap file (spec §6).
type Binding struct {
	Modifiers string `json:"modifiers"`
	VKCode    int    `json:"vkCode"`
	Mode      string `json:"mode"`
	Command   string `json:"command"`
}

// File is the root object of a keymap JSON file (spec §6).
type File struct {
	Bindings []Binding `json:"bindings"`
}

// LoadErrors collects per-entry problems encountered while loading a
// keymap file. Bad entries are skipped and loading continues (spec §7,
// error kind "keymap-load").
type LoadErrors []error

func (e LoadErrors) Error() string {
	if len(e) == 0 {
		return "no errors"
	}
	return fmt.Sprintf("%d invalid keymap entries (first: %s)", len(e), e[0])
}

// Load applies bindings on top of k's existing entries, skipping invalid
// entries and continuing (spec §7). It returns a non-nil LoadErrors when
// any entries were skipped, but always applies every valid entry.
func (k *Keymap) Load(bindings []Binding) error {
	var errs LoadErrors
	for _, b := range bindings {
		mods, err := parseModifiers(b.Modifiers)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %+v: %w", b, err))
			continue
		}
		mode, err := parseMode(b.Mode)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %+v: %w", b, err))
			continue
		}
		if b.Command == "-" {
			k.Unbind(mods, keys.VKCode(b.VKCode), mode)
			continue
		}
		cmd, ok := keys.CommandByName(b.Command)
		if !ok {
			errs = append(errs, fmt.Errorf("binding %+v: unknown command %q", b, b.Command))
			continue
		}
		k.Bind(mods, keys.VKCode(b.VKCode), mode, cmd)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
