//go:build windows

package keyboard

import (
	"unsafe"

	"github.com/screenreader/core/internal/keys"
	"golang.org/x/sys/windows"
)

// Win32 hook constants. Kept as thin, locally-scoped names rather than
// importing a full Win32 binding package, matching the teacher's own
// kernel32.dll MustLoadDLL/MustFindProc style (tty_windows.go).
const (
	whKeyboardLL = 13
	hcAction     = 0
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12 // Alt
	vkCapital = 0x14
	vkInsert  = 0x2D
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW  = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx     = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procGetKeyState        = user32.NewProc("GetKeyState")
)

// kbdllHookStruct mirrors the Win32 KBDLLHOOKSTRUCT layout.
type kbdllHookStruct struct {
	VKCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// msg mirrors the Win32 MSG structure, only as much as GetMessage needs.
type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// ModifierKeyChoice selects which physical key acts as the screen reader's
// "Insert" modifier (spec §6 ModifierKey setting: Insert or CapsLock).
type ModifierKeyChoice int

const (
	ModifierInsert ModifierKeyChoice = iota
	ModifierCapsLock
)

// Hook owns the process-global low-level keyboard hook. It must be
// installed from a dedicated OS thread running a message pump (spec §4.4,
// §5 execution context 1): the platform silently removes hooks whose
// callbacks are slow or whose thread lacks a pump.
type Hook struct {
	queue    *RingBuffer
	modifier ModifierKeyChoice
	handle   uintptr
}

// NewHook creates a Hook that pushes captured events into queue.
func NewHook(queue *RingBuffer, modifier ModifierKeyChoice) *Hook {
	return &Hook{queue: queue, modifier: modifier}
}

// Install installs the hook on the calling thread and returns an error if
// the OS refuses (spec §7, error kind "hook-install": privilege or OS
// refusal; log error, remain alive with zero input).
func (h *Hook) Install() error {
	hookPtr := windows.NewCallback(h.lowLevelKeyboardProc)
	hinst, _, _ := windows.NewLazySystemDLL("kernel32.dll").NewProc("GetModuleHandleW").Call(0)
	handle, _, err := procSetWindowsHookExW.Call(
		uintptr(whKeyboardLL),
		hookPtr,
		hinst,
		0,
	)
	if handle == 0 {
		return err
	}
	h.handle = handle
	return nil
}

// Uninstall removes the hook.
func (h *Hook) Uninstall() {
	if h.handle == 0 {
		return
	}
	procUnhookWindowsHookEx.Call(h.handle)
	h.handle = 0
}

// Pump runs the message loop required to keep the hook alive. It blocks
// until GetMessage returns 0 (WM_QUIT) or an error. Must run on the same
// thread Install was called from (spec §5 execution context 1).
func (h *Hook) Pump() error {
	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			return nil
		}
	}
}

// lowLevelKeyboardProc is the hook callback. Its hot path: read the vk
// code, read modifier state, non-blocking try-write into the bounded
// queue, forward to the next hook (spec §4.4). No heap allocation, no
// logging, no synchronization beyond the queue's own atomics/mutex.
func (h *Hook) lowLevelKeyboardProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode == hcAction {
		kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		down := wParam == wmKeyDown || wParam == wmSysKeyDown
		up := wParam == wmKeyUp || wParam == wmSysKeyUp
		if down || up {
			h.queue.Push(keys.KeyEvent{
				VK:          keys.VKCode(kb.VKCode),
				Modifiers:   h.readModifiers(),
				Down:        down,
				TimestampMS: int64(kb.Time),
			})
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// readModifiers reads the OS key-state table for Shift/Ctrl/Alt plus the
// configured Insert modifier (spec §4.4).
func (h *Hook) readModifiers() keys.Modifier {
	var m keys.Modifier
	if keyDown(vkShift) {
		m |= keys.ModShift
	}
	if keyDown(vkControl) {
		m |= keys.ModCtrl
	}
	if keyDown(vkMenu) {
		m |= keys.ModAlt
	}
	switch h.modifier {
	case ModifierInsert:
		if keyDown(vkInsert) {
			m |= keys.ModInsert
		}
	case ModifierCapsLock:
		if keyToggled(vkCapital) {
			m |= keys.ModInsert
		}
	}
	return m
}

func keyDown(vk int32) bool {
	r, _, _ := procGetKeyState.Call(uintptr(vk))
	return int16(r)&0x8000 != 0
}

func keyToggled(vk int32) bool {
	r, _, _ := procGetKeyState.Call(uintptr(vk))
	return int16(r)&0x0001 != 0
}
