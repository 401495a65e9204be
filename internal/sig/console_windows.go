//go:build windows

package sig

import (
	"golang.org/x/sys/windows"
)

// Windows console control event codes (wincon.h), not covered by
// os/signal on this platform -- SIGINT/SIGTERM alone miss console close,
// logoff, and shutdown notifications a screen reader must still persist
// settings and release the accessibility worker on (DESIGN.md Open
// Question decision).
const (
	ctrlCEvent        = 0
	ctrlBreakEvent    = 1
	ctrlCloseEvent    = 2
	ctrlLogoffEvent   = 5
	ctrlShutdownEvent = 6
)

// WatchConsoleEvents registers a Win32 console control handler that calls
// onEvent for CTRL_CLOSE/LOGOFF/SHUTDOWN events (CTRL_C/CTRL_BREAK are
// left to os/signal, which already receives them as os.Interrupt on
// Windows). Returns a function to deregister the handler.
func WatchConsoleEvents(onEvent func()) (unregister func(), err error) {
	handler := func(ctrlType uint32) uintptr {
		switch ctrlType {
		case ctrlCloseEvent, ctrlLogoffEvent, ctrlShutdownEvent:
			onEvent()
			return 1 // handled
		default:
			return 0 // not handled, let the next handler run
		}
	}

	callback := windows.NewCallback(func(ctrlType uint32) uintptr {
		return handler(ctrlType)
	})

	r, _, callErr := procSetConsoleCtrlHandler.Call(callback, 1)
	if r == 0 {
		return func() {}, callErr
	}

	return func() {
		procSetConsoleCtrlHandler.Call(callback, 0)
	}, nil
}

var (
	kernel32                     = windows.NewLazySystemDLL("kernel32.dll")
	procSetConsoleCtrlHandler    = kernel32.NewProc("SetConsoleCtrlHandler")
)
