// Package sig implements graceful-shutdown signal handling for
// cmd/screenreader. The Loop(ctx, cancel), signal.Notify/signal.Stop
// bracketing discipline is grounded on the teacher's context-based
// sig.Handler (github.com/peco/peco/sig), which already fit this module's
// context-cancellation convention (spec §5) without change. Handler is
// adapted beyond that base, though: it also folds in the Windows
// console-control path (console_windows.go) directly, so a console
// close/logoff/shutdown event is just another arrival on the same
// os.Signal channel Loop already selects on, instead of a second mechanism
// cmd/screenreader would otherwise have to wire and unregister on its own.
package sig

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ReceivedHandler reacts to a received OS signal.
type ReceivedHandler interface {
	Handle(os.Signal)
}

// ReceivedHandlerFunc adapts a plain function to ReceivedHandler.
type ReceivedHandlerFunc func(os.Signal)

// Handle calls the underlying function with the received signal.
func (f ReceivedHandlerFunc) Handle(sig os.Signal) {
	f(sig)
}

// consoleEvent adapts a Windows console-control notification to os.Signal
// so WatchConsoleEvents can feed it onto Handler's existing signal channel
// rather than needing a second, parallel event path.
type consoleEvent string

func (e consoleEvent) String() string { return string(e) }
func (consoleEvent) Signal()          {}

// ConsoleClose is delivered through ReceivedHandler.Handle when the
// platform reports CTRL_CLOSE/LOGOFF/SHUTDOWN (see console_windows.go); on
// non-Windows builds it is never sent.
const ConsoleClose consoleEvent = "console-close"

// Handler forwards a fixed set of OS signals, plus Windows console-control
// events where supported, to a ReceivedHandler.
type Handler struct {
	onSignalReceived  ReceivedHandler
	sigCh             chan os.Signal
	unregisterConsole func()
}

// New creates a Handler that forwards the given signals (default:
// SIGTERM, SIGINT, SIGHUP) to h, and also registers the platform's
// console-control watcher (a no-op off Windows).
func New(h ReceivedHandler, sigs ...os.Signal) *Handler {
	if len(sigs) == 0 {
		sigs = append(sigs, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	unregister, _ := WatchConsoleEvents(func() {
		select {
		case ch <- ConsoleClose:
		default:
		}
	})

	return &Handler{
		onSignalReceived:  h,
		sigCh:             ch,
		unregisterConsole: unregister,
	}
}

// Loop listens for OS signals (and console-control events) until ctx is
// cancelled or one arrives; on a signal it invokes the handler and returns
// nil, deregistering both the signal channel and the console watcher
// either way (spec §5 disposal discipline: every long-running loop owns
// its own cleanup on exit).
func (h *Handler) Loop(ctx context.Context, cancel func()) error {
	defer cancel()
	defer signal.Stop(h.sigCh)
	defer h.unregisterConsole()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-h.sigCh:
			h.onSignalReceived.Handle(s)
			return nil
		}
	}
}
