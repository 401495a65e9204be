// Package logging builds the single *zap.Logger used across the process
// and hands out component-scoped children from it, following the
// teacher's PECO_TRACE/debug-build convention (see the root package's
// debug_on.go/debug_off.go) and the rest-of-pack example
// theRebelliousNerd-codenerd/internal/logging, which layers named
// sub-loggers over a shared base logger rather than building one logger
// per subsystem from scratch.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Component names passed to Component to name its scoped children. Kept as
// constants so call sites can't typo a component name and silently split
// a subsystem's log lines across two different loggers.
const (
	ComponentQueue       = "speech_queue"
	ComponentCuePlayer   = "cue_player"
	ComponentHook        = "keyboard_hook"
	ComponentKeymap      = "keymap"
	ComponentMode        = "mode"
	ComponentEcho        = "echo"
	ComponentBus         = "event_bus"
	ComponentAccess      = "access_host"
	ComponentLiveRegion  = "live_region"
	ComponentQuickNav    = "quick_nav"
	ComponentVBuffer     = "vbuffer"
	ComponentElementList = "elements_list"
	ComponentNav         = "nav"
	ComponentSayAll      = "say_all"
	ComponentWizard      = "wizard"
	ComponentConfig      = "config"
	ComponentSig         = "sig"
	ComponentApp         = "app"
)

// New builds the root logger for the process. debug selects
// zap.NewDevelopment (console-encoded, debug level, caller/stack traces)
// over zap.NewProduction (JSON-encoded, info level), matching the
// --debug flag the cmd/screenreader entry point exposes (SPEC_FULL §6).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Nop returns a logger that discards everything, for tests that don't
// care about log output but still need to satisfy a *zap.Logger
// dependency.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Component returns a child logger tagged with the given component name,
// the same "one field identifies the subsystem" shape the teacher's
// tracer applies via a fixed "peco: " prefix, generalized to zap's
// structured field instead of a string prefix.
func Component(base *zap.Logger, component string) *zap.Logger {
	return base.Named(component)
}

// Level parses the settings/flag spelling of a log level into a
// zapcore.Level, defaulting to info on an unrecognized or empty string
// so a malformed config value never silently disables logging entirely.
func Level(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
