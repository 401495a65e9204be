// Package errs classifies the error kinds named in spec §7 so callers can
// decide propagation policy (log-and-continue, degrade-and-swallow,
// abandon-and-keep-prior-snapshot, abort) without string-matching error
// messages. Modeled on the teacher's pipeline.EndMark/EndMarker/IsEndMark
// pattern (github.com/peco/peco/pipeline): a small typed marker
// implementing error, classified downstream via errors.As rather than by
// a constructor function returning a concrete sentinel. Wrapping uses
// github.com/pkg/errors, the teacher's own wrapping library
// (selection/selection.go, peco.go), rather than stdlib fmt.Errorf's
// %w, keeping one wrapping idiom across the module.
//
// Named errs, not errors, so callers can still import the standard
// library's errors package unaliased alongside this one.
package errs

import (
	"github.com/pkg/errors"
)

// Kind is one of the seven error kinds spec §7 names. It is not a Go
// error type itself -- it tags an underlying error so a handler can
// branch on propagation policy.
type Kind string

const (
	// TransientAccessibilityRead: COM timing; per-callback, logged at
	// debug, substitute a minimal event and continue.
	TransientAccessibilityRead Kind = "transient-accessibility-read"
	// KeymapLoad: invalid or missing keymap file entries; skip the bad
	// entry, continue loading the rest of the file.
	KeymapLoad Kind = "keymap-load"
	// SettingsLoad: malformed settings JSON; fall back to the built-in
	// defaults (there is no bundled defaults file).
	SettingsLoad Kind = "settings-load"
	// HookInstall: privilege or OS refusal to install the keyboard hook;
	// log the error, remain alive with no input.
	HookInstall Kind = "hook-install"
	// BackendSpeak: a speech backend failure for a single utterance;
	// log, continue with the next utterance.
	BackendSpeak Kind = "backend-speak-error"
	// Cancellation: normal termination of a future/goroutine; never
	// logged as an error.
	Cancellation Kind = "cancellation"
	// InvariantViolation: a programmer error; the owning component
	// aborts rather than attempting to continue in a known-bad state.
	InvariantViolation Kind = "invariant-violation"
)

// Kinder is implemented by errors produced by this package; errors.As
// against it classifies an arbitrary error chain the same way the
// teacher's EndMarker lets pipeline.IsEndMark classify a chain.
type Kinder interface {
	ErrorKind() Kind
}

// kindError is the concrete Kinder implementation wrapped by New/Wrap.
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string {
	if e.err == nil {
		return string(e.kind)
	}
	return string(e.kind) + ": " + e.err.Error()
}

func (e *kindError) Unwrap() error { return e.err }

func (e *kindError) ErrorKind() Kind { return e.kind }

// New creates a new error of the given kind with the given message.
func New(kind Kind, msg string) error {
	return &kindError{kind: kind, err: errors.New(msg)}
}

// Wrap tags err with kind, preserving err in the chain so errors.Is/As
// and errors.Cause still reach the original cause.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: errors.Wrap(err, msg)}
}

// KindOf reports the Kind of err if it (or anything it wraps) was
// produced by New/Wrap, following the teacher's IsEndMark
// errors.As-against-an-interface idiom.
func KindOf(err error) (Kind, bool) {
	var k Kinder
	if errors.As(err, &k) {
		return k.ErrorKind(), true
	}
	return "", false
}

// Is reports whether err was tagged with the given kind anywhere in its
// chain.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsCancellation reports whether err represents normal
// cancellation/shutdown rather than a failure worth logging.
func IsCancellation(err error) bool {
	return Is(err, Cancellation)
}
