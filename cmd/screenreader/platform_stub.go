package main

import (
	"context"

	"github.com/screenreader/core/internal/speech"
)

// The TTS engine, the audio device/asset loader, and the accessibility
// tree's platform source are external collaborators out of scope for this
// module (spec §1): production wiring replaces every type in this file
// with a real SAPI/UIA-backed implementation. These stand in so the
// process still starts, speaks nothing audible, and exercises every other
// component -- the same role hook_other.go's stub Hook plays on
// non-Windows builds.

type nullBackend struct{}

func (nullBackend) Speak(ctx context.Context, u speech.Utterance) error { return nil }
func (nullBackend) Cancel()                                             {}
func (nullBackend) SetRate(wpm int) error                               { return nil }
func (nullBackend) SetVoice(name string) error                          { return nil }
func (nullBackend) AvailableVoices() []string                           { return nil }
func (nullBackend) IsSpeaking() bool                                    { return false }

type nullAssetLoader struct{}

func (nullAssetLoader) Load(name string) ([]byte, bool) { return nil, false }

type nullAudioDevice struct{}

func (nullAudioDevice) Play(pcm []byte) {}
