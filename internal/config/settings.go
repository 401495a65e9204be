// Package config implements the settings store (A2, spec §6): the JSON
// settings blob's schema, its built-in defaults, an XDG-style locator
// grounded on the teacher's LocateRcfile/ConfigLocator (config.go), and an
// atomically swappable in-memory snapshot (spec §5: "Settings are read
// through an atomically swappable snapshot; writers serialize through the
// settings collaborator").
package config

import (
	"encoding/json"
	"fmt"

	"github.com/screenreader/core/internal/echo"
	"github.com/screenreader/core/internal/nav"
)

// ModifierKeyChoice selects which physical key the keyboard hook treats as
// the screen-reader modifier (spec §3/§6: "modifier-key choice"). This is
// the user's configured choice, distinct from keys.Modifier's bitfield of
// modifiers held down during a given key event.
type ModifierKeyChoice int

const (
	ModifierInsert ModifierKeyChoice = iota
	ModifierCapsLock
)

var modifierKeyChoiceNames = map[ModifierKeyChoice]string{
	ModifierInsert:   "Insert",
	ModifierCapsLock: "CapsLock",
}

// String renders the choice using the settings-file spelling (spec §6).
func (m ModifierKeyChoice) String() string {
	return modifierKeyChoiceNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m ModifierKeyChoice) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting "Insert" or
// "CapsLock" (spec §6).
func (m *ModifierKeyChoice) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case "Insert":
		*m = ModifierInsert
	case "CapsLock":
		*m = ModifierCapsLock
	default:
		return fmt.Errorf("invalid modifier key choice %q", s)
	}
	return nil
}

// Settings is the full persisted record (spec §3/§6: "Record of {verbosity
// level, speech WPM, voice name, typing-echo mode, audio-cues enabled,
// announce-visited-links, modifier-key choice, first-run-completed}").
type Settings struct {
	VerbosityLevel       nav.Verbosity     `json:"VerbosityLevel"`
	SpeechRateWpm        int               `json:"SpeechRateWpm"`
	VoiceName            string            `json:"VoiceName"`
	TypingEchoMode       echo.Mode         `json:"TypingEchoMode"`
	AudioCuesEnabled     bool              `json:"AudioCuesEnabled"`
	AnnounceVisitedLinks bool              `json:"AnnounceVisitedLinks"`
	ModifierKey          ModifierKeyChoice `json:"ModifierKey"`
	FirstRunCompleted    bool              `json:"FirstRunCompleted"`
}

// Speech rate bounds (spec §6: "SpeechRateWpm in [150,450]").
const (
	MinSpeechRateWpm = 150
	MaxSpeechRateWpm = 450
)

// Defaults returns the built-in default record (spec §6: "Beginner
// verbosity, 200 WPM, no voice, Both echo, cues enabled, visited links
// announced, Insert modifier, first-run incomplete").
func Defaults() Settings {
	return Settings{
		VerbosityLevel:       nav.Beginner,
		SpeechRateWpm:        200,
		VoiceName:            "",
		TypingEchoMode:       echo.ModeBoth,
		AudioCuesEnabled:     true,
		AnnounceVisitedLinks: true,
		ModifierKey:          ModifierInsert,
		FirstRunCompleted:    false,
	}
}

// Clamp forces s.SpeechRateWpm into [MinSpeechRateWpm, MaxSpeechRateWpm],
// leaving every other field untouched. Called after decode and after the
// wizard's rate-adjustment step (spec §4.17).
func (s *Settings) Clamp() {
	if s.SpeechRateWpm < MinSpeechRateWpm {
		s.SpeechRateWpm = MinSpeechRateWpm
	}
	if s.SpeechRateWpm > MaxSpeechRateWpm {
		s.SpeechRateWpm = MaxSpeechRateWpm
	}
}

// Decode parses a settings JSON blob on top of the built-in defaults, so a
// partial file (missing keys) still yields valid values rather than zero
// values. Mirrors the teacher's ReadFilename decode-into-existing-struct
// behavior (config.go), minus the YAML branch (spec §6 names JSON only).
func Decode(data []byte) (Settings, error) {
	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	s.Clamp()
	return s, nil
}

// Encode marshals s as indented JSON, matching the teacher's human-editable
// config file convention.
func Encode(s Settings) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
