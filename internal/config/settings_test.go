package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenreader/core/internal/echo"
	"github.com/screenreader/core/internal/nav"
)

func TestDefaultsMatchSpec(t *testing.T) {
	d := Defaults()
	assert.Equal(t, nav.Beginner, d.VerbosityLevel)
	assert.Equal(t, 200, d.SpeechRateWpm)
	assert.Equal(t, "", d.VoiceName)
	assert.Equal(t, echo.ModeBoth, d.TypingEchoMode)
	assert.True(t, d.AudioCuesEnabled)
	assert.True(t, d.AnnounceVisitedLinks)
	assert.Equal(t, ModifierInsert, d.ModifierKey)
	assert.False(t, d.FirstRunCompleted)
}

func TestDecodeEmptyObjectYieldsDefaults(t *testing.T) {
	s, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestDecodePartialObjectOverlaysDefaults(t *testing.T) {
	s, err := Decode([]byte(`{"SpeechRateWpm": 300, "VerbosityLevel": "Advanced"}`))
	require.NoError(t, err)
	assert.Equal(t, 300, s.SpeechRateWpm)
	assert.Equal(t, nav.Advanced, s.VerbosityLevel)
	assert.Equal(t, echo.ModeBoth, s.TypingEchoMode, "untouched field keeps its default")
}

func TestDecodeClampsOutOfRangeSpeechRate(t *testing.T) {
	tooLow, err := Decode([]byte(`{"SpeechRateWpm": 10}`))
	require.NoError(t, err)
	assert.Equal(t, MinSpeechRateWpm, tooLow.SpeechRateWpm)

	tooHigh, err := Decode([]byte(`{"SpeechRateWpm": 9000}`))
	require.NoError(t, err)
	assert.Equal(t, MaxSpeechRateWpm, tooHigh.SpeechRateWpm)
}

func TestDecodeRejectsUnknownEnumValue(t *testing.T) {
	_, err := Decode([]byte(`{"ModifierKey": "Shift"}`))
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrips(t *testing.T) {
	original := Settings{
		VerbosityLevel:       nav.Intermediate,
		SpeechRateWpm:        275,
		VoiceName:            "Zira",
		TypingEchoMode:       echo.ModeCharacters,
		AudioCuesEnabled:     false,
		AnnounceVisitedLinks: false,
		ModifierKey:          ModifierCapsLock,
		FirstRunCompleted:    true,
	}

	data, err := Encode(original)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestModifierKeyChoiceTextRoundTrip(t *testing.T) {
	text, err := ModifierInsert.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Insert", string(text))

	var m ModifierKeyChoice
	require.NoError(t, m.UnmarshalText([]byte("CapsLock")))
	assert.Equal(t, ModifierCapsLock, m)

	assert.Error(t, m.UnmarshalText([]byte("bogus")))
}
