package speech

import "context"

// Backend is the external speech synthesis collaborator (spec §6). The TTS
// engine itself is out of scope for this module; components interact with
// it only through this interface.
type Backend interface {
	// Speak synthesizes and plays u, blocking until playback completes or
	// ctx is cancelled. Implementations must treat ctx cancellation as
	// equivalent to Cancel() having been called for this utterance.
	Speak(ctx context.Context, u Utterance) error
	// Cancel synchronously stops any in-progress playback.
	Cancel()
	// SetRate sets the speech rate; wpm must be in [150,450].
	SetRate(wpm int) error
	// SetVoice selects a voice by name.
	SetVoice(name string) error
	// AvailableVoices lists the backend's installed voices.
	AvailableVoices() []string
	// IsSpeaking reports whether playback is currently in progress.
	IsSpeaking() bool
}
