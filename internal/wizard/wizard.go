// Package wizard implements the first-run wizard (part of C15, spec
// §4.17): seven speech-only steps driven by key events read directly from
// the input hook, bypassing the mode-aware dispatcher (internal/keymap,
// internal/mode) entirely. Grounded on the teacher's top-level orchestrating
// style (percol.go/peco.go) for the step sequencing. The step-1 timeout is
// a real timer whose duration is the package variable InactivityTimeout.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/screenreader/core/internal/config"
	"github.com/screenreader/core/internal/keys"
	"github.com/screenreader/core/internal/nav"
	"github.com/screenreader/core/internal/speech"
)

// InactivityTimeout is step 1's auto-skip timeout (spec §4.17 step 1,
// §5: "First-run wizard step 1 has a 30-second inactivity timeout that
// auto-skips"). A package variable so tests don't have to wait 30 real
// seconds.
var InactivityTimeout = 30 * time.Second

// RateStepWpm is the per-keypress speech-rate adjustment (spec §4.17 step
// 2: "Up/Down adjust by 10 WPM").
const RateStepWpm = 10

const testSentence = "The quick brown fox jumps over the lazy dog."

// Win32 virtual-key codes this package reacts to. Kept local, matching the
// style of internal/keymap's and internal/echo's package-private vk consts.
const (
	vkEnter  keys.VKCode = 0x0D
	vkEscape keys.VKCode = 0x1B
	vkUp     keys.VKCode = 0x26
	vkDown   keys.VKCode = 0x28
	vk1      keys.VKCode = 0x31
	vk2      keys.VKCode = 0x32
	vk3      keys.VKCode = 0x33
)

// Wizard drives the seven-step first-run sequence. It speaks directly
// through the utterance queue and the backend (for SetRate/SetVoice), and
// persists the result through the settings store.
type Wizard struct {
	queue   *speech.Queue
	backend speech.Backend
	store   *config.Store
}

// New creates a Wizard.
func New(queue *speech.Queue, backend speech.Backend, store *config.Store) *Wizard {
	return &Wizard{queue: queue, backend: backend, store: store}
}

// Run drives all seven steps in order over keyEvents, which should deliver
// every key-down and key-up event read directly from the hook (spec
// §4.17: "driven by key events read directly from the input hook").
// It returns the settings that were persisted and whether the wizard ran
// to completion; completed is false when step 1 was skipped (Escape or
// inactivity timeout), in which case only FirstRunCompleted was updated.
func (w *Wizard) Run(ctx context.Context, keyEvents <-chan keys.KeyEvent) (settings config.Settings, completed bool, err error) {
	settings = w.store.Get()

	proceed, err := w.step1Welcome(ctx, keyEvents)
	if err != nil {
		return config.Settings{}, false, err
	}
	if !proceed {
		settings.FirstRunCompleted = true
		if err := w.store.Set(settings); err != nil {
			return config.Settings{}, false, err
		}
		return settings, false, nil
	}

	settings.SpeechRateWpm = w.step2Rate(ctx, keyEvents, settings.SpeechRateWpm)
	settings.VoiceName = w.step3Voice(ctx, keyEvents, settings.VoiceName)
	settings.VerbosityLevel = w.step4Verbosity(ctx, keyEvents, settings.VerbosityLevel)
	settings.ModifierKey = w.step5ModifierKey(ctx, keyEvents, settings.ModifierKey)
	w.step6Tutorial(ctx, keyEvents)
	w.step7Completion()

	settings.FirstRunCompleted = true
	if err := w.store.Set(settings); err != nil {
		return config.Settings{}, false, err
	}
	return settings, true, nil
}

func (w *Wizard) speak(text string) {
	w.queue.Enqueue(speech.NewWithPriority(text, speech.Interrupt))
}

// waitForKey blocks for the next key event, returning ok=false if ctx is
// cancelled or the channel is closed.
func waitForKey(ctx context.Context, keyEvents <-chan keys.KeyEvent) (keys.KeyEvent, bool) {
	select {
	case <-ctx.Done():
		return keys.KeyEvent{}, false
	case k, ok := <-keyEvents:
		if !ok {
			return keys.KeyEvent{}, false
		}
		return k, true
	}
}

// step1Welcome speaks the welcome message and waits for Enter (continue),
// Escape (skip), or InactivityTimeout elapsing since entering the step
// (auto-skip). Any other key is ignored without resetting the timeout --
// "inactivity" is interpreted here as "no Enter/Escape within the window",
// not as a per-keystroke-reset timer (DESIGN.md Open Question decision).
func (w *Wizard) step1Welcome(ctx context.Context, keyEvents <-chan keys.KeyEvent) (bool, error) {
	w.speak("Welcome to the screen reader. Press Enter to continue, or Escape to skip setup.")

	timer := time.NewTimer(InactivityTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
			return false, nil
		case k, ok := <-keyEvents:
			if !ok {
				return false, nil
			}
			if !k.Down {
				continue
			}
			switch k.VK {
			case vkEnter:
				return true, nil
			case vkEscape:
				return false, nil
			}
		}
	}
}

// step2Rate lets Up/Down adjust the rate by RateStepWpm within
// [config.MinSpeechRateWpm, config.MaxSpeechRateWpm], re-speaking a test
// sentence at the new rate on every adjustment; Enter accepts (spec
// §4.17 step 2).
func (w *Wizard) step2Rate(ctx context.Context, keyEvents <-chan keys.KeyEvent, current int) int {
	rate := current
	w.speak(fmt.Sprintf("Speech rate, %d words per minute. Use Up or Down to adjust, Enter to accept.", rate))

	for {
		k, ok := waitForKey(ctx, keyEvents)
		if !ok {
			return rate
		}
		if !k.Down {
			continue
		}
		switch k.VK {
		case vkUp:
			rate = clampRate(rate + RateStepWpm)
			w.applyRateAndSpeak(rate)
		case vkDown:
			rate = clampRate(rate - RateStepWpm)
			w.applyRateAndSpeak(rate)
		case vkEnter:
			return rate
		}
	}
}

func (w *Wizard) applyRateAndSpeak(rate int) {
	_ = w.backend.SetRate(rate)
	w.speak(testSentence)
}

func clampRate(wpm int) int {
	if wpm < config.MinSpeechRateWpm {
		return config.MinSpeechRateWpm
	}
	if wpm > config.MaxSpeechRateWpm {
		return config.MaxSpeechRateWpm
	}
	return wpm
}

// step3Voice lets Up/Down cycle through the backend's voice list,
// re-speaking a test sentence on every selection; Enter accepts (spec
// §4.17 step 3). An empty voice list leaves the current voice untouched.
func (w *Wizard) step3Voice(ctx context.Context, keyEvents <-chan keys.KeyEvent, current string) string {
	voices := w.backend.AvailableVoices()
	voice := current
	idx := indexOf(voices, current)

	w.speak(voiceAnnouncement(voice))

	for {
		k, ok := waitForKey(ctx, keyEvents)
		if !ok {
			return voice
		}
		if !k.Down {
			continue
		}
		switch k.VK {
		case vkUp:
			if len(voices) == 0 {
				continue
			}
			if idx < 0 {
				idx = 0 // unset current: Up wraps to the last voice
			}
			idx = ((idx-1)%len(voices) + len(voices)) % len(voices)
			voice = voices[idx]
			w.applyVoiceAndSpeak(voice)
		case vkDown:
			if len(voices) == 0 {
				continue
			}
			idx = (idx + 1) % len(voices)
			voice = voices[idx]
			w.applyVoiceAndSpeak(voice)
		case vkEnter:
			return voice
		}
	}
}

func (w *Wizard) applyVoiceAndSpeak(voice string) {
	_ = w.backend.SetVoice(voice)
	w.speak(testSentence)
}

func voiceAnnouncement(voice string) string {
	if voice == "" {
		return "Voice selection. Use Up or Down to choose a voice, Enter to accept."
	}
	return fmt.Sprintf("Voice, %s. Use Up or Down to choose a voice, Enter to accept.", voice)
}

func indexOf(voices []string, name string) int {
	for i, v := range voices {
		if v == name {
			return i
		}
	}
	return -1
}

// step4Verbosity lets 1/2/3 choose Beginner/Intermediate/Advanced,
// advancing immediately on a digit press; Enter keeps the current level
// (spec §4.17 step 4).
func (w *Wizard) step4Verbosity(ctx context.Context, keyEvents <-chan keys.KeyEvent, current nav.Verbosity) nav.Verbosity {
	w.speak("Verbosity level. Press 1 for Beginner, 2 for Intermediate, 3 for Advanced, or Enter to keep current.")

	for {
		k, ok := waitForKey(ctx, keyEvents)
		if !ok {
			return current
		}
		if !k.Down {
			continue
		}
		switch k.VK {
		case vk1:
			return nav.Beginner
		case vk2:
			return nav.Intermediate
		case vk3:
			return nav.Advanced
		case vkEnter:
			return current
		}
	}
}

// step5ModifierKey lets 1/2 choose Insert/CapsLock, advancing immediately
// on a digit press; Enter keeps the current choice (spec §4.17 step 5).
func (w *Wizard) step5ModifierKey(ctx context.Context, keyEvents <-chan keys.KeyEvent, current config.ModifierKeyChoice) config.ModifierKeyChoice {
	w.speak("Modifier key. Press 1 for Insert, 2 for Caps Lock, or Enter to keep current.")

	for {
		k, ok := waitForKey(ctx, keyEvents)
		if !ok {
			return current
		}
		if !k.Down {
			continue
		}
		switch k.VK {
		case vk1:
			return config.ModifierInsert
		case vk2:
			return config.ModifierCapsLock
		case vkEnter:
			return current
		}
	}
}

const tutorialText = "Tutorial. Use the configured modifier key together with H for headings, " +
	"K for links, D for landmarks, F for form fields, and Tab to move between focusable elements. " +
	"Press Enter to finish setup."

// step6Tutorial speaks the tutorial text and waits for Enter (spec §4.17
// step 6).
func (w *Wizard) step6Tutorial(ctx context.Context, keyEvents <-chan keys.KeyEvent) {
	w.speak(tutorialText)

	for {
		k, ok := waitForKey(ctx, keyEvents)
		if !ok {
			return
		}
		if k.Down && k.VK == vkEnter {
			return
		}
	}
}

// step7Completion speaks the closing message (spec §4.17 step 7).
// Persistence happens in Run, once all steps have returned.
func (w *Wizard) step7Completion() {
	w.speak("Setup complete. Your settings have been saved.")
}
