package echo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenreader/core/internal/keys"
)

func keyUp(vk keys.VKCode, mods keys.Modifier) keys.KeyEvent {
	return keys.KeyEvent{VK: vk, Modifiers: mods, Down: false}
}

func TestWordsModeEmitsOneWordEchoOnSpace(t *testing.T) {
	h := NewHandler(func() Mode { return ModeWords })

	var got []Echo
	for _, vk := range []keys.VKCode{vkH(), vkE(), vkL(), vkL(), vkO()} {
		got = append(got, h.HandleKeyUp(keyUp(vk, 0))...)
	}
	got = append(got, h.HandleKeyUp(keyUp(vkSpace, 0))...)

	assert.Equal(t, []Echo{{Text: "hello", IsWord: true}}, got)
}

func TestCharactersModeEchoesEachKeyAndBoundary(t *testing.T) {
	h := NewHandler(func() Mode { return ModeCharacters })

	e := h.HandleKeyUp(keyUp(vkA, 0))
	assert.Equal(t, []Echo{{Text: "a", IsWord: false}}, e)

	e = h.HandleKeyUp(keyUp(vkSpace, 0))
	assert.Equal(t, []Echo{{Text: "Space", IsWord: false}}, e)
}

func TestBothModeEmitsWordThenBoundaryName(t *testing.T) {
	h := NewHandler(func() Mode { return ModeBoth })

	_ = h.HandleKeyUp(keyUp(vkH(), 0))
	_ = h.HandleKeyUp(keyUp(vkI(), 0))
	e := h.HandleKeyUp(keyUp(vkReturn, 0))

	assert.Equal(t, []Echo{
		{Text: "hi", IsWord: true},
		{Text: "Return", IsWord: false},
	}, e)
}

func TestNoneModeEmitsNothingAndResets(t *testing.T) {
	h := NewHandler(func() Mode { return ModeNone })

	e := h.HandleKeyUp(keyUp(vkA, 0))
	assert.Nil(t, e)
	assert.True(t, h.buf.Empty())
}

func TestBackspacePopsWordBuffer(t *testing.T) {
	h := NewHandler(func() Mode { return ModeWords })

	_ = h.HandleKeyUp(keyUp(vkH(), 0))
	_ = h.HandleKeyUp(keyUp(vkI(), 0))
	h.HandleKeyDown(keys.KeyEvent{VK: vkBack, Down: true})

	e := h.HandleKeyUp(keyUp(vkSpace, 0))
	assert.Equal(t, []Echo{{Text: "h", IsWord: true}}, e)
}

func TestShiftedDigitProducesSymbolName(t *testing.T) {
	h := NewHandler(func() Mode { return ModeCharacters })

	e := h.HandleKeyUp(keyUp(vk0+2, keys.ModShift)) // Shift+2 -> '@'
	assert.Equal(t, []Echo{{Text: "at", IsWord: false}}, e)
}

func TestCommaIsWordBoundary(t *testing.T) {
	h := NewHandler(func() Mode { return ModeWords })

	_ = h.HandleKeyUp(keyUp(vkH(), 0))
	e := h.HandleKeyUp(keyUp(vkOEMComma, 0))
	assert.Equal(t, []Echo{{Text: "h", IsWord: true}}, e)
}

// vkH, vkI, vkE, vkL, vkO return the VK codes for the letters used in the
// "hello"/"hi" fixtures above, computed from the A-Z base the same way
// printableChar does, to avoid repeating magic numbers in each test.
func vkH() keys.VKCode { return vkA + ('h' - 'a') }
func vkI() keys.VKCode { return vkA + ('i' - 'a') }
func vkE() keys.VKCode { return vkA + ('e' - 'a') }
func vkL() keys.VKCode { return vkA + ('l' - 'a') }
func vkO() keys.VKCode { return vkA + ('o' - 'a') }
