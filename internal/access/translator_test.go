package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/screenreader/core/internal/clock"
	"github.com/screenreader/core/internal/event"
)

type fakeElement struct {
	runtimeID []int
	name      string
}

func (f fakeElement) RuntimeID() []int       { return f.runtimeID }
func (f fakeElement) Name() string           { return f.name }
func (f fakeElement) ControlType() string    { return "" }
func (f fakeElement) ARIARole() string       { return "" }
func (f fakeElement) ARIAProperties() string { return "" }
func (f fakeElement) IsFocusable() bool      { return false }
func (f fakeElement) Children() []Element    { return nil }

func TestTranslatorOnFocusChangedPostsEvent(t *testing.T) {
	bus := event.New(8)
	tr := NewTranslator(bus, clock.NewFake(time.Unix(0, 0)))

	tr.OnFocusChanged(50004, fakeElement{runtimeID: []int{1, 2}, name: "Search"})

	evt := <-bus.Chan()
	assert.Equal(t, event.FocusChanged, evt.Kind)
	assert.Equal(t, "Edit", evt.Focus.ControlType)
	assert.Equal(t, "Search", evt.Focus.Name)
	assert.Equal(t, []int{1, 2}, evt.Focus.RuntimeID)
}

func TestTranslatorOnStructureChangedPostsEvent(t *testing.T) {
	bus := event.New(8)
	tr := NewTranslator(bus, nil)

	tr.OnStructureChanged([]int{3}, nil)

	evt := <-bus.Chan()
	assert.Equal(t, event.StructureChanged, evt.Kind)
	assert.Equal(t, []int{3}, evt.StructureChanged.RuntimeID)
}
