package vbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func docFromText(t *testing.T, nodes []*Node, text string) *Document {
	t.Helper()
	doc := newEmptyDocument()
	doc.FlatText = text
	doc.Nodes = nodes
	return doc
}

func TestCursorCharMovement(t *testing.T) {
	doc := docFromText(t, nil, "ab")
	c := NewCursor(doc)

	r := c.NextChar()
	assert.Equal(t, "b", r.Text)
	assert.Equal(t, CueNone, r.Cue)

	r = c.NextChar()
	assert.Equal(t, CueBoundary, r.Cue)
}

func TestCursorCharWrap(t *testing.T) {
	doc := docFromText(t, nil, "ab")
	c := NewCursor(doc)
	c.SetWrap(true)
	c.NextChar()
	r := c.NextChar()
	assert.Equal(t, CueWrap, r.Cue)
	assert.Equal(t, "a", r.Text)
}

func TestCursorWordMovement(t *testing.T) {
	doc := docFromText(t, nil, "hello world")
	c := NewCursor(doc)

	r := c.NextWord()
	assert.Equal(t, "world", r.Text)

	r = c.NextWord()
	assert.Equal(t, CueBoundary, r.Cue)

	r = c.PrevWord()
	assert.Equal(t, "hello", r.Text)
}

func TestCursorLineMovement(t *testing.T) {
	doc := docFromText(t, nil, "line one\nline two\n")
	c := NewCursor(doc)

	r := c.NextLine()
	assert.Equal(t, "line two", r.Text)

	r = c.NextLine()
	assert.Equal(t, CueBoundary, r.Cue)

	r = c.PrevLine()
	assert.Equal(t, "line one", r.Text)
}

func TestCursorCurrentLineDoesNotMove(t *testing.T) {
	doc := docFromText(t, nil, "line one\nline two\n")
	c := NewCursor(doc)

	assert.Equal(t, "line one", c.CurrentLine())
	assert.Equal(t, 0, c.Offset())

	c.NextLine()
	assert.Equal(t, "line two", c.CurrentLine())
}

func TestCursorCurrentWordDoesNotMove(t *testing.T) {
	doc := docFromText(t, nil, "hello world")
	c := NewCursor(doc)

	assert.Equal(t, "hello", c.CurrentWord())
	assert.Equal(t, 0, c.Offset())

	c.NextWord()
	assert.Equal(t, "world", c.CurrentWord())
	assert.Equal(t, 6, c.Offset())
}

func TestCursorCurrentWordMidWord(t *testing.T) {
	doc := docFromText(t, nil, "hello world")
	c := NewCursor(doc)
	c.NextChar()
	c.NextChar()

	assert.Equal(t, "hello", c.CurrentWord())
}
