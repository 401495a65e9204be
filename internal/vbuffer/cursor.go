package vbuffer

import "strings"

// BoundaryCue names the cue to play when a cursor movement hits a boundary
// or wraps (spec §4.13, cue names from speech.Cue*).
type BoundaryCue int

const (
	CueNone BoundaryCue = iota
	CueBoundary
	CueWrap
)

// MoveResult is the outcome of a single cursor movement.
type MoveResult struct {
	Text string // the new granule's text; empty if Cue == CueBoundary
	Cue  BoundaryCue
}

// Cursor tracks an absolute offset into a Document's flat text (spec §4.13).
// Wrap policy is configurable; default (zero value) is no wrap.
type Cursor struct {
	doc    *Document
	offset int
	wrap   bool
}

// NewCursor creates a Cursor positioned at offset 0 of doc.
func NewCursor(doc *Document) *Cursor {
	return &Cursor{doc: doc}
}

// SetWrap configures whether line/word/char movement wraps at document
// boundaries.
func (c *Cursor) SetWrap(wrap bool) {
	c.wrap = wrap
}

// Offset returns the cursor's current absolute offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// CurrentNode returns the node bracketing the cursor's offset, if any.
func (c *Cursor) CurrentNode() (*Node, bool) {
	return c.doc.FindNodeAtOffset(c.offset)
}

// CurrentLine returns the text of the line containing the cursor's current
// offset, without moving it (spec §4.15 step 1: "speak the current line").
func (c *Cursor) CurrentLine() string {
	text := c.doc.FlatText
	start := lineStart(text, c.offset)
	return lineAt(text, start)
}

// CurrentWord returns the text of the word containing the cursor's current
// offset, without moving it (mirrors CurrentLine; used by ReadCurrentWord).
func (c *Cursor) CurrentWord() string {
	text := c.doc.FlatText
	i := c.offset
	for i > 0 && !isSpace(text[i-1]) {
		i--
	}
	return wordAt(text, i)
}

// NextChar moves one character forward.
func (c *Cursor) NextChar() MoveResult {
	return c.moveChar(1)
}

// PrevChar moves one character backward.
func (c *Cursor) PrevChar() MoveResult {
	return c.moveChar(-1)
}

func (c *Cursor) moveChar(delta int) MoveResult {
	text := c.doc.FlatText
	next := c.offset + delta
	if next < 0 || next >= len(text) {
		if c.wrap {
			if delta > 0 {
				c.offset = 0
			} else {
				c.offset = len(text) - 1
			}
			if c.offset < 0 {
				c.offset = 0
			}
			return MoveResult{Text: charAt(text, c.offset), Cue: CueWrap}
		}
		return MoveResult{Cue: CueBoundary}
	}
	c.offset = next
	return MoveResult{Text: charAt(text, c.offset)}
}

func charAt(text string, offset int) string {
	if offset < 0 || offset >= len(text) {
		return ""
	}
	return string(text[offset])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// NextWord skips non-whitespace then whitespace, stopping at the next
// non-whitespace character (spec §4.13). Boundary if none exists.
func (c *Cursor) NextWord() MoveResult {
	text := c.doc.FlatText
	i := c.offset
	for i < len(text) && !isSpace(text[i]) {
		i++
	}
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i >= len(text) {
		if c.wrap {
			c.offset = 0
			return MoveResult{Text: wordAt(text, 0), Cue: CueWrap}
		}
		return MoveResult{Cue: CueBoundary}
	}
	c.offset = i
	return MoveResult{Text: wordAt(text, i)}
}

// PrevWord steps back over whitespace, then over non-whitespace, landing on
// the word's start (spec §4.13).
func (c *Cursor) PrevWord() MoveResult {
	text := c.doc.FlatText
	i := c.offset
	for i > 0 && isSpace(text[i-1]) {
		i--
	}
	for i > 0 && !isSpace(text[i-1]) {
		i--
	}
	if i == c.offset {
		if c.wrap {
			last := lastWordStart(text)
			c.offset = last
			return MoveResult{Text: wordAt(text, last), Cue: CueWrap}
		}
		return MoveResult{Cue: CueBoundary}
	}
	c.offset = i
	return MoveResult{Text: wordAt(text, i)}
}

func wordAt(text string, start int) string {
	end := start
	for end < len(text) && !isSpace(text[end]) {
		end++
	}
	return text[start:end]
}

func lastWordStart(text string) int {
	i := len(text)
	for i > 0 && isSpace(text[i-1]) {
		i--
	}
	end := i
	for i > 0 && !isSpace(text[i-1]) {
		i--
	}
	if i == end {
		return 0
	}
	return i
}

// NextLine moves to the start of the next line, using the newline injected
// by the builder as the separator (spec §4.13).
func (c *Cursor) NextLine() MoveResult {
	text := c.doc.FlatText
	i := strings.IndexByte(text[c.offset:], '\n')
	if i < 0 {
		if c.wrap {
			c.offset = 0
			return MoveResult{Text: lineAt(text, 0), Cue: CueWrap}
		}
		return MoveResult{Cue: CueBoundary}
	}
	start := c.offset + i + 1
	if start >= len(text) {
		if c.wrap {
			c.offset = 0
			return MoveResult{Text: lineAt(text, 0), Cue: CueWrap}
		}
		return MoveResult{Cue: CueBoundary}
	}
	c.offset = start
	return MoveResult{Text: lineAt(text, start)}
}

// PrevLine moves to the start of the previous line.
func (c *Cursor) PrevLine() MoveResult {
	text := c.doc.FlatText
	curStart := lineStart(text, c.offset)
	if curStart == 0 {
		if c.wrap {
			start := lastLineStart(text)
			c.offset = start
			return MoveResult{Text: lineAt(text, start), Cue: CueWrap}
		}
		return MoveResult{Cue: CueBoundary}
	}
	start := lineStart(text, curStart-1)
	c.offset = start
	return MoveResult{Text: lineAt(text, start)}
}

func lineStart(text string, offset int) int {
	i := strings.LastIndexByte(text[:offset], '\n')
	if i < 0 {
		return 0
	}
	return i + 1
}

func lineAt(text string, start int) string {
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : start+end]
}

func lastLineStart(text string) int {
	end := len(text)
	if end > 0 && text[end-1] == '\n' {
		end--
	}
	return lineStart(text, end)
}
