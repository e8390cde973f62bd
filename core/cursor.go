package core

import (
	"unicode"

	"github.com/ionut-t/rowedit/buffer"
)

// Cursor is a grapheme position in a document. Y may equal the document
// length, addressing the empty append row below the last one.
type Cursor struct {
	buffer.Position
	Preferred int // X remembered across vertical moves
}

func rowLen(doc *buffer.Document, y int) int {
	if row, ok := doc.Row(y); ok {
		return row.Len()
	}
	return 0
}

// Clamp keeps the cursor within 0 <= Y <= doc.Len() and 0 <= X <= row length.
func (c *Cursor) Clamp(doc *buffer.Document) {
	c.Y = max(0, min(c.Y, doc.Len()))
	c.X = max(0, min(c.X, rowLen(doc, c.Y)))
}

// MoveLeft steps one grapheme back, wrapping to the end of the previous row.
func (c *Cursor) MoveLeft(doc *buffer.Document) bool {
	switch {
	case c.X > 0:
		c.X--
	case c.Y > 0:
		c.Y--
		c.X = rowLen(doc, c.Y)
	default:
		return false
	}
	c.Preferred = c.X
	return true
}

// MoveRight steps one grapheme forward, wrapping to the start of the next
// row.
func (c *Cursor) MoveRight(doc *buffer.Document) bool {
	switch {
	case c.X < rowLen(doc, c.Y):
		c.X++
	case c.Y < doc.Len():
		c.Y++
		c.X = 0
	default:
		return false
	}
	c.Preferred = c.X
	return true
}

func (c *Cursor) MoveUp(doc *buffer.Document, n int) {
	c.Y = max(0, c.Y-n)
	c.X = min(c.Preferred, rowLen(doc, c.Y))
}

func (c *Cursor) MoveDown(doc *buffer.Document, n int) {
	c.Y = min(doc.Len(), c.Y+n)
	c.X = min(c.Preferred, rowLen(doc, c.Y))
}

func (c *Cursor) MoveToLineStart() {
	c.X = 0
	c.Preferred = 0
}

func (c *Cursor) MoveToLineEnd(doc *buffer.Document) {
	c.X = rowLen(doc, c.Y)
	c.Preferred = c.X
}

// MoveToFirstNonBlank moves to the first grapheme that is not a space or
// tab, or to the end of a blank row.
func (c *Cursor) MoveToFirstNonBlank(doc *buffer.Document) {
	c.MoveToLineStart()
	row, ok := doc.Row(c.Y)
	if !ok {
		return
	}
	for c.X < row.Len() {
		g := []rune(row.Grapheme(c.X))
		if len(g) == 0 || !unicode.IsSpace(g[0]) {
			break
		}
		c.X++
	}
	c.Preferred = c.X
}

func (c *Cursor) MoveToBufferStart() {
	c.Y = 0
	c.MoveToLineStart()
}

// MoveToBufferEnd moves to the start of the last row.
func (c *Cursor) MoveToBufferEnd(doc *buffer.Document) {
	c.Y = max(0, doc.Len()-1)
	c.MoveToLineStart()
}
