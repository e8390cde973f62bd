package core

type insertMode struct{}

func NewInsertMode() EditorMode { return &insertMode{} }

func (m *insertMode) Name() Mode { return InsertMode }

func (m *insertMode) Enter(editor Editor) {
	editor.UpdateStatus(statusFor(InsertMode))
	editor.UpdateCommand("")
}

// Exit steps the cursor back onto the last inserted grapheme.
func (m *insertMode) Exit(editor Editor) {
	e := editorOf(editor)
	if e.cursor.X > 0 {
		e.cursor.X--
		e.cursor.Preferred = e.cursor.X
	}
}

func (m *insertMode) HandleKey(editor Editor, key KeyEvent) *Error {
	e := editorOf(editor)
	doc := e.doc
	c := &e.cursor

	switch key.Key {
	case KeyEscape:
		editor.SetNormalMode()

	case KeyBackspace:
		if !c.MoveLeft(doc) {
			return newError(ErrStartOfBufferId, ErrStartOfBuffer)
		}
		// At column 0 the cursor wrapped to the end of the previous row,
		// so this joins the two rows.
		doc.Delete(c.Position)

	case KeyDelete:
		doc.Delete(c.Position)

	case KeyEnter:
		c.Position = e.insertAt(c.Position, "\n")
		c.Preferred = 0

	case KeyTab:
		c.Position = e.insertAt(c.Position, "\t")
		c.Preferred = c.X

	case KeyLeft:
		c.MoveLeft(doc)
	case KeyRight:
		c.MoveRight(doc)
	case KeyUp:
		c.MoveUp(doc, 1)
	case KeyDown:
		c.MoveDown(doc, 1)
	case KeyHome:
		c.MoveToLineStart()
	case KeyEnd:
		c.MoveToLineEnd(doc)

	default:
		if key.printable() {
			c.Position = e.insertAt(c.Position, string(key.Rune))
			c.Preferred = c.X
		}
	}

	return nil
}
