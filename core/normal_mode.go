package core

import "github.com/ionut-t/rowedit/buffer"

type normalMode struct {
	pendingKey rune // First key of a two key command such as dd or yy
}

func NewNormalMode() EditorMode { return &normalMode{} }

func (m *normalMode) Name() Mode { return NormalMode }

func (m *normalMode) Enter(editor Editor) {
	editor.UpdateStatus(statusFor(NormalMode))
	editor.UpdateCommand("")
	m.pendingKey = 0
}

func (m *normalMode) Exit(editor Editor) {
	m.pendingKey = 0
}

func (m *normalMode) HandleKey(editor Editor, key KeyEvent) *Error {
	e := editorOf(editor)

	if m.pendingKey != 0 {
		first := m.pendingKey
		m.pendingKey = 0
		editor.UpdateCommand("")
		return m.handlePending(e, first, key)
	}

	doc := e.doc
	c := &e.cursor

	switch {
	// Movement
	case key.Rune == 'h' || key.Key == KeyLeft:
		c.MoveLeft(doc)
	case key.Rune == 'l' || key.Key == KeyRight:
		c.MoveRight(doc)
	case key.Rune == 'k' || key.Key == KeyUp:
		c.MoveUp(doc, 1)
	case key.Rune == 'j' || key.Key == KeyDown:
		c.MoveDown(doc, 1)
	case key.Rune == '0' || key.Key == KeyHome:
		c.MoveToLineStart()
	case key.Rune == '$' || key.Key == KeyEnd:
		c.MoveToLineEnd(doc)
	case key.Key == KeyPageUp:
		c.MoveUp(doc, e.state.ViewportHeight)
	case key.Key == KeyPageDown:
		c.MoveDown(doc, e.state.ViewportHeight)
	case key.Rune == 'g':
		c.MoveToBufferStart()
	case key.Rune == 'G':
		c.MoveToBufferEnd(doc)

	// Entering insert mode
	case key.Rune == 'i':
		editor.SetInsertMode()
	case key.Rune == 'a':
		if c.X < rowLen(doc, c.Y) {
			c.X++
		}
		editor.SetInsertMode()
	case key.Rune == 'A':
		c.MoveToLineEnd(doc)
		editor.SetInsertMode()
	case key.Rune == 'I':
		c.MoveToFirstNonBlank(doc)
		editor.SetInsertMode()
	case key.Rune == 'o':
		if c.Y < doc.Len() {
			doc.InsertNewline(buffer.Position{X: rowLen(doc, c.Y), Y: c.Y})
			c.Y++
		}
		c.MoveToLineStart()
		editor.SetInsertMode()
	case key.Rune == 'O':
		doc.InsertNewline(buffer.Position{Y: c.Y})
		c.MoveToLineStart()
		editor.SetInsertMode()

	// Editing
	case key.Rune == 'x' || key.Key == KeyDelete:
		if c.X < rowLen(doc, c.Y) {
			doc.Delete(c.Position)
		}
	case key.Rune == 'X':
		if c.X > 0 {
			c.MoveLeft(doc)
			doc.Delete(c.Position)
		}
	case key.Rune == 'J':
		if c.Y < doc.Len()-1 {
			doc.Delete(buffer.Position{X: rowLen(doc, c.Y), Y: c.Y})
		}
	case key.Rune == 'p':
		if err := editor.Paste(); err != nil {
			return newError(ErrFailedToPasteId, err)
		}
	case key.Rune == 'd' || key.Rune == 'y':
		m.pendingKey = key.Rune
		editor.UpdateCommand(string(key.Rune))

	// Search
	case key.Rune == '/':
		editor.SetSearchMode(buffer.Forward)
	case key.Rune == '?':
		editor.SetSearchMode(buffer.Backward)
	case key.Rune == 'n' || key.Rune == 'N':
		if err := editor.SearchNext(key.Rune == 'N'); err != nil {
			return newError(ErrNoMatchId, err)
		}

	case key.Rune == ':':
		editor.SetCommandMode()

	case key.Key == KeyEscape:
		editor.SetSearchWord("")
		editor.UpdateCommand("")
	}

	return nil
}

func (m *normalMode) handlePending(e *editor, first rune, key KeyEvent) *Error {
	if key.Rune != first {
		// Unknown pair; the sequence is dropped.
		return nil
	}

	switch first {
	case 'y':
		if err := e.Yank(); err != nil {
			return newError(ErrFailedToYankId, err)
		}
	case 'd':
		if e.cursor.Y >= e.doc.Len() {
			return nil
		}
		// The removed row stays available to p.
		if e.clipboard != nil {
			if row, ok := e.doc.Row(e.cursor.Y); ok {
				_ = e.clipboard.Write(row.String() + "\n")
			}
		}
		e.deleteRow()
		e.DispatchMessage(RowDeletedMessage)
	}
	return nil
}
