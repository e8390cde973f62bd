package core

import (
	"fmt"

	"github.com/ionut-t/rowedit/buffer"
)

type searchMode struct {
	searchBuffer []rune
	origin       Cursor // Cursor before the search started, restored on cancel
	found        bool   // Whether the query typed so far has a match
}

func NewSearchMode() EditorMode  { return &searchMode{} }
func (m *searchMode) Name() Mode { return SearchMode }

func (m *searchMode) Enter(editor Editor) {
	editor.DispatchSignal(EnterSearchModeSignal{})
	m.searchBuffer = m.searchBuffer[:0]
	m.found = false
	m.origin = editorOf(editor).cursor
	editor.UpdateStatus(statusFor(SearchMode))
	editor.UpdateCommand(m.prompt(editor))
}

func (m *searchMode) Exit(editor Editor) {
	editor.UpdateCommand("")
}

func (m *searchMode) prompt(editor Editor) string {
	p := "/"
	if editor.State().SearchDirection == buffer.Backward {
		p = "?"
	}
	return p + string(m.searchBuffer)
}

func (m *searchMode) HandleKey(editor Editor, key KeyEvent) *Error {
	e := editorOf(editor)

	switch key.Key {
	case KeyEscape:
		m.cancel(e)
		return nil

	case KeyBackspace:
		if len(m.searchBuffer) == 0 {
			m.cancel(e)
			return nil
		}
		m.searchBuffer = m.searchBuffer[:len(m.searchBuffer)-1]

	case KeyEnter:
		query := string(m.searchBuffer)
		e.state.SearchQuery = query
		e.SetSearchWord(query)
		editor.SetNormalMode()
		if query != "" && !m.found {
			return newError(ErrNoMatchId, fmt.Errorf("%w: %s", ErrNoMatch, query))
		}
		return nil

	default:
		if !key.printable() {
			return nil
		}
		m.searchBuffer = append(m.searchBuffer, key.Rune)
	}

	editor.UpdateCommand(m.prompt(editor))
	m.incremental(e)
	return nil
}

// incremental moves the cursor to the match nearest the origin for the
// query typed so far, or back to the origin when there is none.
func (m *searchMode) incremental(e *editor) {
	query := string(m.searchBuffer)
	e.SetSearchWord(query)
	e.cursor = m.origin
	m.found = false

	if query == "" {
		return
	}

	from := m.origin.Position
	if e.state.SearchDirection == buffer.Forward {
		from.X++
	}
	if pos, err := e.find(query, from, e.state.SearchDirection); err == nil {
		e.SetCursor(pos)
		m.found = true
	}
}

func (m *searchMode) cancel(e *editor) {
	e.cursor = m.origin
	e.SetSearchWord("")
	e.SetNormalMode()
}
