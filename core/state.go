package core

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ionut-t/rowedit/buffer"
	"github.com/rivo/uniseg"
)

// State represents the complete current state of the editor
type State struct {
	Mode        Mode   // Current editing mode
	StatusLine  string // Mode indicator shown in the status bar
	CommandLine string // Command or search prompt being typed
	Quit        bool   // Set once the editor should exit

	// Viewport information, in rows and graphemes
	TopLine        int
	LeftCol        int
	ViewportHeight int
	ViewportWidth  int

	// Search
	SearchQuery     string           // Last confirmed query, repeated by n and N
	SearchDirection buffer.Direction // Direction of the last confirmed query
	SearchWord      string           // Word currently overlaid as Match
}

// InitialState creates a default state
func InitialState() State {
	return State{
		Mode:            NormalMode,
		StatusLine:      statusFor(NormalMode),
		ViewportHeight:  24,
		ViewportWidth:   80,
		SearchDirection: buffer.Forward,
	}
}

// Concrete implementation of Editor
type editor struct {
	doc         *buffer.Document
	cursor      Cursor
	currentMode EditorMode
	modes       map[Mode]EditorMode
	state       State

	clipboard    Clipboard
	updateSignal chan Signal
	beforeSave   func(path string)
}

// New creates an editor over doc in normal mode. A nil doc starts empty.
func New(doc *buffer.Document, clipboard Clipboard) Editor {
	if doc == nil {
		doc = buffer.New()
	}

	e := &editor{
		doc:          doc,
		modes:        make(map[Mode]EditorMode),
		state:        InitialState(),
		clipboard:    clipboard,
		updateSignal: make(chan Signal, 100),
	}

	e.modes[NormalMode] = NewNormalMode()
	e.modes[InsertMode] = NewInsertMode()
	e.modes[CommandMode] = NewCommandMode()
	e.modes[SearchMode] = NewSearchMode()

	e.currentMode = e.modes[NormalMode]
	e.currentMode.Enter(e)

	return e
}

func (e *editor) setMode(name Mode) error {
	mode, ok := e.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidMode, name)
	}

	if e.currentMode != nil {
		e.currentMode.Exit(e)
	}

	e.currentMode = mode
	e.state.Mode = name
	e.currentMode.Enter(e)

	return nil
}

func (e *editor) SetNormalMode()  { e.setMode(NormalMode) }
func (e *editor) SetInsertMode()  { e.setMode(InsertMode) }
func (e *editor) SetCommandMode() { e.setMode(CommandMode) }

func (e *editor) SetSearchMode(dir buffer.Direction) {
	e.state.SearchDirection = dir
	e.setMode(SearchMode)
}

func (e *editor) Document() *buffer.Document { return e.doc }

func (e *editor) SetDocument(doc *buffer.Document) {
	e.doc = doc
	e.cursor = Cursor{}
	e.state.TopLine = 0
	e.state.LeftCol = 0
	e.ScrollViewport()
}

func (e *editor) Cursor() buffer.Position { return e.cursor.Position }

func (e *editor) SetCursor(pos buffer.Position) {
	e.cursor.Position = pos
	e.cursor.Clamp(e.doc)
	e.cursor.Preferred = e.cursor.X
}

func (e *editor) Mode() EditorMode { return e.currentMode }

func (e *editor) Signals() <-chan Signal { return e.updateSignal }

func (e *editor) HandleKey(key KeyEvent) error {
	if e.currentMode == nil {
		return ErrInvalidMode
	}

	err := e.handleGlobalKey(key)
	if err == nil && !key.Ctrl('s') && !key.Ctrl('q') {
		err = e.currentMode.HandleKey(e, key)
	}

	e.cursor.Clamp(e.doc)
	e.ScrollViewport()

	if err != nil {
		e.DispatchError(err.id, err.err)
		return err.err
	}

	return nil
}

// handleGlobalKey handles the chords that work in every mode.
func (e *editor) handleGlobalKey(key KeyEvent) *Error {
	switch {
	case key.Ctrl('q'):
		e.Quit(true)
	case key.Ctrl('s'):
		if e.doc.FileName() == "" {
			// Prompt for a name the way ":w <name>" takes one.
			e.setMode(CommandMode)
			e.modes[CommandMode].(*commandMode).prefill(e, "w ")
			e.DispatchMessage(SaveAsMessage)
			return nil
		}
		if err := e.Save(); err != nil {
			return newError(ErrFailedToSaveId, err)
		}
	}
	return nil
}

func (e *editor) State() State { return e.state }

func (e *editor) UpdateStatus(status string) {
	e.state.StatusLine = status
}

func (e *editor) UpdateCommand(cmd string) {
	e.state.CommandLine = cmd
}

func (e *editor) SetViewport(width, height int) {
	e.state.ViewportWidth = max(1, width)
	e.state.ViewportHeight = max(1, height)
	e.ScrollViewport()
}

// ScrollViewport ensures the cursor is within the visible area
func (e *editor) ScrollViewport() {
	x, y := e.cursor.X, e.cursor.Y
	width, height := e.state.ViewportWidth, e.state.ViewportHeight

	if y < e.state.TopLine {
		e.state.TopLine = y
	} else if y >= e.state.TopLine+height {
		e.state.TopLine = y - height + 1
	}

	if x < e.state.LeftCol {
		e.state.LeftCol = x
	} else if x >= e.state.LeftCol+width {
		e.state.LeftCol = x - width + 1
	}
	if row, ok := e.doc.Row(y); ok {
		// wide graphemes and tabs take more than one cell
		for e.state.LeftCol < x && row.Columns(x+1)-row.Columns(e.state.LeftCol) > width {
			e.state.LeftCol++
		}
	}

	e.state.TopLine = max(0, e.state.TopLine)
	e.state.LeftCol = max(0, e.state.LeftCol)
}

// ExecuteCommand executes a command string (typically entered in command mode)
func (e *editor) ExecuteCommand(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	parts := strings.Fields(cmd)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "q", "quit":
		return e.Quit(false)

	case "q!", "quit!":
		return e.Quit(true)

	case "w", "write":
		if len(args) > 0 {
			return e.SaveAs(strings.Join(args, " "))
		}
		return e.Save()

	case "wq":
		if err := e.ExecuteCommand("w " + strings.Join(args, " ")); err != nil {
			return err
		}
		return e.Quit(false)

	case "x", "xit":
		if e.doc.IsDirty() {
			if err := e.Save(); err != nil {
				return err
			}
		}
		return e.Quit(false)

	default:
		// ":10" jumps to row 10
		lineNum := -1
		_, scanErr := fmt.Sscan(command, &lineNum)
		if scanErr == nil && lineNum > 0 && len(args) == 0 {
			e.SetCursor(buffer.Position{Y: min(lineNum, e.doc.Len()) - 1})
			e.ScrollViewport()
			return nil
		}
		return fmt.Errorf("%w: %s", ErrInvalidCommand, command)
	}
}

// Save writes the document to its file. A document without a file name
// cannot be written and yields buffer.ErrNoFileName.
func (e *editor) Save() error {
	if e.doc.FileName() == "" {
		return buffer.ErrNoFileName
	}
	e.notifyBeforeSave(e.doc.FileName())
	if err := e.doc.Save(); err != nil {
		return err
	}

	e.DispatchSignal(SaveSignal{path: e.doc.FileName()})
	e.DispatchMessage(ChangesSavedMessage)
	return nil
}

func (e *editor) SaveAs(name string) error {
	if name != "" {
		e.notifyBeforeSave(name)
	}
	if err := e.doc.SaveAs(name); err != nil {
		return err
	}

	e.DispatchSignal(SaveSignal{path: e.doc.FileName()})
	e.DispatchMessage(ChangesSavedMessage)
	return nil
}

func (e *editor) OnBeforeSave(fn func(path string)) {
	e.beforeSave = fn
}

func (e *editor) notifyBeforeSave(path string) {
	if e.beforeSave != nil {
		e.beforeSave(path)
	}
}

// Quit signals consumers to exit. Without force a dirty document refuses
// with ErrUnsavedChanges.
func (e *editor) Quit(force bool) error {
	if !force && e.doc.IsDirty() {
		return ErrUnsavedChanges
	}

	e.state.Quit = true
	select {
	case e.updateSignal <- QuitSignal{}:
	default:
		log.Println("Editor: Failed to send QuitSignal - channel full or not ready")
	}
	return nil
}

func (e *editor) SetSearchWord(word string) {
	e.state.SearchWord = word
}

// Search looks for query starting just past the cursor, wrapping around
// the document once. The cursor moves onto the match.
func (e *editor) Search(query string, dir buffer.Direction) error {
	if query == "" {
		return nil
	}

	from := e.cursor.Position
	if dir == buffer.Forward {
		from.X++
	}
	pos, err := e.find(query, from, dir)
	if err != nil {
		return err
	}

	e.SetCursor(pos)
	e.ScrollViewport()
	return nil
}

// SearchNext repeats the last confirmed search, in the opposite direction
// when reverse is set.
func (e *editor) SearchNext(reverse bool) error {
	query := e.state.SearchQuery
	if query == "" {
		return ErrNoMatch
	}

	dir := e.state.SearchDirection
	if reverse {
		dir = opposite(dir)
	}

	e.SetSearchWord(query)
	return e.Search(query, dir)
}

// find searches from pos, then once more from the document edge when
// nothing turns up on the way there.
func (e *editor) find(query string, pos buffer.Position, dir buffer.Direction) (buffer.Position, error) {
	if e.doc.IsEmpty() {
		return buffer.Position{}, fmt.Errorf("%w: %s", ErrNoMatch, query)
	}

	pos.Y = min(pos.Y, e.doc.Len()-1)
	pos.X = max(0, min(pos.X, rowLen(e.doc, pos.Y)))
	if found, ok := e.doc.Find(query, pos, dir); ok {
		return found, nil
	}

	wrap := buffer.Position{}
	if dir == buffer.Backward {
		last := e.doc.Len() - 1
		wrap = buffer.Position{X: rowLen(e.doc, last), Y: last}
	}
	if found, ok := e.doc.Find(query, wrap, dir); ok {
		e.DispatchMessage(SearchWrappedMessage)
		return found, nil
	}

	return buffer.Position{}, fmt.Errorf("%w: %s", ErrNoMatch, query)
}

func opposite(dir buffer.Direction) buffer.Direction {
	if dir == buffer.Forward {
		return buffer.Backward
	}
	return buffer.Forward
}

// Yank copies the cursor row, with its line break, to the clipboard.
func (e *editor) Yank() error {
	if e.clipboard == nil {
		return errors.New("clipboard handler not set")
	}

	row, ok := e.doc.Row(e.cursor.Y)
	if !ok {
		return nil
	}
	if err := e.clipboard.Write(row.String() + "\n"); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	e.DispatchMessage(RowYankedMessage)
	return nil
}

// Paste inserts the clipboard content after the cursor. Content ending in
// a line break, as Yank produces, goes in as whole rows below the cursor
// row. The cursor is left on the first grapheme of pasted rows, otherwise
// on the last grapheme inserted.
func (e *editor) Paste() error {
	if e.clipboard == nil {
		return errors.New("clipboard handler not set")
	}

	content, err := e.clipboard.Read()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	if content == "" {
		return ErrEmptyClipboard
	}

	pos := e.cursor.Position
	if rows, ok := strings.CutSuffix(content, "\n"); ok {
		if pos.Y < e.doc.Len() {
			pos = e.insertAt(buffer.Position{X: rowLen(e.doc, pos.Y), Y: pos.Y}, "\n")
		}
		start := pos
		e.insertString(pos, rows)
		e.SetCursor(start)
		e.DispatchMessage(PastedMessage)
		return nil
	}

	if pos.X < rowLen(e.doc, pos.Y) {
		pos.X++
	}
	pos = e.insertString(pos, content)
	e.SetCursor(buffer.Position{X: max(0, pos.X-1), Y: pos.Y})
	e.DispatchMessage(PastedMessage)
	return nil
}

func (e *editor) insertString(pos buffer.Position, s string) buffer.Position {
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		pos = e.insertAt(pos, cluster)
	}
	return pos
}

// insertAt inserts one grapheme and returns the position just after it.
// Line breaks split the row; a combining mark that joins the previous
// cluster does not advance the position.
func (e *editor) insertAt(pos buffer.Position, g string) buffer.Position {
	if g == "\n" || g == "\r\n" || g == "\r" {
		e.doc.InsertNewline(pos)
		return buffer.Position{Y: pos.Y + 1}
	}

	before := rowLen(e.doc, pos.Y)
	e.doc.Insert(pos, g)
	pos.X += rowLen(e.doc, pos.Y) - before
	return pos
}

// deleteRow removes the cursor row, joining its neighbours.
func (e *editor) deleteRow() {
	y := e.cursor.Y
	row, ok := e.doc.Row(y)
	if !ok {
		return
	}

	for range row.Len() {
		e.doc.Delete(buffer.Position{Y: y})
	}
	switch {
	case y < e.doc.Len()-1:
		e.doc.Delete(buffer.Position{Y: y})
	case y > 0:
		e.doc.Delete(buffer.Position{X: rowLen(e.doc, y-1), Y: y - 1})
		y--
	}

	e.SetCursor(buffer.Position{Y: y})
}
