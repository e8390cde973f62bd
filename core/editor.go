package core

import "github.com/ionut-t/rowedit/buffer"

// Editor represents the main editor interface
type Editor interface {
	// Document handling
	Document() *buffer.Document
	SetDocument(doc *buffer.Document) // Replace the open document

	// Cursor handling
	Cursor() buffer.Position
	SetCursor(pos buffer.Position) // Clamped to the document

	// Mode handling
	Mode() EditorMode
	SetNormalMode()
	SetInsertMode()
	SetCommandMode()
	SetSearchMode(dir buffer.Direction)

	// Event handling
	HandleKey(key KeyEvent) error

	// State management
	State() State
	UpdateStatus(string)
	UpdateCommand(string)
	SetViewport(width, height int)
	ScrollViewport()

	// Command execution (called from command mode)
	ExecuteCommand(cmd string) error

	// Search
	Search(query string, dir buffer.Direction) error
	SearchNext(reverse bool) error
	SetSearchWord(word string)

	// Clipboard
	Yank() error
	Paste() error

	// Persistence and lifecycle
	Save() error
	SaveAs(name string) error
	Quit(force bool) error
	// OnBeforeSave registers fn to run with the target path right before
	// the document is written.
	OnBeforeSave(fn func(path string))

	Signals() <-chan Signal
	DispatchError(id ErrorId, err error)
	DispatchMessage(message string)
	DispatchSignal(signal Signal)
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}
