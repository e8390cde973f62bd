package core

type Mode string

const (
	NormalMode  Mode = "normal"
	InsertMode  Mode = "insert"
	CommandMode Mode = "command"
	SearchMode  Mode = "search"
)

// EditorMode represents a modal editing state. Modes read and mutate the
// document only through the Editor they are handed.
type EditorMode interface {
	Name() Mode
	// HandleKey processes a key press. A returned error is also dispatched
	// to consumers as an ErrorSignal.
	HandleKey(editor Editor, key KeyEvent) *Error
	Enter(editor Editor) // Called when entering the mode
	Exit(editor Editor)  // Called when exiting the mode
}

// statusFor is the status line shown while a mode is active.
func statusFor(mode Mode) string {
	switch mode {
	case InsertMode:
		return "-- INSERT --"
	case CommandMode, SearchMode:
		return ""
	default:
		return "-- NORMAL --"
	}
}

// editorOf gives modes access to the cursor and search state of the
// concrete editor.
func editorOf(ed Editor) *editor {
	return ed.(*editor)
}
