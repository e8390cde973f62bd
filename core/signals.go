package core

type Signal any

// SaveSignal reports a successful write of the document to path.
type SaveSignal struct {
	path string
}

func (s SaveSignal) Value() string {
	return s.path
}

type QuitSignal struct{}

type MessageSignal struct {
	message string
}

func (m MessageSignal) Value() string {
	return m.message
}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	return e.id, e.err
}

// FileChangedSignal reports that the open file was modified by another
// process.
type FileChangedSignal struct {
	path string
}

func NewFileChangedSignal(path string) FileChangedSignal {
	return FileChangedSignal{path: path}
}

func (f FileChangedSignal) Value() string {
	return f.path
}

type EnterCommandModeSignal struct{}

type EnterSearchModeSignal struct{}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}
