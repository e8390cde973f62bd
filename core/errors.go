package core

import (
	"errors"
	"log"
)

var (
	ErrInvalidMode    = errors.New("invalid mode")
	ErrInvalidCommand = errors.New("invalid command")
	ErrNoMatch        = errors.New("pattern not found")
	ErrUnsavedChanges = errors.New("unsaved changes (add ! to override)")
	ErrStartOfBuffer  = errors.New("start of buffer")
	ErrEmptyClipboard = errors.New("clipboard is empty")
)

type ErrorId int

const (
	ErrInvalidModeId ErrorId = iota
	ErrInvalidCommandId
	ErrNoMatchId
	ErrUnsavedChangesId
	ErrStartOfBufferId
	ErrNoFileNameId
	ErrFailedToSaveId
	ErrFailedToYankId
	ErrFailedToPasteId
)

// Error pairs an error with an id consumers can switch on without
// comparing messages.
type Error struct {
	id  ErrorId
	err error
}

func newError(id ErrorId, err error) *Error {
	return &Error{id: id, err: err}
}

func (e *Error) Id() ErrorId   { return e.id }
func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
