package core

import (
	"errors"

	"github.com/ionut-t/rowedit/buffer"
)

type commandMode struct {
	commandBuffer []rune
}

func NewCommandMode() EditorMode  { return &commandMode{} }
func (m *commandMode) Name() Mode { return CommandMode }

func (m *commandMode) Enter(editor Editor) {
	editor.DispatchSignal(EnterCommandModeSignal{})
	m.commandBuffer = m.commandBuffer[:0]
	editor.UpdateStatus(statusFor(CommandMode))
	editor.UpdateCommand(":")
}

func (m *commandMode) Exit(editor Editor) {
	editor.UpdateCommand("")
}

// prefill seeds the prompt, as if text had been typed.
func (m *commandMode) prefill(editor Editor, text string) {
	m.commandBuffer = append(m.commandBuffer[:0], []rune(text)...)
	editor.UpdateCommand(":" + text)
}

func (m *commandMode) HandleKey(editor Editor, key KeyEvent) *Error {
	switch key.Key {
	case KeyEscape:
		if string(m.commandBuffer) == "w " {
			editor.DispatchMessage(SaveAbortedMessage)
		}
		editor.SetNormalMode()
		return nil

	case KeyBackspace:
		if len(m.commandBuffer) == 0 {
			editor.SetNormalMode()
			return nil
		}
		m.commandBuffer = m.commandBuffer[:len(m.commandBuffer)-1]
		editor.UpdateCommand(":" + string(m.commandBuffer))
		return nil

	case KeyEnter:
		cmd := string(m.commandBuffer)
		editor.SetNormalMode()
		if err := editor.ExecuteCommand(cmd); err != nil {
			return newError(commandErrorId(err), err)
		}
		return nil

	default:
		if key.printable() {
			m.commandBuffer = append(m.commandBuffer, key.Rune)
			editor.UpdateCommand(":" + string(m.commandBuffer))
		}
		return nil
	}
}

func commandErrorId(err error) ErrorId {
	switch {
	case errors.Is(err, ErrUnsavedChanges):
		return ErrUnsavedChangesId
	case errors.Is(err, buffer.ErrNoFileName):
		return ErrNoFileNameId
	case errors.Is(err, ErrInvalidCommand):
		return ErrInvalidCommandId
	default:
		return ErrFailedToSaveId
	}
}
