package core

import "log"

var (
	EmptyMessage         = ""
	WelcomeMessage       = "HELP: Ctrl-S = save | Ctrl-Q = quit | : = command"
	ChangesSavedMessage  = "changes saved"
	SaveAbortedMessage   = "save aborted"
	SaveAsMessage        = "no file name: type one after :w"
	RowYankedMessage     = "row yanked"
	RowDeletedMessage    = "row deleted"
	PastedMessage        = "pasted from clipboard"
	FileChangedMessage   = "file changed on disk"
	SearchWrappedMessage = "search wrapped"
)

func (e *editor) DispatchMessage(message string) {
	select {
	case e.updateSignal <- MessageSignal{message}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}
