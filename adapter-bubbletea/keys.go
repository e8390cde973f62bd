package bubble_adapter

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the keys handled by the adapter itself. Everything else is
// forwarded to the editor engine.
type keyMap struct {
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit without saving"),
		),
	}
}
