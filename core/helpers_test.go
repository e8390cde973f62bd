package core

import (
	"testing"

	"github.com/ionut-t/rowedit/buffer"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	text string
}

func (c *memClipboard) Write(text string) error {
	c.text = text
	return nil
}

func (c *memClipboard) Read() (string, error) {
	return c.text, nil
}

func newTestEditor(content string) (Editor, *memClipboard) {
	clip := &memClipboard{}
	return New(buffer.FromString("", content), clip), clip
}

func runes(s string) []KeyEvent {
	var keys []KeyEvent
	for _, r := range s {
		keys = append(keys, KeyEvent{Rune: r})
	}
	return keys
}

func key(code KeyCode) KeyEvent { return KeyEvent{Key: code} }

func ctrl(r rune) KeyEvent { return KeyEvent{Rune: r, Modifiers: ModCtrl} }

// press sends every key and fails the test on the first error.
func press(t *testing.T, ed Editor, keys ...KeyEvent) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, ed.HandleKey(k), "key %s", k)
	}
}

// typeText sends s as individual rune key presses.
func typeText(t *testing.T, ed Editor, s string) {
	t.Helper()
	press(t, ed, runes(s)...)
}

// pressLast sends keys and returns the error of the last one.
func pressLast(t *testing.T, ed Editor, keys ...KeyEvent) error {
	t.Helper()
	press(t, ed, keys[:len(keys)-1]...)
	return ed.HandleKey(keys[len(keys)-1])
}

func drain(ed Editor) []Signal {
	var out []Signal
	for {
		select {
		case s := <-ed.Signals():
			out = append(out, s)
		default:
			return out
		}
	}
}

func messages(signals []Signal) []string {
	var out []string
	for _, s := range signals {
		if m, ok := s.(MessageSignal); ok {
			out = append(out, m.Value())
		}
	}
	return out
}
