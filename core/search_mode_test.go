package core

import (
	"testing"

	"github.com/ionut-t/rowedit/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchText = "foo bar\nbaz\nbar"

func TestSearchMode_Incremental(t *testing.T) {
	ed, _ := newTestEditor(searchText)

	typeText(t, ed, "/b")
	assert.Equal(t, SearchMode, ed.State().Mode)
	assert.Equal(t, "/b", ed.State().CommandLine)
	assert.Equal(t, "b", ed.State().SearchWord)
	assert.Equal(t, buffer.Position{X: 4, Y: 0}, ed.Cursor())

	typeText(t, ed, "az")
	assert.Equal(t, buffer.Position{X: 0, Y: 1}, ed.Cursor())

	// Narrowing back returns to the match nearest the origin.
	press(t, ed, key(KeyBackspace))
	assert.Equal(t, "/ba", ed.State().CommandLine)
	assert.Equal(t, buffer.Position{X: 4, Y: 0}, ed.Cursor())

	press(t, ed, key(KeyEnter))
	assert.Equal(t, NormalMode, ed.State().Mode)
	assert.Equal(t, "ba", ed.State().SearchQuery)
	assert.Equal(t, "ba", ed.State().SearchWord)
	assert.Equal(t, buffer.Position{X: 4, Y: 0}, ed.Cursor())
}

func TestSearchMode_Repeat(t *testing.T) {
	ed, _ := newTestEditor(searchText)

	typeText(t, ed, "/bar")
	press(t, ed, key(KeyEnter))
	require.Equal(t, buffer.Position{X: 4, Y: 0}, ed.Cursor())
	drain(ed)

	typeText(t, ed, "n")
	assert.Equal(t, buffer.Position{X: 0, Y: 2}, ed.Cursor())

	typeText(t, ed, "n")
	assert.Equal(t, buffer.Position{X: 4, Y: 0}, ed.Cursor())
	assert.Contains(t, messages(drain(ed)), SearchWrappedMessage)

	typeText(t, ed, "N")
	assert.Equal(t, buffer.Position{X: 0, Y: 2}, ed.Cursor())
}

func TestSearchMode_Backward(t *testing.T) {
	ed, _ := newTestEditor(searchText)

	typeText(t, ed, "?baz")
	assert.Equal(t, "?baz", ed.State().CommandLine)
	assert.Equal(t, buffer.Position{X: 0, Y: 1}, ed.Cursor())

	press(t, ed, key(KeyEnter))
	assert.Equal(t, buffer.Backward, ed.State().SearchDirection)

	// n keeps going backward.
	ed.SetCursor(buffer.Position{X: 3, Y: 2})
	typeText(t, ed, "n")
	assert.Equal(t, buffer.Position{X: 0, Y: 1}, ed.Cursor())
}

func TestSearchMode_Cancel(t *testing.T) {
	ed, _ := newTestEditor(searchText)
	ed.SetCursor(buffer.Position{X: 1, Y: 0})

	typeText(t, ed, "/baz")
	require.Equal(t, buffer.Position{X: 0, Y: 1}, ed.Cursor())

	press(t, ed, key(KeyEscape))
	assert.Equal(t, NormalMode, ed.State().Mode)
	assert.Equal(t, buffer.Position{X: 1, Y: 0}, ed.Cursor())
	assert.Equal(t, "", ed.State().SearchWord)
	assert.Equal(t, "", ed.State().CommandLine)
}

func TestSearchMode_NoMatch(t *testing.T) {
	ed, _ := newTestEditor(searchText)
	ed.SetCursor(buffer.Position{X: 2, Y: 1})

	typeText(t, ed, "/qq")
	assert.Equal(t, buffer.Position{X: 2, Y: 1}, ed.Cursor())

	err := ed.HandleKey(key(KeyEnter))
	require.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, buffer.Position{X: 2, Y: 1}, ed.Cursor())
}

func TestSearchMode_RepeatWithoutQuery(t *testing.T) {
	ed, _ := newTestEditor(searchText)

	err := ed.HandleKey(KeyEvent{Rune: 'n'})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestSearchMode_EmptyDocument(t *testing.T) {
	ed, _ := newTestEditor("")

	typeText(t, ed, "/a")
	assert.Equal(t, buffer.Position{}, ed.Cursor())

	err := ed.HandleKey(key(KeyEnter))
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestSearchMode_EscapeInNormalModeClearsWord(t *testing.T) {
	ed, _ := newTestEditor(searchText)

	typeText(t, ed, "/bar")
	press(t, ed, key(KeyEnter), key(KeyEscape))

	assert.Equal(t, "", ed.State().SearchWord)
	assert.Equal(t, "bar", ed.State().SearchQuery)
}
