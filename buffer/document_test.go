package buffer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/rowedit/highlighter"
)

func rowTags(t *testing.T, d *Document, y int) []highlighter.Type {
	t.Helper()
	row, ok := d.Row(y)
	require.True(t, ok, "row %d", y)
	return row.Tags()
}

func repeatTag(typ highlighter.Type, n int) []highlighter.Type {
	out := make([]highlighter.Type, n)
	for i := range out {
		out[i] = typ
	}
	return out
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{}},
		{"single newline", "\n", []string{""}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank rows kept", "a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromString("", tt.content)
			assert.Equal(t, tt.want, d.Lines())
			assert.False(t, d.IsDirty())
		})
	}
}

func TestDocument_EmptyIsNotOneEmptyRow(t *testing.T) {
	empty := New()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, 0, empty.Len())

	one := FromString("", "\n")
	assert.False(t, one.IsEmpty())
	assert.Equal(t, 1, one.Len())
}

func TestDocument_Insert(t *testing.T) {
	d := New()

	d.Insert(Position{X: 0, Y: 1}, "a")
	assert.Equal(t, 0, d.Len(), "rows past the append position are ignored")
	assert.False(t, d.IsDirty())

	d.Insert(Position{X: 0, Y: 0}, "a")
	assert.Equal(t, []string{"a"}, d.Lines())
	assert.True(t, d.IsDirty())

	d.Insert(Position{X: 1, Y: 0}, "日")
	d.Insert(Position{X: 0, Y: 1}, "b")
	assert.Equal(t, []string{"a日", "b"}, d.Lines())

	d.Insert(Position{X: 0, Y: -1}, "x")
	assert.Equal(t, []string{"a日", "b"}, d.Lines())
}

func TestDocument_InsertNewline(t *testing.T) {
	d := FromString("", "hello\nworld")

	d.Insert(Position{X: 2, Y: 0}, "\n")
	assert.Equal(t, []string{"he", "llo", "world"}, d.Lines())

	d.InsertNewline(Position{X: 0, Y: 3})
	assert.Equal(t, []string{"he", "llo", "world", ""}, d.Lines())

	d.InsertNewline(Position{X: 0, Y: 5})
	assert.Equal(t, 4, d.Len())

	d.InsertNewline(Position{X: 5, Y: 2})
	assert.Equal(t, []string{"he", "llo", "world", "", ""}, d.Lines())
}

func TestDocument_InsertLineBreaks(t *testing.T) {
	for _, br := range []string{"\n", "\r\n", "\r"} {
		d := FromString("a.txt", "ab")

		d.Insert(Position{X: 1, Y: 0}, br)
		assert.Equal(t, 2, d.Len(), "%q", br)
		assert.Equal(t, []string{"a", "b"}, d.Lines(), "%q", br)

		row, _ := d.Row(0)
		assert.Equal(t, 1, row.Len(), "%q", br)
	}
}

func TestDocument_InsertLineBreakRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	d := FromString(path, "ab")
	d.Insert(Position{X: 1, Y: 0}, "\r\n")
	require.NoError(t, d.Save())

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, d.Lines(), reloaded.Lines())
}

func TestDocument_Delete(t *testing.T) {
	d := FromString("", "ab\ncd\nef")

	d.Delete(Position{X: 2, Y: 0})
	assert.Equal(t, []string{"abcd", "ef"}, d.Lines(), "deleting at the end of a row joins the next one")
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.IsDirty())

	d.Delete(Position{X: 0, Y: 1})
	assert.Equal(t, []string{"abcd", "f"}, d.Lines())
}

func TestDocument_DeleteNoOps(t *testing.T) {
	d := FromString("", "ab\ncd")

	d.Delete(Position{X: 2, Y: 1})
	d.Delete(Position{X: 0, Y: 2})
	d.Delete(Position{X: 0, Y: -1})
	d.Delete(Position{X: 7, Y: 0})

	assert.Equal(t, []string{"ab", "cd"}, d.Lines())
	assert.False(t, d.IsDirty())
}

func TestDocument_Find(t *testing.T) {
	d := FromString("", "foo bar\nbaz\n日 bar")

	pos, ok := d.Find("bar", Position{X: 0, Y: 0}, Forward)
	require.True(t, ok)
	assert.Equal(t, Position{X: 4, Y: 0}, pos)

	pos, ok = d.Find("bar", Position{X: 5, Y: 0}, Forward)
	require.True(t, ok)
	assert.Equal(t, Position{X: 2, Y: 2}, pos)

	pos, ok = d.Find("bar", Position{X: 1, Y: 2}, Backward)
	require.True(t, ok)
	assert.Equal(t, Position{X: 4, Y: 0}, pos)

	pos, ok = d.Find("ba", Position{X: 0, Y: 2}, Backward)
	require.True(t, ok)
	assert.Equal(t, Position{X: 0, Y: 1}, pos)

	_, ok = d.Find("qux", Position{X: 0, Y: 0}, Forward)
	assert.False(t, ok)

	_, ok = d.Find("bar", Position{X: 0, Y: 3}, Forward)
	assert.False(t, ok)
}

func TestDocument_HighlightMultilineComment(t *testing.T) {
	d := FromString("main.c", "/* start\nend */ int x = 1;")
	d.Highlight("")

	assert.Equal(t, repeatTag(highlighter.MultilineComment, 8), rowTags(t, d, 0))

	tags := rowTags(t, d, 1)
	require.Len(t, tags, 17)
	assert.Equal(t, repeatTag(highlighter.MultilineComment, 6), tags[:6])
	assert.Equal(t, highlighter.None, tags[6])
	assert.Equal(t, repeatTag(highlighter.SecondaryKeyword, 3), tags[7:10])
	assert.Equal(t, highlighter.None, tags[11], "x is an identifier")
	assert.Equal(t, highlighter.Number, tags[15])
	assert.Equal(t, highlighter.None, tags[16])
}

func TestDocument_HighlightPropagatesStateChanges(t *testing.T) {
	d := FromString("main.go", "x\ny\nz")
	d.Highlight("")
	assert.Equal(t, []highlighter.Type{highlighter.None}, rowTags(t, d, 2))

	d.Insert(Position{X: 0, Y: 0}, "/")
	d.Insert(Position{X: 1, Y: 0}, "*")
	d.Highlight("")
	assert.Equal(t, []highlighter.Type{highlighter.MultilineComment}, rowTags(t, d, 1))
	assert.Equal(t, []highlighter.Type{highlighter.MultilineComment}, rowTags(t, d, 2))

	d.Delete(Position{X: 0, Y: 0})
	d.Highlight("")
	assert.Equal(t, []highlighter.Type{highlighter.None}, rowTags(t, d, 1))
	assert.Equal(t, []highlighter.Type{highlighter.None}, rowTags(t, d, 2))
}

func TestDocument_HighlightUntil(t *testing.T) {
	d := FromString("main.rs", "fn a\nfn b\nfn c")

	d.HighlightUntil("", 1)
	assert.NotNil(t, rowTags(t, d, 1))
	assert.Nil(t, rowTags(t, d, 2))

	d.HighlightUntil("", -3)
	d.HighlightUntil("b", 100)
	assert.Equal(t, highlighter.Match, rowTags(t, d, 1)[3])

	New().Highlight("")
}

func TestDocument_SetFileNameRehighlights(t *testing.T) {
	d := FromString("notes.txt", "fn main")
	d.Highlight("")
	assert.Equal(t, highlighter.None, rowTags(t, d, 0)[0])

	d.SetFileName("main.rs")
	assert.Nil(t, rowTags(t, d, 0))
	d.Highlight("")
	assert.Equal(t, highlighter.PrimaryKeyword, rowTags(t, d, 0)[0])
	assert.Equal(t, "rust", d.FileType().Name())
}

func TestDocument_SaveWithoutFileName(t *testing.T) {
	d := New()
	d.Insert(Position{}, "a")

	require.NoError(t, d.Save())
	assert.True(t, d.IsDirty(), "nothing was written")
}

func TestDocument_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	d := FromString(path, "a\né\n\n")
	d.Insert(Position{X: 1, Y: 0}, "b")
	require.True(t, d.IsDirty())

	require.NoError(t, d.Save())
	assert.False(t, d.IsDirty())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab\né\n\n", string(got))
}

func TestDocument_SaveError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")
	d := FromString(path, "a")
	d.Insert(Position{}, "b")

	err := d.Save()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, d.IsDirty())
	assert.Equal(t, []string{"ba"}, d.Lines())
}

func TestDocument_SaveAs(t *testing.T) {
	d := FromString("", "x")
	require.ErrorIs(t, d.SaveAs(""), ErrNoFileName)

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, d.SaveAs(path))
	assert.Equal(t, path, d.FileName())
	assert.Equal(t, "go", d.FileType().Name())
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("fn a() {}\n"), 0o644))

	d, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"fn a() {}"}, d.Lines())
	assert.Equal(t, "rust", d.FileType().Name())
	assert.False(t, d.IsDirty())

	_, err = Open(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileTypeFor(t *testing.T) {
	assert.Equal(t, "plain", FileTypeFor("").Name())
	assert.Equal(t, "css", FileTypeFor("style.css").Name())
	assert.Same(t, highlighter.Plain, FileTypeFor("style.css").Rules())
	assert.Equal(t, "plain", FileTypeFor("data.zzzunknown").Name())
	assert.Equal(t, "plain", FileType{}.Name())
}
