package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/rowedit/highlighter"
)

// tagPalette renders markers as <class> so output can be compared literally.
type tagPalette struct{}

func (tagPalette) Marker(t highlighter.Type) string { return "<" + t.String() + ">" }
func (tagPalette) Reset() string                    { return "</>" }

func TestRow_LenCountsGraphemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "hello", 5},
		{"combining accent", "he\u0301llo", 5},
		{"cjk", "日本語", 3},
		{"zwj family", "\U0001F468\u200d\U0001F469\u200d\U0001F467", 1},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRow(tt.input)
			assert.Equal(t, tt.want, row.Len())
		})
	}

	row := NewRow("日本語")
	assert.NotEqual(t, len(row.String()), row.Len(), "byte length must differ from grapheme length")
}

func TestRow_Insert(t *testing.T) {
	row := NewRow("he\u0301llo")

	row.Insert(2, "X")
	assert.Equal(t, "he\u0301Xllo", row.String())
	assert.Equal(t, 6, row.Len())

	row.Insert(6, "!")
	assert.Equal(t, "he\u0301Xllo!", row.String())

	row.Insert(100, "?")
	assert.Equal(t, "he\u0301Xllo!?", row.String(), "inserting past the end appends")

	row.Insert(0, "日")
	assert.Equal(t, "日he\u0301Xllo!?", row.String())
	assert.Equal(t, 9, row.Len())
}

func TestRow_Delete(t *testing.T) {
	row := NewRow("a日e\u0301b")

	row.Delete(4)
	row.Delete(-1)
	assert.Equal(t, "a日e\u0301b", row.String(), "out of range deletes are ignored")

	row.Delete(2)
	assert.Equal(t, "a日b", row.String())
	assert.Equal(t, 3, row.Len())

	row.Delete(1)
	assert.Equal(t, "ab", row.String())
}

func TestRow_InsertDeleteRoundTrip(t *testing.T) {
	original := "x日e\u0301y"
	for at := 0; at <= graphemeCount(original); at++ {
		row := NewRow(original)
		row.Insert(at, "😀")
		row.Delete(at)
		assert.Equal(t, original, row.String(), "at %d", at)
		assert.Equal(t, 4, row.Len())
	}
}

func TestRow_SplitAppend(t *testing.T) {
	row := NewRow("ab日e\u0301cd")

	tail := row.Split(3)
	assert.Equal(t, "ab日", row.String())
	assert.Equal(t, 3, row.Len())
	assert.Equal(t, "e\u0301cd", tail.String())
	assert.Equal(t, 3, tail.Len())

	row.Append(tail)
	assert.Equal(t, "ab日e\u0301cd", row.String())
	assert.Equal(t, 6, row.Len())

	tail = row.Split(99)
	assert.True(t, tail.IsEmpty())
	assert.Equal(t, 6, row.Len())

	tail = row.Split(-1)
	assert.True(t, row.IsEmpty())
	assert.Equal(t, "ab日e\u0301cd", tail.String())
}

func TestRow_Find(t *testing.T) {
	row := NewRow("he\u0301llo wörld")

	x, ok := row.Find("wö", 0, Forward)
	require.True(t, ok)
	assert.Equal(t, 6, x)

	x, ok = row.Find("wö", row.Len(), Backward)
	require.True(t, ok)
	assert.Equal(t, 6, x)

	_, ok = row.Find("wö", 7, Forward)
	assert.False(t, ok)

	_, ok = row.Find("wö", 6, Backward)
	assert.False(t, ok, "backward search excludes the start position")

	_, ok = row.Find("", 0, Forward)
	assert.False(t, ok)

	_, ok = row.Find("h", row.Len()+1, Forward)
	assert.False(t, ok)
}

func TestRow_FindRejectsPartialClusters(t *testing.T) {
	row := NewRow("he\u0301 e")

	x, ok := row.Find("e", 0, Forward)
	require.True(t, ok)
	assert.Equal(t, 3, x, "the e of the accented cluster is not a match")

	x, ok = row.Find("e", row.Len(), Backward)
	require.True(t, ok)
	assert.Equal(t, 3, x)

	_, ok = row.Find("e", 2, Backward)
	assert.False(t, ok)
}

func TestRow_FindMultipleMatches(t *testing.T) {
	row := NewRow("日ab日ab")

	x, _ := row.Find("ab", 0, Forward)
	assert.Equal(t, 1, x)
	x, _ = row.Find("ab", 2, Forward)
	assert.Equal(t, 4, x)
	x, _ = row.Find("ab", row.Len(), Backward)
	assert.Equal(t, 4, x)
	x, _ = row.Find("ab", 4, Backward)
	assert.Equal(t, 1, x)
}

func TestRow_Render(t *testing.T) {
	row := NewRow("int x = 1;")
	row.Highlight(highlighter.Lookup("x.c"), "", false)

	got := row.RenderWith(tagPalette{}, 0, row.Len())
	assert.Equal(t, "<secondary-keyword>int<none> x = <number>1<none>;</>", got)

	got = row.RenderWith(tagPalette{}, 4, 100)
	assert.Equal(t, "x = <number>1<none>;</>", got)

	assert.Equal(t, "</>", row.RenderWith(tagPalette{}, 5, 2))
}

func TestRow_RenderTabsAndClusters(t *testing.T) {
	row := NewRow("\te\u0301")
	assert.Equal(t, "    e\u0301</>", row.RenderWith(tagPalette{}, -5, 10))
}

func TestRow_RenderStaleTagsAsNone(t *testing.T) {
	row := NewRow("123")
	row.Highlight(highlighter.Lookup("x.go"), "", false)
	row.Insert(0, "9")

	assert.Equal(t, "9123</>", row.RenderWith(tagPalette{}, 0, 4))
}

func TestRow_HighlightCache(t *testing.T) {
	rules := highlighter.Lookup("x.rs")
	row := NewRow("fn main")

	assert.False(t, row.Highlighted())
	assert.Nil(t, row.Tags())

	assert.False(t, row.Highlight(rules, "", false))
	require.True(t, row.Highlighted())
	assert.Equal(t, highlighter.PrimaryKeyword, row.Tags()[0])

	row.Highlight(rules, "main", false)
	assert.Equal(t, highlighter.Match, row.Tags()[3], "a new word re-tokenizes")

	assert.True(t, row.Highlight(rules, "main", true), "a new incoming state re-tokenizes")
	assert.Equal(t, highlighter.MultilineComment, row.Tags()[0])

	row.Delete(0)
	assert.False(t, row.Highlighted())
}

func TestRow_Columns(t *testing.T) {
	row := NewRow("\t日a")
	assert.Equal(t, 0, row.Columns(0))
	assert.Equal(t, 4, row.Columns(1))
	assert.Equal(t, 6, row.Columns(2))
	assert.Equal(t, 7, row.Columns(3))
	assert.Equal(t, 7, row.Columns(10))
}

func TestRow_Grapheme(t *testing.T) {
	row := NewRow("ae\u0301日")
	assert.Equal(t, "e\u0301", row.Grapheme(1))
	assert.Equal(t, "日", row.Grapheme(2))
	assert.Equal(t, "", row.Grapheme(3))
	assert.Equal(t, "", row.Grapheme(-1))
}
