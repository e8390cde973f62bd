package buffer

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/ionut-t/rowedit/highlighter"
)

// TabWidth is the number of columns a tab expands to when rendered.
const TabWidth = 4

// DefaultPalette is used by Render.
var DefaultPalette highlighter.Palette = highlighter.DefaultPalette(termenv.TrueColor)

// Row is one line of a Document. It owns its text and the highlight tags
// last computed for it.
type Row struct {
	content string
	length  int // grapheme count of content

	tags  []highlighter.Type
	valid bool

	// Inputs and output of the highlight pass that produced tags.
	word            string
	startsInComment bool
	endsInComment   bool
}

func NewRow(s string) *Row {
	return &Row{content: s, length: graphemeCount(s)}
}

func (r *Row) Len() int { return r.length }

func (r *Row) IsEmpty() bool { return r.length == 0 }

func (r *Row) String() string { return r.content }

func (r *Row) Bytes() []byte { return []byte(r.content) }

// Grapheme returns the cluster at index at, or "" when at is out of range.
func (r *Row) Grapheme(at int) string {
	if at < 0 || at >= r.length {
		return ""
	}
	start := graphemeToByteOffset(r.content, at)
	end := graphemeToByteOffset(r.content, at+1)
	return r.content[start:end]
}

func (r *Row) setContent(s string) {
	r.content = s
	r.length = graphemeCount(s)
	r.valid = false
}

// Insert places ch before the grapheme at index at. Indices at or past the
// end append.
func (r *Row) Insert(at int, ch string) {
	if ch == "" {
		return
	}
	if at >= r.length {
		r.setContent(r.content + ch)
		return
	}
	b := graphemeToByteOffset(r.content, at)
	r.setContent(r.content[:b] + ch + r.content[b:])
}

// Delete removes the grapheme at index at. Out of range indices are ignored.
func (r *Row) Delete(at int) {
	if at < 0 || at >= r.length {
		return
	}
	start := graphemeToByteOffset(r.content, at)
	end := graphemeToByteOffset(r.content, at+1)
	r.setContent(r.content[:start] + r.content[end:])
}

// Split truncates the row to [0, at) and returns [at, Len()) as a new row.
func (r *Row) Split(at int) *Row {
	at = max(0, min(at, r.length))
	b := graphemeToByteOffset(r.content, at)
	tail := NewRow(r.content[b:])
	r.setContent(r.content[:b])
	return tail
}

// Append concatenates other onto r.
func (r *Row) Append(other *Row) {
	r.setContent(r.content + other.content)
}

// Find returns the grapheme index of query. Forward searches [at, Len()) for
// the first occurrence, Backward searches [0, at) for the last one. Matches
// must start and end on grapheme boundaries.
func (r *Row) Find(query string, at int, dir Direction) (int, bool) {
	if query == "" || at < 0 || at > r.length {
		return 0, false
	}

	b := graphemeToByteOffset(r.content, at)
	if dir == Backward {
		return r.findBackward(query, b)
	}
	return r.findForward(query, b)
}

func (r *Row) findForward(query string, from int) (int, bool) {
	for off := from; off <= len(r.content); {
		i := strings.Index(r.content[off:], query)
		if i < 0 {
			return 0, false
		}
		if idx, ok := r.matchIndex(off+i, len(query)); ok {
			return idx, true
		}
		off += i + 1
	}
	return 0, false
}

func (r *Row) findBackward(query string, until int) (int, bool) {
	for limit := until; limit > 0; {
		i := strings.LastIndex(r.content[:limit], query)
		if i < 0 {
			return 0, false
		}
		if idx, ok := r.matchIndex(i, len(query)); ok {
			return idx, true
		}
		limit = i + len(query) - 1
	}
	return 0, false
}

// matchIndex translates a byte-level match back to a grapheme index,
// rejecting matches that cut through a cluster.
func (r *Row) matchIndex(start, size int) (int, bool) {
	idx, ok := byteToGraphemeOffset(r.content, start)
	if !ok {
		return 0, false
	}
	if _, ok := byteToGraphemeOffset(r.content, start+size); !ok {
		return 0, false
	}
	return idx, true
}

// Columns returns the display width of graphemes [0, x).
func (r *Row) Columns(x int) int {
	cols := 0
	for i, g := range graphemes(r.content) {
		if i >= x {
			break
		}
		cols += graphemeWidth(g)
	}
	return cols
}

// Tags returns a copy of the highlight tags, or nil when they are stale.
func (r *Row) Tags() []highlighter.Type {
	if !r.valid {
		return nil
	}
	out := make([]highlighter.Type, len(r.tags))
	copy(out, r.tags)
	return out
}

func (r *Row) Highlighted() bool { return r.valid }

// Unhighlight marks the cached tags stale.
func (r *Row) Unhighlight() { r.valid = false }

// Highlight tokenizes the row unless the cached tags were produced for the
// same word and incoming comment state. It returns whether the next row
// starts inside a block comment.
func (r *Row) Highlight(rules *highlighter.Rules, word string, startsInComment bool) bool {
	if r.valid && r.word == word && r.startsInComment == startsInComment {
		return r.endsInComment
	}

	res := highlighter.Highlight(graphemes(r.content), rules, startsInComment, word)
	r.tags = res.Tags
	r.word = word
	r.startsInComment = startsInComment
	r.endsInComment = res.InComment
	r.valid = true
	return res.InComment
}

// Render returns graphemes [start, end) ready for the terminal using the
// default palette.
func (r *Row) Render(start, end int) string {
	return r.RenderWith(DefaultPalette, start, end)
}

// RenderWith renders graphemes [start, end), expanding tabs and emitting one
// colour marker per run of equally tagged graphemes.
func (r *Row) RenderWith(p highlighter.Palette, start, end int) string {
	end = max(0, min(end, r.length))
	start = max(0, min(start, end))

	var sb strings.Builder
	current := highlighter.None
	for i, g := range graphemes(r.content) {
		if i >= end {
			break
		}
		if i < start {
			continue
		}

		typ := highlighter.None
		if r.valid && i < len(r.tags) {
			typ = r.tags[i]
		}
		if typ != current {
			current = typ
			sb.WriteString(p.Marker(typ))
		}

		if g == "\t" {
			sb.WriteString(strings.Repeat(" ", TabWidth))
		} else {
			sb.WriteString(g)
		}
	}
	sb.WriteString(p.Reset())
	return sb.String()
}
