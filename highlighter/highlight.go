package highlighter

import "strings"

// Highlight classifies every grapheme of a row.
//
// startsInComment is the InComment value returned for the previous row. The
// returned Result carries one tag per grapheme and the state for the next row.
// Classifiers are tried in a fixed priority order (block comment, character
// literal, line comment, primary keyword, secondary keyword, string, number)
// and the first match wins. Unterminated constructs extend to the end of the
// row; Highlight never fails.
func Highlight(graphemes []string, rules *Rules, startsInComment bool, word string) Result {
	if rules == nil {
		rules = Plain
	}

	t := tokenizer{
		gs:    graphemes,
		rules: rules,
		tags:  make([]Type, len(graphemes)),
	}

	inComment := false
	if startsInComment {
		inComment = !t.closeComment()
	}

	for t.i < len(t.gs) {
		if rules.MultilineComments {
			if ok, closed := t.blockComment(); ok {
				inComment = !closed
				continue
			}
		}

		if (rules.Characters && t.character()) ||
			(rules.Comments && t.lineComment()) ||
			t.keywords(rules.PrimaryKeywords, PrimaryKeyword) ||
			t.keywords(rules.SecondaryKeywords, SecondaryKeyword) ||
			(rules.Strings && t.str()) ||
			(rules.Numbers && t.number()) {
			continue
		}

		t.tags[t.i] = None
		t.i++
	}

	t.overlay(word)

	return Result{Tags: t.tags, InComment: inComment}
}

type tokenizer struct {
	gs    []string
	rules *Rules
	tags  []Type
	i     int
}

func (t *tokenizer) fill(from, to int, typ Type) {
	for j := from; j < to; j++ {
		t.tags[j] = typ
	}
}

// matchAt reports how many graphemes starting at i spell out s exactly, or 0
// when they don't. Matches must end on a grapheme boundary.
func (t *tokenizer) matchAt(i int, s string) int {
	if s == "" {
		return 0
	}

	n := 0
	for rest := s; rest != ""; n++ {
		if i+n >= len(t.gs) {
			return 0
		}
		g := t.gs[i+n]
		if !strings.HasPrefix(rest, g) {
			return 0
		}
		rest = rest[len(g):]
	}
	return n
}

// closeComment tags everything up to and including the next block comment
// closer as MultilineComment, or the rest of the row when there is none.
// It reports whether a closer was found.
func (t *tokenizer) closeComment() bool {
	for j := t.i; j < len(t.gs); j++ {
		if n := t.matchAt(j, t.rules.BlockClose); n > 0 {
			t.fill(t.i, j+n, MultilineComment)
			t.i = j + n
			return true
		}
	}
	t.fill(t.i, len(t.gs), MultilineComment)
	t.i = len(t.gs)
	return false
}

func (t *tokenizer) blockComment() (ok, closed bool) {
	n := t.matchAt(t.i, t.rules.BlockOpen)
	if n == 0 {
		return false, false
	}

	start := t.i
	t.i += n
	closed = t.closeComment()
	t.fill(start, start+n, MultilineComment)
	return true, closed
}

func (t *tokenizer) character() bool {
	if t.gs[t.i] != "'" || t.i+1 >= len(t.gs) {
		return false
	}

	closing := t.i + 2
	if t.gs[t.i+1] == `\` {
		closing = t.i + 3
	}
	if closing >= len(t.gs) || t.gs[closing] != "'" {
		return false
	}

	t.fill(t.i, closing+1, Character)
	t.i = closing + 1
	return true
}

func (t *tokenizer) lineComment() bool {
	if t.matchAt(t.i, t.rules.LineComment) == 0 {
		return false
	}
	t.fill(t.i, len(t.gs), Comment)
	t.i = len(t.gs)
	return true
}

func (t *tokenizer) keywords(words []string, typ Type) bool {
	if len(words) == 0 {
		return false
	}
	if t.i > 0 && !isSeparator(t.gs[t.i-1]) {
		return false
	}

	for _, w := range words {
		n := t.matchAt(t.i, w)
		if n == 0 {
			continue
		}
		if end := t.i + n; end < len(t.gs) && !isSeparator(t.gs[end]) {
			continue
		}
		t.fill(t.i, t.i+n, typ)
		t.i += n
		return true
	}
	return false
}

func (t *tokenizer) str() bool {
	if t.gs[t.i] != `"` {
		return false
	}

	end := len(t.gs)
	for j := t.i + 1; j < len(t.gs); j++ {
		if t.gs[j] == `"` {
			end = j + 1
			break
		}
	}

	t.fill(t.i, end, String)
	t.i = end
	return true
}

func (t *tokenizer) number() bool {
	if !isDigit(t.gs[t.i]) {
		return false
	}
	if t.i > 0 && !isSeparator(t.gs[t.i-1]) {
		return false
	}

	end := t.i + 1
	dot := false
	for end < len(t.gs) {
		g := t.gs[end]
		if g == "." && !dot {
			dot = true
		} else if !isDigit(g) {
			break
		}
		end++
	}

	t.fill(t.i, end, Number)
	t.i = end
	return true
}

// overlay retags every non-overlapping occurrence of word as Match.
func (t *tokenizer) overlay(word string) {
	if word == "" {
		return
	}
	for i := 0; i < len(t.gs); {
		if n := t.matchAt(i, word); n > 0 {
			t.fill(i, i+n, Match)
			i += n
			continue
		}
		i++
	}
}

func isDigit(g string) bool {
	return len(g) == 1 && g[0] >= '0' && g[0] <= '9'
}

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

// isSeparator reports whether g delimits keywords and numbers: ASCII
// whitespace or ASCII punctuation. Underscore belongs to identifiers.
func isSeparator(g string) bool {
	if g == "" {
		return true
	}
	switch b := g[0]; {
	case b == ' ', b == '\t', b == '\n', b == '\r', b == '\f', b == '\v':
		return true
	case b < 0x80:
		return strings.IndexByte(asciiPunct, b) >= 0
	default:
		return false
	}
}
