package buffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// All positions handed to this package are grapheme indices. Go strings are
// indexed by byte, so every mutation and search goes through the helpers
// below to translate between the two.

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// graphemes splits s into grapheme clusters.
func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// graphemeToByteOffset converts a grapheme index to a byte offset.
// Returns 0 for idx <= 0 and len(s) for idx past the last grapheme.
func graphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}

	n := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		n++
		if n == idx {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// byteToGraphemeOffset converts a byte offset to the index of the grapheme
// starting there. ok is false when offset falls inside a cluster or outside
// s; offset == len(s) maps to the grapheme count.
func byteToGraphemeOffset(s string, offset int) (idx int, ok bool) {
	if offset < 0 || offset > len(s) {
		return 0, false
	}

	pos := 0
	state := -1
	rest := s
	for pos < offset {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
		idx++
	}
	return idx, pos == offset
}

func isLineBreak(g string) bool {
	return g == "\n" || g == "\r\n" || g == "\r"
}

// graphemeWidth is the number of terminal cells g occupies.
func graphemeWidth(g string) int {
	if g == "\t" {
		return TabWidth
	}
	return runewidth.StringWidth(g)
}
