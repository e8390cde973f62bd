// Package highlighter classifies the graphemes of a single row into highlight
// classes. It holds no state between calls: the only thing carried from one
// row to the next is the multiline comment flag, which callers thread through
// explicitly.
package highlighter

// Type is the highlight class assigned to a grapheme.
type Type int

const (
	None Type = iota
	Number
	Match
	String
	Character
	Comment
	MultilineComment
	PrimaryKeyword
	SecondaryKeyword
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Number:
		return "number"
	case Match:
		return "match"
	case String:
		return "string"
	case Character:
		return "character"
	case Comment:
		return "comment"
	case MultilineComment:
		return "multiline-comment"
	case PrimaryKeyword:
		return "primary-keyword"
	case SecondaryKeyword:
		return "secondary-keyword"
	default:
		return "unknown"
	}
}

// Result is the outcome of highlighting one row.
type Result struct {
	Tags []Type // one per grapheme of the row

	// InComment reports whether the row ends inside an unterminated block
	// comment, i.e. whether the next row starts in one.
	InComment bool
}
