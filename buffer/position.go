package buffer

// Position addresses a grapheme in a Document. X is a grapheme column, Y a
// row index. Y == Document.Len() is the append position.
type Position struct {
	X int
	Y int
}

// Direction of a search.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}
