package buffer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Document is an ordered list of rows plus the file they came from.
// Rows are owned by the document; callers get read access through Row.
type Document struct {
	rows     []*Row
	dirty    bool
	fileName string
	fileType FileType
}

// New returns an empty document with no rows and no file name.
func New() *Document {
	return &Document{fileType: FileTypeFor("")}
}

// FromString builds a document from content, one row per line. A trailing
// newline does not produce an extra empty row, and "\r\n" endings are
// accepted.
func FromString(fileName, content string) *Document {
	d := &Document{fileName: fileName, fileType: FileTypeFor(fileName)}
	if content == "" {
		return d
	}

	content = strings.TrimSuffix(content, "\n")
	for line := range strings.SplitSeq(content, "\n") {
		d.rows = append(d.rows, NewRow(strings.TrimSuffix(line, "\r")))
	}
	return d
}

// Open reads path into a new document.
func Open(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromString(path, string(content)), nil
}

func (d *Document) Len() int { return len(d.rows) }

func (d *Document) IsEmpty() bool { return len(d.rows) == 0 }

func (d *Document) IsDirty() bool { return d.dirty }

func (d *Document) FileName() string { return d.fileName }

func (d *Document) FileType() FileType { return d.fileType }

// SetFileName changes the file the document saves to. The file type is
// derived again, so every row is re-highlighted on the next pass.
func (d *Document) SetFileName(name string) {
	d.fileName = name
	d.fileType = FileTypeFor(name)
	for _, row := range d.rows {
		row.Unhighlight()
	}
}

// Row returns the row at index i.
func (d *Document) Row(i int) (*Row, bool) {
	if i < 0 || i >= len(d.rows) {
		return nil, false
	}
	return d.rows[i], true
}

// Lines returns the raw content of every row.
func (d *Document) Lines() []string {
	lines := make([]string, len(d.rows))
	for i, row := range d.rows {
		lines[i] = row.content
	}
	return lines
}

// String returns the content as it would be saved.
func (d *Document) String() string {
	var sb strings.Builder
	for _, row := range d.rows {
		sb.WriteString(row.content)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (d *Document) outOfRange(pos Position) bool {
	return pos.Y < 0 || pos.Y > len(d.rows)
}

// Insert adds ch at pos. A line break ("\n", "\r\n" or "\r") splits the
// row. Inserting on the append position creates a new row.
func (d *Document) Insert(pos Position, ch string) {
	if d.outOfRange(pos) || ch == "" {
		return
	}
	if isLineBreak(ch) {
		d.InsertNewline(pos)
		return
	}

	if pos.Y == len(d.rows) {
		d.rows = append(d.rows, NewRow(ch))
	} else {
		d.rows[pos.Y].Insert(pos.X, ch)
	}
	d.dirty = true
	d.unhighlightAround(pos.Y)
}

// InsertNewline splits the row at pos, moving the tail to a new row below.
func (d *Document) InsertNewline(pos Position) {
	if d.outOfRange(pos) {
		return
	}
	d.dirty = true

	if pos.Y == len(d.rows) {
		d.rows = append(d.rows, NewRow(""))
		return
	}

	tail := d.rows[pos.Y].Split(pos.X)
	d.rows = append(d.rows, nil)
	copy(d.rows[pos.Y+2:], d.rows[pos.Y+1:])
	d.rows[pos.Y+1] = tail
	d.unhighlightAround(pos.Y)
}

// Delete removes the grapheme at pos. At the end of a row that is not the
// last one, the next row is joined onto it.
func (d *Document) Delete(pos Position) {
	if pos.Y < 0 || pos.Y >= len(d.rows) {
		return
	}

	row := d.rows[pos.Y]
	switch {
	case pos.X == row.Len() && pos.Y < len(d.rows)-1:
		row.Append(d.rows[pos.Y+1])
		d.rows = append(d.rows[:pos.Y+1], d.rows[pos.Y+2:]...)
	case pos.X >= 0 && pos.X < row.Len():
		row.Delete(pos.X)
	default:
		return
	}
	d.dirty = true
	d.unhighlightAround(pos.Y)
}

// Find searches for query starting at at. Forward searches continue at the
// start of following rows, backward searches at the end of preceding ones.
func (d *Document) Find(query string, at Position, dir Direction) (Position, bool) {
	if at.Y < 0 || at.Y >= len(d.rows) {
		return Position{}, false
	}

	pos := at
	for pos.Y >= 0 && pos.Y < len(d.rows) {
		if x, ok := d.rows[pos.Y].Find(query, pos.X, dir); ok {
			return Position{X: x, Y: pos.Y}, true
		}

		if dir == Forward {
			pos.Y++
			pos.X = 0
		} else {
			pos.Y--
			if pos.Y >= 0 {
				pos.X = d.rows[pos.Y].Len()
			}
		}
	}
	return Position{}, false
}

// Highlight re-tokenizes every row. See HighlightUntil.
func (d *Document) Highlight(word string) {
	d.HighlightUntil(word, len(d.rows)-1)
}

// HighlightUntil re-tokenizes rows [0, until], threading the block comment
// state from each row into the next. Rows whose cached tags were produced
// for the same word and the same incoming state are skipped, so a change in
// an upstream row's outgoing state always reaches the rows below it.
func (d *Document) HighlightUntil(word string, until int) {
	until = min(until, len(d.rows)-1)
	if until < 0 {
		return
	}
	rules := d.fileType.Rules()

	inComment := false
	for _, row := range d.rows[:until+1] {
		inComment = row.Highlight(rules, word, inComment)
	}
}

// Save writes every row followed by "\n" to the document's file. Without a
// file name there is nothing to write to and Save returns nil.
func (d *Document) Save() error {
	if d.fileName == "" {
		return nil
	}

	f, err := os.Create(d.fileName)
	if err != nil {
		return fmt.Errorf("saving %s: %w", d.fileName, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range d.rows {
		if _, err := w.WriteString(row.content); err != nil {
			return fmt.Errorf("saving %s: %w", d.fileName, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("saving %s: %w", d.fileName, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("saving %s: %w", d.fileName, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", d.fileName, err)
	}

	d.dirty = false
	return nil
}

// SaveAs sets the file name and saves.
func (d *Document) SaveAs(name string) error {
	if name == "" {
		return ErrNoFileName
	}
	d.SetFileName(name)
	return d.Save()
}

// unhighlightAround marks row y and the one above it stale. Rows further
// down are revisited by HighlightUntil when the comment state reaching them
// changes.
func (d *Document) unhighlightAround(y int) {
	for i := max(0, y-1); i <= y && i < len(d.rows); i++ {
		d.rows[i].Unhighlight()
	}
}
