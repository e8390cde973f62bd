package bubble_adapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/rowedit/buffer"
	editor "github.com/ionut-t/rowedit/core"
	"github.com/muesli/reflow/truncate"
)

const maxFileNameWidth = 20

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderRows(),
		m.statusLine(),
		m.commandLine(),
	)
}

// gutterWidth is the width of the line number column, including the space
// separating it from the text.
func (m Model) gutterWidth() int {
	if !m.showLineNumbers {
		return 0
	}
	digits := len(strconv.Itoa(max(1, m.editor.Document().Len())))
	return max(4, digits) + 1
}

// renderRows draws the visible window. Highlighting is brought up to date
// only as far as the last visible row.
func (m Model) renderRows() string {
	doc := m.editor.Document()
	state := m.editor.State()
	cursor := m.editor.Cursor()
	height := m.textHeight()

	doc.HighlightUntil(state.SearchWord, state.TopLine+height-1)

	lines := make([]string, height)
	for i := range lines {
		y := state.TopLine + i
		row, ok := doc.Row(y)

		switch {
		case ok:
			lines[i] = m.gutter(y, cursor.Y) + m.renderRow(row, y == cursor.Y, cursor.X, state.LeftCol)
		case y == cursor.Y:
			lines[i] = m.gutter(-1, cursor.Y) + m.theme.CursorStyle.Render(" ")
		case doc.IsEmpty() && i == height/3:
			lines[i] = m.welcome()
		default:
			lines[i] = m.theme.TildeStyle.Render("~")
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) gutter(y, cursorY int) string {
	width := m.gutterWidth()
	if width == 0 {
		return ""
	}
	if y < 0 {
		return strings.Repeat(" ", width)
	}

	style := m.theme.LineNumberStyle
	if y == cursorY {
		style = m.theme.CurrentLineNumberStyle
	}
	return style.Width(width-1).Render(strconv.Itoa(y+1)) + " "
}

// renderRow renders the graphemes of row in view. On the cursor row the
// grapheme under the cursor is drawn reversed.
func (m Model) renderRow(row *buffer.Row, hasCursor bool, cursorX, left int) string {
	width := m.textWidth()
	right := left + width
	if !hasCursor || cursorX < left || cursorX >= right {
		return truncate.String(row.RenderWith(m.palette, left, right), uint(width))
	}

	cell := row.Grapheme(cursorX)
	if cell == "" || cell == "\t" {
		cell = " "
	}

	line := row.RenderWith(m.palette, left, cursorX) +
		m.theme.CursorStyle.Render(cell) +
		row.RenderWith(m.palette, cursorX+1, right)
	return truncate.String(line, uint(width))
}

func (m Model) welcome() string {
	text := fmt.Sprintf("rowedit editor -- version %s", m.version)
	padding := max(0, (m.width-lipgloss.Width(text))/2-1)
	line := "~" + strings.Repeat(" ", padding) + text
	return truncate.String(line, uint(m.width))
}

func (m Model) modeLabel(mode editor.Mode) string {
	switch mode {
	case editor.InsertMode:
		return m.theme.InsertModeStyle.Render(" INSERT ")
	case editor.CommandMode:
		return m.theme.CommandModeStyle.Render(" COMMAND ")
	case editor.SearchMode:
		return m.theme.SearchModeStyle.Render(" SEARCH ")
	default:
		return m.theme.NormalModeStyle.Render(" NORMAL ")
	}
}

// statusLine shows the mode, file name, row count and modified flag on the
// left and the file type and cursor position on the right.
func (m Model) statusLine() string {
	doc := m.editor.Document()
	state := m.editor.State()
	cursor := m.editor.Cursor()

	name := doc.FileName()
	if name == "" {
		name = "[No Name]"
	}
	name = truncate.StringWithTail(name, maxFileNameWidth, "…")

	modified := ""
	if doc.IsDirty() {
		modified = " (modified)"
	}

	left := fmt.Sprintf(" %s - %d lines%s ", name, doc.Len(), modified)
	right := fmt.Sprintf(" %s | %d:%d ", doc.FileType().Name(), cursor.Y+1, cursor.X+1)

	label := m.modeLabel(state.Mode)
	gap := m.width - lipgloss.Width(label) - lipgloss.Width(left) - lipgloss.Width(right)

	line := label + m.theme.StatusLineStyle.Render(left+strings.Repeat(" ", max(0, gap))+right)
	return truncate.String(line, uint(m.width))
}

// commandLine shows the prompt being typed, or else the latest error or
// message.
func (m Model) commandLine() string {
	var line string
	switch state := m.editor.State(); {
	case state.CommandLine != "":
		line = m.theme.CommandLineStyle.Render(state.CommandLine)
	case m.err != nil:
		line = m.theme.ErrorStyle.Render(m.err.Error())
	case m.message != "":
		line = m.theme.MessageStyle.Render(m.message)
	}
	return truncate.String(line, uint(m.width))
}
