package bubble_adapter

import (
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/rowedit/buffer"
	editor "github.com/ionut-t/rowedit/core"
	"github.com/ionut-t/rowedit/highlighter"
)

type Theme struct {
	NormalModeStyle        lipgloss.Style
	InsertModeStyle        lipgloss.Style
	CommandModeStyle       lipgloss.Style
	SearchModeStyle        lipgloss.Style
	StatusLineStyle        lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	CursorStyle            lipgloss.Style
	TildeStyle             lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	CommandModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	SearchModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("#EFEFEF")).Foreground(lipgloss.Color("#3F3F3F")),
	CommandLineStyle:       lipgloss.NewStyle(),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right),
	CursorStyle:            lipgloss.NewStyle().Reverse(true),
	TildeStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// LightTheme suits terminals with a light background.
var LightTheme = func() Theme {
	t := DefaultTheme
	t.StatusLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("#3F3F3F")).Foreground(lipgloss.Color("#EFEFEF"))
	t.MessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	t.ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	t.LineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Align(lipgloss.Right)
	t.CurrentLineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Align(lipgloss.Right)
	t.TildeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return t
}()

// FileWatcher reports external changes to the open file. Saved and Watch
// are called with the target path before the editor writes the file itself.
type FileWatcher interface {
	Events() <-chan struct{}
	Saved()
	Watch(path string) error
}

type Model struct {
	editor          editor.Editor
	palette         highlighter.Palette
	theme           Theme
	keys            keyMap
	watcher         FileWatcher
	width           int
	height          int
	showLineNumbers bool
	messageTimeout  time.Duration
	version         string
	message         string
	err             error
	messageID       int // Incremented per message so stale clear ticks are ignored
}

type Option func(*Model)

// WithPalette sets the colours used for highlight classes.
func WithPalette(p highlighter.Palette) Option {
	return func(m *Model) { m.palette = p }
}

func WithTheme(theme Theme) Option {
	return func(m *Model) { m.theme = theme }
}

func WithLineNumbers(show bool) Option {
	return func(m *Model) { m.showLineNumbers = show }
}

// WithMessageTimeout sets how long status messages stay visible.
func WithMessageTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.messageTimeout = d
		}
	}
}

func WithWatcher(w FileWatcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithVersion sets the version shown in the welcome message.
func WithVersion(v string) Option {
	return func(m *Model) { m.version = v }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c editor.Clipboard) Option {
	return func(m *Model) { m.editor = editor.New(m.editor.Document(), c) }
}

type messageMsg string

type errMsg error

type clearMsg struct {
	id int
}

type signalMsg struct {
	signal editor.Signal
}

type fileChangedMsg struct{}

type atottoClipboard struct{}

func (c *atottoClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *atottoClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

// New returns a Model editing doc. A nil doc starts an empty, unnamed
// document.
func New(doc *buffer.Document, opts ...Option) Model {
	if doc == nil {
		doc = buffer.New()
	}

	m := Model{
		editor:         editor.New(doc, &atottoClipboard{}),
		palette:        buffer.DefaultPalette,
		theme:          DefaultTheme,
		keys:           defaultKeyMap(),
		messageTimeout: 5 * time.Second,
		version:        "dev",
		message:        editor.WelcomeMessage,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.watcher != nil {
		w := m.watcher
		m.editor.OnBeforeSave(func(path string) {
			w.Saved()
			if err := w.Watch(path); err != nil {
				log.Printf("watching %s: %v", path, err)
			}
		})
	}

	return m
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() editor.Editor {
	return m.editor
}

// SetSize resizes the model, keeping two lines for the status and message
// bars.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetViewport(m.textWidth(), m.textHeight())
}

func (m Model) textHeight() int {
	return max(1, m.height-2)
}

func (m Model) textWidth() int {
	return max(1, m.width-m.gutterWidth())
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listenForEditorUpdate(),
		m.waitForFileChange(),
		m.dispatchClearMsg(m.messageID),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}

		for _, ev := range keyEventsFromMsg(msg) {
			if err := m.editor.HandleKey(ev); err != nil {
				log.Printf("key %s: %v", ev, err)
			}
		}

		if m.editor.State().Quit {
			return m, tea.Quit
		}

	case signalMsg:
		cmds = append(cmds, m.handleSignal(msg.signal), m.listenForEditorUpdate())

	case fileChangedMsg:
		m.editor.DispatchSignal(editor.NewFileChangedSignal(m.editor.Document().FileName()))
		cmds = append(cmds, m.waitForFileChange())

	case messageMsg:
		m.message = string(msg)
		m.err = nil
		m.messageID++
		cmds = append(cmds, m.dispatchClearMsg(m.messageID))

	case errMsg:
		m.message = ""
		m.err = msg
		m.messageID++
		cmds = append(cmds, m.dispatchClearMsg(m.messageID))

	case clearMsg:
		if msg.id == m.messageID {
			m.message = ""
			m.err = nil
		}
	}

	return m, tea.Batch(cmds...)
}

// handleSignal turns an editor signal into the command that shows it.
func (m *Model) handleSignal(signal editor.Signal) tea.Cmd {
	switch signal := signal.(type) {
	case editor.MessageSignal:
		return message(signal.Value())

	case editor.ErrorSignal:
		_, err := signal.Value()
		return func() tea.Msg { return errMsg(err) }

	case editor.SaveSignal:
		log.Printf("saved %s", signal.Value())

	case editor.FileChangedSignal:
		return message(editor.FileChangedMessage + ": " + signal.Value())

	case editor.EnterCommandModeSignal, editor.EnterSearchModeSignal:
		m.message = ""
		m.err = nil

	case editor.QuitSignal:
		return tea.Quit
	}

	return nil
}

func message(text string) tea.Cmd {
	return func() tea.Msg { return messageMsg(text) }
}

func (m Model) dispatchClearMsg(id int) tea.Cmd {
	return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
		return clearMsg{id: id}
	})
}

// listenForEditorUpdate waits for the next editor signal. It is issued
// again each time one arrives.
func (m Model) listenForEditorUpdate() tea.Cmd {
	signals := m.editor.Signals()
	return func() tea.Msg {
		return signalMsg{<-signals}
	}
}

func (m Model) waitForFileChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	events := m.watcher.Events()
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// keyEventsFromMsg converts a bubbletea key to editor key events. Pasted
// or composed input carries several runes and becomes one event per rune.
func keyEventsFromMsg(msg tea.KeyMsg) []editor.KeyEvent {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		events := make([]editor.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, editor.KeyEvent{Rune: r})
		}
		return events
	}
	return []editor.KeyEvent{keyEventFromMsg(msg)}
}

// keyEventFromMsg converts a single bubbletea key to an editor key event.
func keyEventFromMsg(msg tea.KeyMsg) editor.KeyEvent {
	ev := editor.KeyEvent{}

	if len(msg.Runes) > 0 {
		ev.Rune = msg.Runes[0]
	}

	if msg.Alt {
		ev.Modifiers |= editor.ModAlt
	}

	switch msg.Type {
	case tea.KeyEnter:
		ev.Key = editor.KeyEnter
	case tea.KeySpace:
		ev.Rune = ' '
	case tea.KeyEsc:
		ev.Key = editor.KeyEscape
	case tea.KeyBackspace:
		ev.Key = editor.KeyBackspace
	case tea.KeyTab:
		ev.Key = editor.KeyTab
	case tea.KeyUp:
		ev.Key = editor.KeyUp
	case tea.KeyDown:
		ev.Key = editor.KeyDown
	case tea.KeyLeft:
		ev.Key = editor.KeyLeft
	case tea.KeyRight:
		ev.Key = editor.KeyRight
	case tea.KeyHome:
		ev.Key = editor.KeyHome
	case tea.KeyEnd:
		ev.Key = editor.KeyEnd
	case tea.KeyDelete:
		ev.Key = editor.KeyDelete
	case tea.KeyPgUp:
		ev.Key = editor.KeyPageUp
	case tea.KeyPgDown:
		ev.Key = editor.KeyPageDown
	case tea.KeyCtrlS:
		ev = editor.KeyEvent{Rune: 's', Modifiers: editor.ModCtrl}
	case tea.KeyCtrlQ:
		ev = editor.KeyEvent{Rune: 'q', Modifiers: editor.ModCtrl}
	}

	return ev
}
