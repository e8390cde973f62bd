package highlighter

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Palette turns highlight classes into the escape sequences written between
// rendered runs.
type Palette interface {
	Marker(t Type) string // switches the foreground to t's colour
	Reset() string        // restores the terminal default
}

// ANSIPalette is a Palette of precomputed SGR sequences.
type ANSIPalette struct {
	markers map[Type]string
	reset   string
}

// Colours used when no theme is configured.
var defaultColours = map[Type]string{
	None:             "#ffffff",
	Number:           "#dca3a3",
	Match:            "#268bd2",
	String:           "#d33682",
	Character:        "#6c71c4",
	Comment:          "#859900",
	MultilineComment: "#859900",
	PrimaryKeyword:   "#b58900",
	SecondaryKeyword: "#2aa198",
}

// chroma token types backing each class in a themed palette.
var tokenTypes = map[Type]chroma.TokenType{
	None:             chroma.Text,
	Number:           chroma.LiteralNumber,
	String:           chroma.LiteralString,
	Character:        chroma.LiteralStringChar,
	Comment:          chroma.CommentSingle,
	MultilineComment: chroma.CommentMultiline,
	PrimaryKeyword:   chroma.Keyword,
	SecondaryKeyword: chroma.KeywordType,
}

// DefaultPalette returns the built-in colours converted for profile.
func DefaultPalette(profile termenv.Profile) *ANSIPalette {
	return newANSIPalette(profile, defaultColours)
}

// ThemePalette builds a palette from a chroma style such as "monokai" or
// "catppuccin-mocha". Classes the style leaves uncoloured keep the built-in
// colour, and search matches always use the built-in match colour.
func ThemePalette(profile termenv.Profile, theme string) (*ANSIPalette, error) {
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, theme)
	}

	colours := make(map[Type]string, len(defaultColours))
	for typ, hex := range defaultColours {
		colours[typ] = hex
	}
	for typ, tt := range tokenTypes {
		if entry := style.Get(tt); entry.Colour.IsSet() {
			colours[typ] = entry.Colour.String()
		}
	}

	return newANSIPalette(profile, colours), nil
}

func newANSIPalette(profile termenv.Profile, colours map[Type]string) *ANSIPalette {
	p := &ANSIPalette{markers: make(map[Type]string, len(colours))}
	for typ, hex := range colours {
		if seq := profile.Color(hex).Sequence(false); seq != "" {
			p.markers[typ] = termenv.CSI + seq + "m"
		}
	}
	if profile != termenv.Ascii {
		p.reset = termenv.CSI + termenv.ResetSeq + "m"
	}
	return p
}

func (p *ANSIPalette) Marker(t Type) string { return p.markers[t] }

func (p *ANSIPalette) Reset() string { return p.reset }
