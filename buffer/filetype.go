package buffer

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/ionut-t/rowedit/highlighter"
)

// FileType pairs the display name of a file's language with the rules used to
// highlight it.
type FileType struct {
	name  string
	rules *highlighter.Rules
}

// FileTypeFor derives the file type from a file name. Languages without
// highlight rules still get a name when chroma recognises the file.
func FileTypeFor(fileName string) FileType {
	rules := highlighter.Lookup(fileName)
	if rules != highlighter.Plain || fileName == "" {
		return FileType{name: rules.Name, rules: rules}
	}

	name := rules.Name
	if lexer := lexers.Match(fileName); lexer != nil {
		name = strings.ToLower(lexer.Config().Name)
	}
	return FileType{name: name, rules: rules}
}

func (f FileType) Name() string {
	if f.name == "" {
		return highlighter.Plain.Name
	}
	return f.name
}

func (f FileType) Rules() *highlighter.Rules {
	if f.rules == nil {
		return highlighter.Plain
	}
	return f.rules
}
