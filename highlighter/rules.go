package highlighter

import (
	"path/filepath"
	"strings"
)

// Rules describes which token classes are enabled for a language and the
// keywords it recognises.
type Rules struct {
	Name string

	Numbers           bool
	Strings           bool
	Characters        bool
	Comments          bool
	MultilineComments bool

	LineComment string // e.g. "//"
	BlockOpen   string // e.g. "/*"
	BlockClose  string // e.g. "*/"

	PrimaryKeywords   []string
	SecondaryKeywords []string
}

// Plain disables every class. Used for unknown file types.
var Plain = &Rules{Name: "plain"}

var rust = &Rules{
	Name:              "rust",
	Numbers:           true,
	Strings:           true,
	Characters:        true,
	Comments:          true,
	MultilineComments: true,
	LineComment:       "//",
	BlockOpen:         "/*",
	BlockClose:        "*/",
	PrimaryKeywords: []string{
		"as", "break", "const", "continue", "crate", "else", "enum", "extern", "false",
		"fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move", "mut",
		"pub", "ref", "return", "self", "Self", "static", "struct", "super", "trait",
		"true", "type", "unsafe", "use", "where", "while", "dyn", "abstract", "become",
		"box", "do", "final", "macro", "override", "priv", "typeof", "unsized",
		"virtual", "yield", "async", "await", "try",
	},
	SecondaryKeywords: []string{
		"bool", "char", "i8", "i16", "i32", "i64", "isize", "u8", "u16", "u32", "u64",
		"usize", "f32", "f64",
	},
}

var golang = &Rules{
	Name:              "go",
	Numbers:           true,
	Strings:           true,
	Characters:        true,
	Comments:          true,
	MultilineComments: true,
	LineComment:       "//",
	BlockOpen:         "/*",
	BlockClose:        "*/",
	PrimaryKeywords: []string{
		"break", "case", "chan", "const", "continue", "default", "defer", "else",
		"fallthrough", "for", "func", "go", "goto", "if", "import", "interface", "map",
		"package", "range", "return", "select", "struct", "switch", "type", "var",
		"true", "false", "nil", "iota",
	},
	SecondaryKeywords: []string{
		"bool", "byte", "complex64", "complex128", "error", "float32", "float64",
		"int", "int8", "int16", "int32", "int64", "rune", "string",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "any",
	},
}

var c = &Rules{
	Name:              "c",
	Numbers:           true,
	Strings:           true,
	Characters:        true,
	Comments:          true,
	MultilineComments: true,
	LineComment:       "//",
	BlockOpen:         "/*",
	BlockClose:        "*/",
	PrimaryKeywords: []string{
		"auto", "break", "case", "continue", "default", "do", "else", "enum",
		"extern", "for", "goto", "if", "register", "return", "sizeof", "static",
		"struct", "switch", "typedef", "union", "volatile", "while", "NULL",
	},
	SecondaryKeywords: []string{
		"int", "long", "double", "float", "char", "unsigned", "signed",
		"void", "short", "const", "bool",
	},
}

var byExtension = map[string]*Rules{
	".rs": rust,
	".go": golang,
	".c":  c,
	".h":  c,
}

// Lookup returns the rules for fileName based on its extension, or Plain.
func Lookup(fileName string) *Rules {
	ext := strings.ToLower(filepath.Ext(fileName))
	if r, ok := byExtension[ext]; ok {
		return r
	}
	return Plain
}
