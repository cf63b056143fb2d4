package languages

import "fmt"

// Position represents a position in a text document (LSP-compliant, 0-based).
// Character counts UTF-16 code units.
type Position struct {
	Line      int // 0-based line number
	Character int // 0-based character offset
}

// Range represents a range in a text document (LSP-compliant, 0-based)
type Range struct {
	Start Position
	End   Position
}

// Location is a position inside a named document.
type Location struct {
	URI   string
	Range Range
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.URI, l.Range.Start.Line+1, l.Range.Start.Character+1)
}

// Kind classifies a declaration.
type Kind int

const (
	KindUnknown Kind = iota
	KindFunction
	KindClass
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindVariable:
		return "Variable"
	}
	return "Unknown"
}

// Symbol is a named declaration found in a document.
// Several symbols may share a name; nothing deduplicates them.
type Symbol struct {
	Name     string
	Kind     Kind
	Location Location
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}

// Language defines how declarations are discovered in one language
type Language interface {
	// Name returns the language identifier editors tag documents with (e.g., "flexia")
	Name() string

	// Extensions returns the file extensions this language handles (e.g., [".flexia"])
	Extensions() []string

	// Scan returns the declarations in text. It never returns nil.
	Scan(text, uri string) []Symbol
}
