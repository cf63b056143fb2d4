// Package completion turns a cursor position into completion candidates.
//
// Candidates come from two sources: declarations scanned from the active
// document, and the standard library catalog. Local candidates always come
// first and the two lists are never merged by name.
package completion

import (
	"regexp"
	"strings"

	"github.com/roveo/flexls/catalog"
	"github.com/roveo/flexls/languages"
)

// Kind is the kind of a completion candidate.
type Kind int

const (
	KindText Kind = iota
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
	return "Text"
}

// KindOf maps a declaration kind to a candidate kind.
func KindOf(k languages.Kind) Kind {
	switch k {
	case languages.KindFunction:
		return KindFunction
	case languages.KindClass:
		return KindClass
	case languages.KindVariable:
		return KindVariable
	}
	return KindText
}

// Candidate is a single completion suggestion.
type Candidate struct {
	Label         string
	Kind          Kind
	Detail        string
	Documentation string           // markdown, empty when absent
	Replace       *languages.Range // nil inserts at the cursor
}

// Options tune how candidates are rendered.
type Options struct {
	// Locale selects the tag prefixed to local candidate details.
	Locale string
}

// TriggerCharacters are the characters after which editors should ask for
// completion: a few punctuation marks and every ASCII letter.
var TriggerCharacters = func() []string {
	chars := []string{".", "(", "<", "'", `"`}
	for c := 'a'; c <= 'z'; c++ {
		chars = append(chars, string(c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		chars = append(chars, string(c))
	}
	return chars
}()

var localTags = map[string]string{
	"en": "[local]",
	"zh": "[本地]",
}

// LocalTag returns the detail prefix for local candidates in locale.
// Unknown locales fall back to English.
func LocalTag(locale string) string {
	lang, _, _ := strings.Cut(strings.ToLower(locale), "-")
	lang, _, _ = strings.Cut(lang, "_")
	if tag, ok := localTags[lang]; ok {
		return tag
	}
	return localTags["en"]
}

var completableWord = regexp.MustCompile(`[A-Za-z0-9_.]+`)

// WordRange returns the span of [A-Za-z0-9_.] characters touching pos on
// its line. A cursor just after the last character still touches the word.
func WordRange(text string, pos languages.Position) (languages.Range, bool) {
	line := languages.LineAt(text, pos.Line)
	for _, m := range completableWord.FindAllStringIndex(line, -1) {
		start := languages.UTF16Len(line[:m[0]])
		end := start + languages.UTF16Len(line[m[0]:m[1]])
		if start <= pos.Character && pos.Character <= end {
			return languages.Range{
				Start: languages.Position{Line: pos.Line, Character: start},
				End:   languages.Position{Line: pos.Line, Character: end},
			}, true
		}
	}
	return languages.Range{}, false
}

// InString reports whether the cursor sits inside a string literal, judged
// only by counting quote characters before it on the same line: an odd
// number of either '"' or '\” means inside. Escapes are not understood.
func InString(text string, pos languages.Position) bool {
	line := languages.LineAt(text, pos.Line)
	prefix := line[:languages.ByteOffset(line, pos.Character)]
	return strings.Count(prefix, `"`)%2 == 1 || strings.Count(prefix, "'")%2 == 1
}

// Resolve computes the candidates offered at pos. local holds the
// declarations of the active document, entries the catalog. It returns an
// empty slice when the cursor is inside a string.
func Resolve(text string, pos languages.Position, local []languages.Symbol, entries []catalog.Entry, opts Options) []Candidate {
	if InString(text, pos) {
		return []Candidate{}
	}

	var replace *languages.Range
	if r, ok := WordRange(text, pos); ok {
		replace = &r
	}

	tag := LocalTag(opts.Locale)
	out := make([]Candidate, 0, len(local)+len(entries))
	for _, s := range local {
		out = append(out, Candidate{
			Label:   s.Name,
			Kind:    KindOf(s.Kind),
			Detail:  tag + " " + s.Kind.String(),
			Replace: replace,
		})
	}
	for _, e := range entries {
		out = append(out, Candidate{
			Label:         e.Name,
			Kind:          KindFunction,
			Detail:        e.Detail(),
			Documentation: e.Signature(),
			Replace:       replace,
		})
	}
	return out
}
