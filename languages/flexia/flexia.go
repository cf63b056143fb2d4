// Package flexia discovers declarations in Flexia source text.
//
// Discovery is a lexical pass, not a parse: three patterns are applied to
// every line and nothing knows about comments or string literals, so a
// keyword inside a quoted string still declares a symbol.
package flexia

import (
	"regexp"

	"github.com/roveo/flexls/languages"
)

// LanguageID is the identifier editors tag Flexia documents with.
const LanguageID = "flexia"

func init() {
	languages.Register(&Language{})
}

var (
	functionPattern = regexp.MustCompile(`\bFunction\s+([A-Za-z_][A-Za-z0-9_]*)`)
	classPattern    = regexp.MustCompile(`\bClass\s+([A-Za-z_][A-Za-z0-9_]*)`)
	variablePattern = regexp.MustCompile(`\b(?:int|float|double|string|bool|char|var)\s+([a-z_][a-zA-Z0-9_]*)\b`)
)

// patterns are applied in this order on every line.
var patterns = []struct {
	re   *regexp.Regexp
	kind languages.Kind
}{
	{functionPattern, languages.KindFunction},
	{classPattern, languages.KindClass},
	{variablePattern, languages.KindVariable},
}

// Language implements languages.Language for Flexia
type Language struct{}

func (l *Language) Name() string {
	return LanguageID
}

func (l *Language) Extensions() []string {
	return []string{".flexia", ".fx"}
}

// Scan returns every declaration in text, grouped by line and, within a
// line, by pattern (all functions, then classes, then variables). The
// location of a symbol is the start of its whole match, so it points at the
// keyword rather than the name.
func (l *Language) Scan(text, uri string) []languages.Symbol {
	symbols := []languages.Symbol{}
	for lineNum, line := range languages.SplitLines(text) {
		for _, p := range patterns {
			for _, m := range p.re.FindAllStringSubmatchIndex(line, -1) {
				col := languages.UTF16Len(line[:m[0]])
				pos := languages.Position{Line: lineNum, Character: col}
				symbols = append(symbols, languages.Symbol{
					Name: line[m[2]:m[3]],
					Kind: p.kind,
					Location: languages.Location{
						URI:   uri,
						Range: languages.Range{Start: pos, End: pos},
					},
				})
			}
		}
	}
	return symbols
}

// Scan is a shorthand for (&Language{}).Scan.
func Scan(text, uri string) []languages.Symbol {
	return (&Language{}).Scan(text, uri)
}
