// Package navigation answers go-to-definition and find-references queries.
//
// Definitions come from the symbol index and may name several sites.
// References are a literal text search of the current document that does
// not consult the index at all.
package navigation

import (
	"regexp"
	"strings"

	"github.com/roveo/flexls/index"
	"github.com/roveo/flexls/languages"
)

var identifier = regexp.MustCompile(`[A-Za-z0-9_]+`)

// WordAt returns the identifier touching pos, or "" when there is none.
// Dots end a word.
func WordAt(text string, pos languages.Position) string {
	line := languages.LineAt(text, pos.Line)
	for _, m := range identifier.FindAllStringIndex(line, -1) {
		start := languages.UTF16Len(line[:m[0]])
		end := start + languages.UTF16Len(line[m[0]:m[1]])
		if start <= pos.Character && pos.Character <= end {
			return line[m[0]:m[1]]
		}
	}
	return ""
}

// Definition returns every recorded declaration site of the word at pos.
func Definition(idx *index.Index, text string, pos languages.Position) []languages.Location {
	word := WordAt(text, pos)
	if word == "" {
		return []languages.Location{}
	}
	return idx.Lookup(word)
}

// References returns every non-overlapping occurrence of the word at pos in
// text, line by line. Occurrences inside longer words, strings and comments
// all count.
func References(uri, text string, pos languages.Position) []languages.Location {
	word := WordAt(text, pos)
	if word == "" {
		return []languages.Location{}
	}
	return Occurrences(uri, text, word)
}

// Occurrences returns every non-overlapping occurrence of word in text.
func Occurrences(uri, text, word string) []languages.Location {
	refs := []languages.Location{}
	if word == "" {
		return refs
	}
	width := languages.UTF16Len(word)
	for lineNum, line := range languages.SplitLines(text) {
		offset := 0
		for {
			i := strings.Index(line[offset:], word)
			if i < 0 {
				break
			}
			col := languages.UTF16Len(line[:offset+i])
			refs = append(refs, languages.Location{
				URI: uri,
				Range: languages.Range{
					Start: languages.Position{Line: lineNum, Character: col},
					End:   languages.Position{Line: lineNum, Character: col + width},
				},
			})
			offset += i + len(word)
		}
	}
	return refs
}
