package lsp

import (
	"github.com/roveo/flexls/completion"
	"github.com/roveo/flexls/languages"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func fromPosition(p protocol.Position) languages.Position {
	return languages.Position{Line: int(p.Line), Character: int(p.Character)}
}

func toPosition(p languages.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(p.Line, 0)),
		Character: protocol.UInteger(max(p.Character, 0)),
	}
}

func toRange(r languages.Range) protocol.Range {
	return protocol.Range{Start: toPosition(r.Start), End: toPosition(r.End)}
}

func toLocations(locs []languages.Location) []protocol.Location {
	result := make([]protocol.Location, 0, len(locs))
	for _, loc := range locs {
		result = append(result, protocol.Location{URI: loc.URI, Range: toRange(loc.Range)})
	}
	return result
}

func symbolKind(k languages.Kind) protocol.SymbolKind {
	switch k {
	case languages.KindFunction:
		return protocol.SymbolKindFunction
	case languages.KindClass:
		return protocol.SymbolKindClass
	case languages.KindVariable:
		return protocol.SymbolKindVariable
	}
	return protocol.SymbolKindObject
}

func completionKind(k completion.Kind) protocol.CompletionItemKind {
	switch k {
	case completion.KindFunction:
		return protocol.CompletionItemKindFunction
	case completion.KindClass:
		return protocol.CompletionItemKindClass
	case completion.KindVariable:
		return protocol.CompletionItemKindVariable
	}
	return protocol.CompletionItemKindText
}

func completionItem(c completion.Candidate) protocol.CompletionItem {
	kind := completionKind(c.Kind)
	item := protocol.CompletionItem{
		Label: c.Label,
		Kind:  &kind,
	}
	if c.Detail != "" {
		detail := c.Detail
		item.Detail = &detail
	}
	if c.Documentation != "" {
		item.Documentation = protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: c.Documentation,
		}
	}
	if c.Replace != nil {
		item.TextEdit = protocol.TextEdit{
			Range:   toRange(*c.Replace),
			NewText: c.Label,
		}
	}
	return item
}

// applyChanges applies content change events in order. Events without a
// range replace the whole text.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end := c.Range.IndexesIn(text)
			text = text[:start] + c.Text + text[end:]
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		}
	}
	return text
}
