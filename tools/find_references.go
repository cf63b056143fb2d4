package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/flexls/languages"
	"github.com/roveo/flexls/navigation"
	"github.com/roveo/flexls/workspace"
)

// FindReferencesInput is the input schema for the find_references tool
type FindReferencesInput struct {
	File   string `json:"file,omitempty" jsonschema_description:"Flexia file to search, absolute or relative to the workspace root. Without it every workspace file is searched for symbol."`
	Symbol string `json:"symbol,omitempty" jsonschema_description:"Text to search for. Either symbol or line and column within file is required."`
	Line   int    `json:"line,omitempty" jsonschema_description:"1-based line of an occurrence in file; the word there is searched for."`
	Column int    `json:"column,omitempty" jsonschema_description:"1-based column of an occurrence in file."`
}

// FindReferencesTool creates the find_references MCP tool
func FindReferencesTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "find_references",
		Description: `Find every occurrence of a word in Flexia files.

This is a literal text search: matches inside longer identifiers, strings and comments are included.`,
	}
}

// Reference represents a single occurrence of a word
type Reference struct {
	File    string // Relative file path
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Context string // The line containing the occurrence
}

// FindReferencesHandler handles the find_references tool invocation
func FindReferencesHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, FindReferencesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindReferencesInput) (*mcp.CallToolResult, any, error) {
		if input.File == "" && input.Symbol == "" {
			return nil, nil, fmt.Errorf("symbol name is required")
		}

		var uris []string
		var pos languages.Position
		if input.File != "" {
			uri, err := cfg.document(ctx, input.File)
			if err != nil {
				return nil, nil, err
			}
			uris = []string{uri}
			if input.Symbol == "" {
				if pos, err = position(input.Line, input.Column); err != nil {
					return nil, nil, err
				}
			}
		}

		word := input.Symbol
		var refs []Reference
		err := cfg.Dispatcher.Do(ctx, func(ws *workspace.Workspace) {
			if uris == nil {
				uris = ws.Documents()
			}
			if word == "" {
				text, _ := ws.Text(uris[0])
				word = navigation.WordAt(text, pos)
			}
			refs = FindReferences(ws, cfg.Root, uris, word)
		})
		if err != nil {
			return nil, nil, err
		}

		if len(refs) == 0 {
			return textResult(fmt.Sprintf("No references found for %q", word)), nil, nil
		}

		// Format output
		var sb strings.Builder
		fmt.Fprintf(&sb, "# References to %q (%d found)\n\n", word, len(refs))

		currentFile := ""
		for _, ref := range refs {
			if ref.File != currentFile {
				if currentFile != "" {
					sb.WriteString("\n")
				}
				fmt.Fprintf(&sb, "## %s\n", ref.File)
				currentFile = ref.File
			}
			fmt.Fprintf(&sb, "  [%d:%d] %s\n", ref.Line, ref.Column, ref.Context)
		}
		return textResult(sb.String()), nil, nil
	}
}

// FindReferences scans the given tracked documents for word. Documents are
// searched in the order given; an empty word finds nothing.
func FindReferences(ws *workspace.Workspace, root string, uris []string, word string) []Reference {
	var refs []Reference
	for _, uri := range uris {
		text, ok := ws.Text(uri)
		if !ok {
			continue
		}
		file := relativePath(root, uri)
		for _, loc := range navigation.Occurrences(uri, text, word) {
			start := loc.Range.Start
			refs = append(refs, Reference{
				File:    file,
				Line:    start.Line + 1,
				Column:  start.Character + 1,
				Context: strings.TrimSpace(languages.LineAt(text, start.Line)),
			})
		}
	}
	return refs
}
