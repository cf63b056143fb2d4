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

// FindDefinitionInput is the input schema for the find_definition tool
type FindDefinitionInput struct {
	Symbol string `json:"symbol,omitempty" jsonschema_description:"Name of the declared symbol. Either symbol or file with line and column is required."`
	File   string `json:"file,omitempty" jsonschema_description:"Flexia file containing a use of the symbol, absolute or relative to the workspace root."`
	Line   int    `json:"line,omitempty" jsonschema_description:"1-based line of the use in file."`
	Column int    `json:"column,omitempty" jsonschema_description:"1-based column of the use in file."`
}

// FindDefinitionTool creates the find_definition MCP tool
func FindDefinitionTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "find_definition",
		Description: `Find where a symbol is declared in the workspace.

Looks the name up in the declaration index built from every Flexia file. A name declared more than once lists every declaration; declarations recorded before an edit are listed too.`,
	}
}

// FindDefinitionHandler handles the find_definition tool invocation
func FindDefinitionHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, FindDefinitionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindDefinitionInput) (*mcp.CallToolResult, any, error) {
		name := input.Symbol
		var locs []languages.Location

		switch {
		case name != "":
			if err := cfg.Dispatcher.Do(ctx, func(ws *workspace.Workspace) {
				locs = ws.Index().Lookup(name)
			}); err != nil {
				return nil, nil, err
			}
		case input.File != "":
			pos, err := position(input.Line, input.Column)
			if err != nil {
				return nil, nil, err
			}
			uri, err := cfg.document(ctx, input.File)
			if err != nil {
				return nil, nil, err
			}
			if err := cfg.Dispatcher.Do(ctx, func(ws *workspace.Workspace) {
				text, _ := ws.Text(uri)
				name = navigation.WordAt(text, pos)
				locs = ws.Definition(uri, pos)
			}); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, fmt.Errorf("symbol or file is required")
		}

		if len(locs) == 0 {
			return textResult(fmt.Sprintf("No definition found for %q", name)), nil, nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# Definitions of %q (%d found)\n\n", name, len(locs))
		for _, loc := range locs {
			start := loc.Range.Start
			fmt.Fprintf(&sb, "  %s [%d:%d]\n", relativePath(cfg.Root, loc.URI), start.Line+1, start.Character+1)
		}
		return textResult(sb.String()), nil, nil
	}
}
