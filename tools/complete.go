package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/flexls/completion"
	"github.com/roveo/flexls/workspace"
)

// CompleteInput is the input schema for the complete tool
type CompleteInput struct {
	File   string `json:"file" jsonschema_description:"Path to the Flexia file, absolute or relative to the workspace root."`
	Line   int    `json:"line" jsonschema_description:"1-based line of the cursor."`
	Column int    `json:"column" jsonschema_description:"1-based column of the cursor, counted in UTF-16 code units."`
}

// CompleteTool creates the complete MCP tool
func CompleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "complete",
		Description: `List completion candidates at a cursor position in a Flexia file.

Declarations of the file come first, followed by the standard library catalog. Nothing is offered inside a string literal.`,
	}
}

// CompleteHandler handles the complete tool invocation
func CompleteHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, CompleteInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CompleteInput) (*mcp.CallToolResult, any, error) {
		pos, err := position(input.Line, input.Column)
		if err != nil {
			return nil, nil, err
		}
		uri, err := cfg.document(ctx, input.File)
		if err != nil {
			return nil, nil, err
		}

		var candidates []completion.Candidate
		if err := cfg.Dispatcher.Do(ctx, func(ws *workspace.Workspace) {
			candidates = ws.Complete(uri, pos)
		}); err != nil {
			return nil, nil, err
		}

		if len(candidates) == 0 {
			return textResult(fmt.Sprintf("No completions at %s:%d:%d", input.File, input.Line, input.Column)), nil, nil
		}
		return textResult(FormatCandidates(candidates)), nil, nil
	}
}

// FormatCandidates renders one candidate per line as "label (Kind) detail".
func FormatCandidates(candidates []completion.Candidate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Completions (%d)\n\n", len(candidates))
	for _, c := range candidates {
		fmt.Fprintf(&sb, "  %s (%s)", c.Label, c.Kind)
		if c.Detail != "" {
			sb.WriteString(" " + c.Detail)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
