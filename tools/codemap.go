package tools

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/flexls/workspace"
)

// CodemapInput is the input schema for the index tool
type CodemapInput struct {
	Filter string `json:"filter,omitempty" jsonschema_description:"Optional path filter to show only a specific directory or file. When specified, only files matching this prefix will have their declarations shown. Overrides any default skip patterns for matching files."`
}

// CodemapTool creates the index MCP tool
func CodemapTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "index",
		Description: "List the declarations (functions, classes and variables) of every Flexia file in the workspace with their positions as [line:column], 1-based.",
	}
}

// CodemapHandler handles the index tool invocation
func CodemapHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, CodemapInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CodemapInput) (*mcp.CallToolResult, any, error) {
		var files []FileIndex
		err := cfg.Dispatcher.Do(ctx, func(ws *workspace.Workspace) {
			files = Collect(ws, cfg.Root)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read workspace: %w", err)
		}

		output := FormatCodemap(files, FormatOptions{
			SkipPatterns: cfg.SkipPatterns,
			Filter:       input.Filter,
			LineLimit:    cfg.LineLimit,
		})
		if output == "" {
			output = "No declarations found in the workspace."
		}

		return textResult(output), nil, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// FormatOptions controls how the codemap is formatted
type FormatOptions struct {
	SkipPatterns []string // Path prefixes to skip by default
	Filter       string   // If set, only show files matching this prefix (overrides skip)
	LineLimit    int      // Maximum lines in output (0 = DefaultLineLimit, negative = no limit)
}

// FormatCodemap renders files as one section per file:
//
//	## lib/shapes.fx
//	  Class Shape [1:1]
//	  Function area [3:5]
//
// Files under skip patterns get a one-line notice instead. When the output
// would exceed the line limit, whole directories are dropped, largest first,
// and listed in a note at the top.
func FormatCodemap(files []FileIndex, opts FormatOptions) string {
	limit := opts.LineLimit
	if limit == 0 {
		limit = DefaultLineLimit
	}

	var shown, skipped []FileIndex
	for _, f := range files {
		switch {
		case opts.Filter != "":
			if matchesFilter(f.Path, opts.Filter) && len(f.Symbols) > 0 {
				shown = append(shown, f)
			}
		case isSkipped(f.Path, opts.SkipPatterns):
			skipped = append(skipped, f)
		case len(f.Symbols) > 0:
			shown = append(shown, f)
		}
	}

	// Each skip notice takes three lines.
	budget := limit
	if budget > 0 {
		budget = max(budget-3*len(skipped), 0)
	}
	shown, prunedDirs := pruneToLimit(shown, budget)

	var sb strings.Builder
	if len(prunedDirs) > 0 {
		sb.WriteString("# Note: Output pruned to fit line limit\n")
		sb.WriteString("# Pruned directories: ")
		sb.WriteString(strings.Join(prunedDirs, ", "))
		sb.WriteString("\n\n")
	}

	for _, f := range skipped {
		fmt.Fprintf(&sb, "## %s\n", f.Path)
		sb.WriteString("  (skipped by default - use filter parameter to list this path explicitly)\n\n")
	}

	for _, f := range shown {
		fmt.Fprintf(&sb, "## %s\n", f.Path)
		for _, sym := range f.Symbols {
			start := sym.Location.Range.Start
			fmt.Fprintf(&sb, "  %s [%d:%d]\n", sym.String(), start.Line+1, start.Character+1)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// matchesFilter checks if a file path matches the filter.
// Supports both exact file match and directory prefix match.
func matchesFilter(filePath, filter string) bool {
	filter = strings.TrimSuffix(strings.TrimPrefix(filter, "./"), "/")
	filePath = strings.TrimPrefix(filePath, "./")
	return filePath == filter || strings.HasPrefix(filePath, filter+"/")
}

// isSkipped checks if a file path matches any skip pattern (prefix match)
func isSkipped(filePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesFilter(filePath, pattern) {
			return true
		}
	}
	return false
}

// fileLineCount is the number of output lines for a file: header,
// declarations and a blank separator.
func fileLineCount(f FileIndex) int {
	return len(f.Symbols) + 2
}

// pruneToLimit drops whole directories until the files fit in limit lines.
// The directory with the most lines goes first; ties go to the deeper one,
// then the lexically larger. If a single directory is left and still too
// large, its largest files are dropped. A negative limit disables pruning.
func pruneToLimit(files []FileIndex, limit int) ([]FileIndex, []string) {
	if limit < 0 {
		return files, nil
	}
	lines := make(map[string]int)
	total := 0
	for _, f := range files {
		lines[path.Dir(f.Path)] += fileLineCount(f)
		total += fileLineCount(f)
	}
	if total <= limit {
		return files, nil
	}

	dirs := make([]string, 0, len(lines))
	for d := range lines {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		a, b := dirs[i], dirs[j]
		if lines[a] != lines[b] {
			return lines[a] > lines[b]
		}
		if da, db := strings.Count(a, "/"), strings.Count(b, "/"); da != db {
			return da > db
		}
		return a > b
	})

	dropped := make(map[string]bool)
	var prunedDirs []string
	for _, d := range dirs {
		if total <= limit || len(dropped) == len(dirs)-1 {
			break
		}
		dropped[d] = true
		prunedDirs = append(prunedDirs, d)
		total -= lines[d]
	}

	var kept []FileIndex
	for _, f := range files {
		if !dropped[path.Dir(f.Path)] {
			kept = append(kept, f)
		}
	}
	if total > limit {
		kept = pruneFiles(kept, total, limit)
	}
	sort.Strings(prunedDirs)
	return kept, prunedDirs
}

// pruneFiles drops the largest files until total fits in limit.
func pruneFiles(files []FileIndex, total, limit int) []FileIndex {
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return fileLineCount(files[order[i]]) > fileLineCount(files[order[j]])
	})

	drop := make(map[int]bool)
	for _, i := range order {
		if total <= limit {
			break
		}
		drop[i] = true
		total -= fileLineCount(files[i])
	}

	var kept []FileIndex
	for i, f := range files {
		if !drop[i] {
			kept = append(kept, f)
		}
	}
	return kept
}
