// Package tools provides MCP tools over a Flexia workspace.
package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roveo/flexls/config"
	"github.com/roveo/flexls/languages"
	"github.com/roveo/flexls/workspace"
)

// DefaultLineLimit is the default maximum number of lines in the index output
const DefaultLineLimit = config.DefaultLineLimit

// Config holds server-wide configuration for tools
type Config struct {
	Root         string                // Workspace root; relative file arguments resolve against it
	SkipPatterns []string              // Path prefixes to skip by default
	LineLimit    int                   // Maximum lines in output (0 = default limit)
	Dispatcher   *workspace.Dispatcher // Serializes access to the workspace
}

// FileIndex holds the declarations of one tracked document
type FileIndex struct {
	Path    string             `json:"path"` // Relative path from the root
	URI     string             `json:"uri"`
	Symbols []languages.Symbol `json:"-"`
}

// Collect scans every tracked document of ws. Paths are made relative to
// root and the result is sorted by path.
func Collect(ws *workspace.Workspace, root string) []FileIndex {
	var files []FileIndex
	for _, uri := range ws.Documents() {
		files = append(files, FileIndex{
			Path:    relativePath(root, uri),
			URI:     uri,
			Symbols: ws.Symbols(uri),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// relativePath renders a document URI for display: relative to root when
// the document lives below it, the bare URI otherwise.
func relativePath(root, uri string) string {
	path, err := workspace.PathFromURI(uri)
	if err != nil {
		return uri
	}
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// resolve returns the absolute path of a file argument.
func (cfg *Config) resolve(file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(cfg.Root, file)
}

// document returns the URI of a file argument, recording the file first if
// the workspace does not track it yet.
func (cfg *Config) document(ctx context.Context, file string) (string, error) {
	if file == "" {
		return "", fmt.Errorf("file is required")
	}
	path := cfg.resolve(file)
	uri, err := workspace.FileURI(path)
	if err != nil {
		return "", err
	}

	var indexErr error
	err = cfg.Dispatcher.Do(ctx, func(ws *workspace.Workspace) {
		if _, ok := ws.Text(uri); ok {
			return
		}
		_, indexErr = ws.IndexFile(path)
	})
	if err != nil {
		return "", err
	}
	if indexErr != nil {
		return "", indexErr
	}
	return uri, nil
}

// position converts 1-based line and column arguments.
func position(line, column int) (languages.Position, error) {
	if line < 1 || column < 1 {
		return languages.Position{}, fmt.Errorf("line and column are 1-based, got %d:%d", line, column)
	}
	return languages.Position{Line: line - 1, Character: column - 1}, nil
}
