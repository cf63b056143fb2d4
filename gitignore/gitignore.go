// Package gitignore decides which paths under a workspace root are not
// indexed: those ignored by any .gitignore in the tree, and those matching
// configured exclude globs.
package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// Matcher holds compiled ignore rules for a directory tree.
type Matcher struct {
	root     string
	files    []scoped // one per .gitignore, shallowest first
	excludes []glob.Glob
}

// scoped is a .gitignore whose patterns apply below dir.
type scoped struct {
	dir string // relative to root, "" for the root itself
	gi  *ignore.GitIgnore
}

// New creates a Matcher for root. It loads every .gitignore in the tree
// (hidden directories are not descended into) and compiles excludes as
// '/'-separated glob patterns.
func New(root string, excludes ...string) (*Matcher, error) {
	m := &Matcher{root: root}

	for _, p := range excludes {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		m.excludes = append(m.excludes, g)
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip inaccessible paths
		}
		if info.IsDir() && path != root && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if info.IsDir() || info.Name() != ".gitignore" {
			return nil
		}
		gi, err := ignore.CompileIgnoreFile(path)
		if err != nil {
			return nil // Skip unreadable .gitignore files
		}
		rel, _ := filepath.Rel(root, filepath.Dir(path))
		if rel == "." {
			rel = ""
		}
		m.files = append(m.files, scoped{dir: filepath.ToSlash(rel), gi: gi})
		return nil
	})

	return m, err
}

// Match reports whether a path should be skipped. The path is relative to
// the Matcher's root; isDir should be true for directories.
func (m *Matcher) Match(path string, isDir bool) bool {
	if m == nil {
		return false
	}
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if path == "" || path == "." {
		return false
	}

	for _, g := range m.excludes {
		if g.Match(path) {
			return true
		}
	}

	for _, f := range m.files {
		rel := path
		if f.dir != "" {
			if !strings.HasPrefix(path, f.dir+"/") {
				continue
			}
			rel = strings.TrimPrefix(path, f.dir+"/")
		}
		if f.gi.MatchesPath(rel) {
			return true
		}
		// Directory-only patterns ("build/") need the trailing slash.
		if isDir && f.gi.MatchesPath(rel+"/") {
			return true
		}
	}
	return false
}
