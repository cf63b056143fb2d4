package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/roveo/flexls/gitignore"
	"github.com/roveo/flexls/languages"
)

// Walk calls fn with the path of every file of lang under root, skipping
// hidden and vendored directories and anything the matcher ignores.
// Paths are visited in lexical order.
func Walk(root string, lang languages.Language, matcher *gitignore.Matcher, fn func(path string) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}

		// Skip hidden directories and vendor
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			if path != root && matcher.Match(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher.Match(relPath, false) {
			return nil
		}
		if l := languages.GetLanguageForFile(path); l == nil || l.Name() != lang.Name() {
			return nil
		}
		return fn(path)
	})
}
