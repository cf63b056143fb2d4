package languages

import (
	"path/filepath"
	"strings"
)

var (
	registry = make(map[string]Language) // by extension
	byName   = make(map[string]Language) // by language identifier
)

// Register adds a language to the registry
func Register(lang Language) {
	for _, ext := range lang.Extensions() {
		registry[ext] = lang
	}
	byName[lang.Name()] = lang
}

// GetLanguageForFile returns the Language for a file based on its extension.
// Returns nil if the file type is not supported.
func GetLanguageForFile(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	return registry[ext]
}

// GetLanguage returns the Language registered under a language identifier,
// or nil.
func GetLanguage(name string) Language {
	return byName[name]
}

// SupportedExtensions returns all registered file extensions
func SupportedExtensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	return exts
}

// RegisteredLanguages returns the names of all registered languages
func RegisteredLanguages() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
