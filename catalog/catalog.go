// Package catalog loads the static list of standard library functions
// offered by completion.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrMalformed is returned when a catalog file exists but cannot be decoded.
var ErrMalformed = errors.New("malformed catalog")

// Entry is one built-in callable.
type Entry struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
	Source     string   `json:"source"`
}

// Detail renders the parameter list and source label, e.g. "(a, b) • math".
func (e Entry) Detail() string {
	return fmt.Sprintf("(%s) • %s", strings.Join(e.Parameters, ", "), e.Source)
}

// Signature renders the markdown documentation shown for the entry.
func (e Entry) Signature() string {
	return fmt.Sprintf("**%s**(%s)", e.Name, strings.Join(e.Parameters, ", "))
}

// Load reads the catalog at path. A missing file, or an empty path, is an
// empty catalog rather than an error. A file that exists but does not hold a
// JSON array of entries is an error wrapping ErrMalformed.
func Load(path string) ([]Entry, error) {
	if path == "" {
		return []Entry{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog JSON.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if entries == nil {
		// "null" decodes without error
		return nil, fmt.Errorf("%w: expected an array of entries", ErrMalformed)
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrMalformed, i)
		}
		if e.Parameters == nil {
			entries[i].Parameters = []string{}
		}
	}
	return entries, nil
}
