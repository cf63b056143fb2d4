package workspace

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// FileURI returns the file:// URI of a path, made absolute first.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// PathFromURI returns the local path of a file:// URI.
func PathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid uri %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("not a file uri: %q", uri)
	}
	return filepath.FromSlash(u.Path), nil
}
