// Package watcher reports edits to source files under a workspace root.
// It wraps fsnotify with recursive directory registration and per-file
// debouncing.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/roveo/flexls/gitignore"
)

// Config configures a Watcher.
type Config struct {
	Root     string
	Matcher  *gitignore.Matcher     // paths it matches are not watched
	Accept   func(path string) bool // reports whether a file is of interest
	Debounce time.Duration
}

// Watcher monitors a directory tree.
type Watcher struct {
	cfg     Config
	fs      *fsnotify.Watcher
	log     *slog.Logger
	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher and registers every directory under cfg.Root.
func New(cfg Config, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		cfg:     cfg,
		fs:      fw,
		log:     log,
		pending: make(map[string]*time.Timer),
	}
	if err := w.addTree(cfg.Root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	count := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if path != w.cfg.Root && w.skipDir(path, info.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		count++
		return nil
	})
	w.log.Debug("added watches", "count", count, "dir", dir)
	return err
}

func (w *Watcher) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" {
		return true
	}
	rel, err := filepath.Rel(w.cfg.Root, path)
	return err == nil && w.cfg.Matcher.Match(rel, true)
}

func (w *Watcher) accept(path string) bool {
	if w.cfg.Accept != nil && !w.cfg.Accept(path) {
		return false
	}
	rel, err := filepath.Rel(w.cfg.Root, path)
	return err == nil && !w.cfg.Matcher.Match(rel, false)
}

// Run delivers the paths of created or written files to onChange until ctx
// is done. Bursts of events for one file are collapsed into a single call
// made after the file has been quiet for the debounce interval. onChange
// runs on its own goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.stopPending()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev, onChange)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event, onChange func(string)) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !w.skipDir(ev.Name, info.Name()) {
				if err := w.addTree(ev.Name); err != nil {
					w.log.Warn("failed to watch new directory", "dir", ev.Name, "error", err)
				}
			}
			return
		}
	}
	if !w.accept(ev.Name) {
		return
	}

	path := ev.Name
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.cfg.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		onChange(path)
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
