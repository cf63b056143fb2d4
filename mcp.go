package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/flexls/catalog"
	"github.com/roveo/flexls/config"
	"github.com/roveo/flexls/gitignore"
	"github.com/roveo/flexls/languages"
	"github.com/roveo/flexls/logging"
	"github.com/roveo/flexls/tools"
	"github.com/roveo/flexls/watcher"
	"github.com/roveo/flexls/workspace"
)

// newWorkspace loads the catalog and creates an empty workspace for the
// configured language. A missing catalog file yields an empty catalog; a
// malformed one is an error.
func newWorkspace(cfg config.Config, log *slog.Logger) (*workspace.Workspace, error) {
	lang := languages.GetLanguage(cfg.Language)
	if lang == nil {
		return nil, fmt.Errorf("unsupported language %q (registered: %v)", cfg.Language, languages.RegisteredLanguages())
	}

	entries, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("catalog loaded", "path", cfg.Catalog, "entries", len(entries))

	return workspace.New(workspace.Options{
		Language: lang,
		Catalog:  entries,
		Locale:   cfg.Locale,
		Logger:   log,
	}), nil
}

// indexTree records every file of the workspace language under root.
// Files that cannot be read are logged and skipped.
func indexTree(ws *workspace.Workspace, root string, matcher *gitignore.Matcher, log *slog.Logger) error {
	count := 0
	err := workspace.Walk(root, ws.Language(), matcher, func(path string) error {
		if _, err := ws.IndexFile(path); err != nil {
			log.Warn("failed to index file", "path", path, "error", err)
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index directory: %w", err)
	}
	st := ws.Index().Stats()
	log.Info("workspace indexed", "root", root, "files", count, "names", st.Names, "entries", st.Entries)
	return nil
}

// absPath makes path absolute relative to the working directory.
func absPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(cwd, path), nil
}

func runMap(cfg config.Config, path, filter string) error {
	log := logging.New(cfg.Logging("map"))

	root, err := absPath(path)
	if err != nil {
		return err
	}
	ws, err := newWorkspace(cfg, log)
	if err != nil {
		return err
	}
	matcher, err := gitignore.New(root, cfg.Exclude...)
	if err != nil {
		return err
	}
	if err := indexTree(ws, root, matcher, log); err != nil {
		return err
	}

	output := tools.FormatCodemap(tools.Collect(ws, root), tools.FormatOptions{
		SkipPatterns: cfg.Skip,
		Filter:       filter,
		LineLimit:    cfg.LineLimit,
	})
	if output == "" {
		output = "No declarations found in the specified directory."
	}

	fmt.Print(output)
	return nil
}

func runMCPServer(cfg config.Config) error {
	log := logging.New(cfg.Logging("mcp"))

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	ws, err := newWorkspace(cfg, log)
	if err != nil {
		return err
	}
	matcher, err := gitignore.New(root, cfg.Exclude...)
	if err != nil {
		return err
	}
	if err := indexTree(ws, root, matcher, log); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := workspace.NewDispatcher(ws)
	go d.Run(ctx)

	if cfg.Watch {
		w, err := watcher.New(watcher.Config{
			Root:    root,
			Matcher: matcher,
			Accept: func(path string) bool {
				lang := languages.GetLanguageForFile(path)
				return lang != nil && lang.Name() == cfg.Language
			},
			Debounce: cfg.Debounce,
		}, log.With("component", "watcher"))
		if err != nil {
			return err
		}
		defer w.Close()

		go func() {
			err := w.Run(ctx, func(path string) {
				err := d.Do(ctx, func(ws *workspace.Workspace) {
					if _, err := ws.IndexFile(path); err != nil {
						log.Warn("failed to re-index file", "path", path, "error", err)
					}
				})
				if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, workspace.ErrStopped) {
					log.Warn("dropped change event", "path", path, "error", err)
				}
			})
			if err != nil {
				log.Error("watcher stopped", "error", err)
			}
		}()
	}

	toolCfg := &tools.Config{
		Root:         root,
		SkipPatterns: cfg.Skip,
		LineLimit:    cfg.LineLimit,
		Dispatcher:   d,
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "flexls",
		Version: version,
	}, nil)

	// Register index tool
	mcp.AddTool(s, tools.CodemapTool(), tools.CodemapHandler(toolCfg))

	// Register complete tool
	mcp.AddTool(s, tools.CompleteTool(), tools.CompleteHandler(toolCfg))

	// Register find_definition tool
	mcp.AddTool(s, tools.FindDefinitionTool(), tools.FindDefinitionHandler(toolCfg))

	// Register find_references tool
	mcp.AddTool(s, tools.FindReferencesTool(), tools.FindReferencesHandler(toolCfg))

	return s.Run(ctx, &mcp.StdioTransport{})
}
