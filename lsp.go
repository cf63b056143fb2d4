package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roveo/flexls/config"
	"github.com/roveo/flexls/logging"
	"github.com/roveo/flexls/lsp"
	"github.com/roveo/flexls/workspace"
)

func runLSPServer(cfg config.Config) error {
	log := logging.New(cfg.Logging("lsp"))

	ws, err := newWorkspace(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := workspace.NewDispatcher(ws)
	go d.Run(ctx)

	log.Info("serving", "language", cfg.Language, "version", version)
	return lsp.New(ctx, d, lsp.WithLogger(log), lsp.WithVersion(version)).RunStdio()
}
