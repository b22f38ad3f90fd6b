// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - Serve command: run the planrun REST server.
//
// Command: serve
// Aliases: server
//
// Examples:
//   planrun serve                Start on the configured port
//   planrun serve --port 9000    Start on port 9000
//   planrun serve --db ./dev.db  Use an alternate database

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/planrun-tui/internal/config"
	"github.com/jeranaias/planrun-tui/internal/docs"
	"github.com/jeranaias/planrun-tui/internal/ollama"
	"github.com/jeranaias/planrun-tui/internal/server"
	"github.com/jeranaias/planrun-tui/internal/storage"
	"github.com/jeranaias/planrun-tui/internal/suggest"
)

// shutdownGrace is how long in-flight requests get to finish on Ctrl-C.
const shutdownGrace = 10 * time.Second

// HandleServe runs the REST server until interrupted.
func HandleServe(args Args) error {
	parser := NewArgParser(args.Raw)
	cfg := config.Global()

	port := parser.FlagIntOrDefault("port", cfg.Server.Port)

	dbPath := parser.Flag("db")
	if dbPath == "" {
		var err error
		dbPath, err = cfg.DatabasePath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	ollamaClient := newOllamaClient(cfg, args)

	srv := server.NewServer(port, store).
		WithGenerator(suggest.NewGenerator(ollamaClient)).
		WithOllamaClient(ollamaClient)

	// The document library is optional; the server runs without it when the
	// docs directory cannot be opened.
	docsDir, err := cfg.DocsDir()
	if err == nil {
		if library, err := docs.NewLibrary(docsDir); err == nil {
			if cfg.Docs.Watch {
				if err := library.StartWatching(); err != nil && !args.Quiet {
					fmt.Fprintf(os.Stderr, "Warning: document watching disabled: %v\n", err)
				}
			}
			defer library.Close()
			srv.WithDocsLibrary(library)
		} else if !args.Quiet {
			fmt.Fprintf(os.Stderr, "Warning: document library unavailable: %v\n", err)
		}
	}

	if !args.Quiet {
		fmt.Printf("%s\n", TitleStyle.Render("planrun server"))
		fmt.Printf("%s %s\n", RenderLabel("Listening"), ValueStyle.Render(fmt.Sprintf("http://127.0.0.1:%d", port)))
		fmt.Printf("%s %s\n", RenderLabel("Database"), ValueStyle.Render(dbPath))
		fmt.Printf("%s %s (%s)\n", RenderLabel("Ollama"), ValueStyle.Render(cfg.Local.OllamaURL), ollamaClient.Model())
		fmt.Printf("%s\n", DimStyle.Render("Press Ctrl-C to stop."))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		if !args.Quiet {
			fmt.Printf("\n%s signal %v, shutting down\n", DimStyle.Render("received"), sig)
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// newOllamaClient builds an Ollama client from config plus CLI overrides.
func newOllamaClient(cfg *config.Config, args Args) *ollama.Client {
	model := cfg.Local.OllamaModel
	if args.Model != "" {
		model = args.Model
	}
	return ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Local.OllamaURL,
		DefaultModel: model,
	})
}
