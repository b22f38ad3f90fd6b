// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// docs_cmd.go - Document library commands for planrun.
//
// Command: docs
// Aliases: doc, documents
//
// Examples:
//   planrun docs                 List documents in the library
//   planrun docs show login.md   Print one document
//   planrun docs path            Print the library directory
//   planrun docs watch           Report library changes until interrupted

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/planrun-tui/internal/config"
	"github.com/jeranaias/planrun-tui/internal/docs"
)

// HandleDocs lists or prints requirements documents.
func HandleDocs(args Args) error {
	parser := NewArgParser(args.Raw)

	dir, err := config.Global().DocsDir()
	if err != nil {
		return fmt.Errorf("resolve document directory: %w", err)
	}

	switch parser.Subcommand() {
	case "path":
		fmt.Println(dir)
		return nil

	case "show", "cat":
		name := parser.Positional(1)
		if name == "" {
			return fmt.Errorf("usage: planrun docs show <name>")
		}
		library, err := docs.NewLibrary(dir)
		if err != nil {
			return err
		}
		defer library.Close()

		content, err := library.Read(name)
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil

	case "", "list", "ls":
		library, err := docs.NewLibrary(dir)
		if err != nil {
			return err
		}
		defer library.Close()

		list := library.List()
		if args.JSON || parser.BoolFlag("json") {
			out, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if len(list) == 0 {
			fmt.Println(DimStyle.Render(fmt.Sprintf("No documents in %s (drop .md or .txt files there).", dir)))
			return nil
		}

		for _, d := range list {
			fmt.Printf("%s  %s  %s\n",
				ValueStyle.Width(40).Render(d.Name),
				DimStyle.Width(8).Render(fmt.Sprintf("%d B", d.Size)),
				DimStyle.Render(d.ModTime.Format("2006-01-02 15:04")))
		}
		fmt.Printf("\n%s\n", DimStyle.Render(fmt.Sprintf("%d document(s) in %s", len(list), dir)))
		return nil

	case "watch":
		return watchDocs(dir, args)

	default:
		return fmt.Errorf("unknown docs subcommand %q (want list, show, path, or watch)", parser.Subcommand())
	}
}

// watchDocs reports library changes until interrupted.
func watchDocs(dir string, args Args) error {
	library, err := docs.NewLibrary(dir)
	if err != nil {
		return err
	}
	defer library.Close()

	if err := library.StartWatching(); err != nil {
		return fmt.Errorf("start watching: %w", err)
	}

	if !args.Quiet {
		fmt.Printf("%s %s\n", RenderLabel("Watching"), ValueStyle.Render(dir))
		fmt.Printf("%s\n", DimStyle.Render("Press Ctrl-C to stop."))
	}

	prev := docIndex(library.List())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			return nil
		case <-ticker.C:
			cur := docIndex(library.List())
			reportDocChanges(prev, cur)
			prev = cur
		}
	}
}

// docIndex keys a listing by name for change comparison.
func docIndex(list []docs.Document) map[string]docs.Document {
	idx := make(map[string]docs.Document, len(list))
	for _, d := range list {
		idx[d.Name] = d
	}
	return idx
}

// reportDocChanges prints one line per added, changed, or removed document.
func reportDocChanges(prev, cur map[string]docs.Document) {
	for name, d := range cur {
		old, ok := prev[name]
		switch {
		case !ok:
			fmt.Printf("%s %s\n", SuccessStyle.Render("added  "), name)
		case old.Size != d.Size || !old.ModTime.Equal(d.ModTime):
			fmt.Printf("%s %s\n", WarningStyle.Render("changed"), name)
		}
	}
	for name := range prev {
		if _, ok := cur[name]; !ok {
			fmt.Printf("%s %s\n", ErrorStyle.Render("removed"), name)
		}
	}
}
