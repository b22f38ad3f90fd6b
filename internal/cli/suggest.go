// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Suggest command: generate a plan from a requirements document.
//
// Command: suggest
// Aliases: generate
//
// Examples:
//   planrun suggest --file requirements.md     Generate from a local file
//   planrun suggest --doc checkout.md          Generate from the document library
//   planrun suggest "test the login form"      Generate from inline text
//   planrun suggest --file req.md --save       Generate and save to the backend
//   planrun suggest --file req.md --local      Call Ollama directly
//
// The default path sends the document to the plan server's /suggest
// endpoint. --local skips the server and talks to Ollama directly, which
// is useful when only the model is running.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/planrun-tui/internal/config"
	"github.com/jeranaias/planrun-tui/internal/docs"
	"github.com/jeranaias/planrun-tui/internal/model"
	"github.com/jeranaias/planrun-tui/internal/suggest"
)

// HandleSuggest generates a plan suggestion from a document.
func HandleSuggest(args Args) error {
	parser := NewArgParser(args.Raw)

	document, err := resolveDocument(parser)
	if err != nil {
		return err
	}

	cfg := config.Global()
	timeout := time.Duration(cfg.Backend.SuggestTimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if !args.Quiet {
		fmt.Println(DimStyle.Render("Generating suggestions (this can take a while on a local model)..."))
	}

	var result model.SuggestionResult
	if parser.BoolFlag("local") {
		result, err = suggest.NewGenerator(newOllamaClient(cfg, args)).Generate(ctx, document)
	} else {
		result, err = newBackendClient(args).Suggest(ctx, document)
	}
	if err != nil {
		return describeBackendError(err)
	}

	if result.Title == model.PlaceholderTitle {
		fmt.Printf("%s generation failed; showing the fallback plan\n", RenderStatus("warn"))
	}

	if args.JSON || parser.BoolFlag("json") {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		printSuggestion(result)
	}

	if parser.BoolFlag("save") {
		return saveSuggestion(args, result)
	}
	return nil
}

// resolveDocument finds the requirements document text from --file, --doc,
// or the remaining positional arguments, in that order.
func resolveDocument(parser *ArgParser) (string, error) {
	if path := parser.Flag("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return string(data), nil
	}

	if name := parser.Flag("doc"); name != "" {
		dir, err := config.Global().DocsDir()
		if err != nil {
			return "", fmt.Errorf("resolve document directory: %w", err)
		}
		library, err := docs.NewLibrary(dir)
		if err != nil {
			return "", fmt.Errorf("open document library: %w", err)
		}
		defer library.Close()
		return library.Read(name)
	}

	if text := JoinPositionalArgs(parser, 0); text != "" {
		return text, nil
	}

	return "", fmt.Errorf("no document given (use --file, --doc, or inline text)")
}

// printSuggestion renders a suggestion result for the terminal.
func printSuggestion(result model.SuggestionResult) {
	fmt.Printf("\n%s\n", TitleStyle.Render(result.Title))
	if result.Description != "" {
		fmt.Println(WrapText(result.Description, GetTerminalWidth()))
		fmt.Println()
	}
	for i, step := range result.Steps {
		fmt.Printf("%s %s\n", DimStyle.Render(fmt.Sprintf("%2d.", i+1)), ValueStyle.Render(step))
	}
}

// saveSuggestion persists the generated plan through the backend.
func saveSuggestion(args Args, result model.SuggestionResult) error {
	ctx, cancel := commandContext()
	defer cancel()

	saved, err := newBackendClient(args).CreatePlan(ctx, result.ToPlan())
	if err != nil {
		return describeBackendError(err)
	}

	fmt.Printf("\n%s saved as plan %d\n", RenderStatus("ok"), saved.ID)
	return nil
}
