// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for planrun.
//
// Command: status
// Aliases: s
//
// Examples:
//   planrun status                Show backend and Ollama status
//   planrun status --json         Status in JSON format
//
// Status Sections:
//   Backend:   Plan server reachability and plan count
//   Ollama:    Model server reachability and configured model
//   Library:   Document library location and document count

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/planrun-tui/internal/config"
	"github.com/jeranaias/planrun-tui/internal/docs"
	"github.com/jeranaias/planrun-tui/internal/ollama"
)

// statusCheckTimeout bounds each individual health probe so a dead
// service doesn't hang the whole command.
const statusCheckTimeout = 3 * time.Second

// statusReport is the JSON shape of the status command output.
type statusReport struct {
	Version       string `json:"version"`
	BackendURL    string `json:"backend_url"`
	BackendStatus string `json:"backend_status"`
	PlanCount     int    `json:"plan_count"`
	OllamaURL     string `json:"ollama_url"`
	OllamaStatus  string `json:"ollama_status"`
	Model         string `json:"model"`
	DocsDir       string `json:"docs_dir"`
	DocCount      int    `json:"doc_count"`
}

// HandleStatus shows the health of the backend and Ollama.
func HandleStatus(args Args) error {
	cfg := config.Global()
	report := statusReport{
		Version:    Version,
		BackendURL: cfg.Backend.URL,
		OllamaURL:  cfg.Local.OllamaURL,
		Model:      cfg.Local.OllamaModel,
	}
	if args.Backend != "" {
		report.BackendURL = args.Backend
	}
	if args.Model != "" {
		report.Model = args.Model
	}

	// Backend probe: health first, then the plan count.
	client := newBackendClient(args)
	ctx, cancel := context.WithTimeout(context.Background(), statusCheckTimeout)
	if err := client.CheckHealth(ctx); err != nil {
		report.BackendStatus = "unreachable"
	} else {
		report.BackendStatus = "ok"
		if plans, err := client.ListPlans(ctx); err == nil {
			report.PlanCount = len(plans)
		}
	}
	cancel()

	// Ollama probe.
	ollamaClient := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Local.OllamaURL,
		DefaultModel: report.Model,
	})
	ctx, cancel = context.WithTimeout(context.Background(), statusCheckTimeout)
	if err := ollamaClient.CheckRunning(ctx); err != nil {
		report.OllamaStatus = "unreachable"
	} else {
		report.OllamaStatus = "ok"
	}
	cancel()

	// Document library.
	if dir, err := cfg.DocsDir(); err == nil {
		report.DocsDir = dir
		if library, err := docs.NewLibrary(dir); err == nil {
			report.DocCount = len(library.List())
			library.Close()
		}
	}

	if args.JSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printStatusReport(report)
	return nil
}

func printStatusReport(r statusReport) {
	fmt.Println(TitleStyle.Render("planrun status"))

	fmt.Println(SectionStyle.Render("Backend"))
	fmt.Printf("%s %s %s\n", RenderLabel("Server"), RenderStatus(r.BackendStatus), DimStyle.Render(r.BackendURL))
	if r.BackendStatus == "ok" {
		fmt.Printf("%s %d\n", RenderLabel("Plans"), r.PlanCount)
	} else {
		fmt.Printf("%s %s\n", RenderLabel("Hint"), DimStyle.Render("start it with 'planrun serve'"))
	}

	fmt.Println(SectionStyle.Render("Ollama"))
	fmt.Printf("%s %s %s\n", RenderLabel("Server"), RenderStatus(r.OllamaStatus), DimStyle.Render(r.OllamaURL))
	fmt.Printf("%s %s\n", RenderLabel("Model"), ValueStyle.Render(r.Model))

	fmt.Println(SectionStyle.Render("Documents"))
	fmt.Printf("%s %s\n", RenderLabel("Directory"), ValueStyle.Render(r.DocsDir))
	fmt.Printf("%s %d\n", RenderLabel("Documents"), r.DocCount)
}
