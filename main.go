// planrun TUI - A terminal interface for managing test plans.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/planrun-tui/internal/backend"
	"github.com/jeranaias/planrun-tui/internal/cli"
	"github.com/jeranaias/planrun-tui/internal/config"
	"github.com/jeranaias/planrun-tui/internal/ui/planner"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdServe:
		exitOnError(cli.HandleServe(args))
	case cli.CmdList:
		exitOnError(cli.HandleList(args))
	case cli.CmdShow:
		exitOnError(cli.HandleShow(args))
	case cli.CmdExport:
		exitOnError(cli.HandleExport(args))
	case cli.CmdDelete:
		exitOnError(cli.HandleDelete(args))
	case cli.CmdSuggest:
		exitOnError(cli.HandleSuggest(args))
	case cli.CmdDocs:
		exitOnError(cli.HandleDocs(args))
	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the interactive planner.
func runTUI(args cli.Args) {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "planrun: the TUI needs a terminal (try 'planrun list' for scripted use)")
		os.Exit(1)
	}

	cfg := config.Global()

	baseURL := cfg.Backend.URL
	if args.Backend != "" {
		baseURL = args.Backend
	}
	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:        baseURL,
		Timeout:        time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		SuggestTimeout: time.Duration(cfg.Backend.SuggestTimeoutSecs) * time.Second,
	})

	m := planner.New(client)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running planrun: %v\n", err)
		os.Exit(1)
	}
}
