// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for planrun.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdServe
	CmdList
	CmdShow
	CmdExport
	CmdDelete
	CmdSuggest
	CmdDocs
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool   // Output in JSON format
	Backend string // Override backend URL (--backend)
	Model   string // Override Ollama model (--model)

	// Raw args (remaining after global flag parsing)
	Raw []string
}

const usageText = `planrun - test plan manager with local AI suggestions

Planrun keeps test plans in a local sqlite database behind a small REST
server and drafts suggestions with a local Ollama model. The default
command opens the interactive TUI.

Usage:
  planrun                     Start TUI (default)
  planrun serve               Run the plan server
  planrun list, ls            List saved plans
  planrun show <id>           Show one plan
  planrun export <id>         Export a plan to Markdown or JSON
  planrun delete <id>         Delete a plan
  planrun suggest             Generate a plan from a requirements document
  planrun docs [show <name>]  Manage the requirements document library
  planrun status, s           Show backend and Ollama status
  planrun config [show|set]   Configuration
  planrun version             Show version
  planrun help                Show this help

Serve:
  planrun serve               Start the REST server on the configured port
    --port N                  Listen port (default: 8787)
    --db PATH                 Database path (default: ~/.planrun/plans.db)

List / Show:
  planrun list                List plans as a table
    --json                    Output in JSON format
  planrun show 7              Render plan 7 as Markdown
    --raw                     Print raw Markdown without styling

Export:
  planrun export 7            Export plan 7 to Markdown
    --format md|json          Export format (default: md)
    --output DIR              Output directory (default: current directory)
    --open                    Open the exported file

Suggest:
  planrun suggest --file req.md      Generate from a local file
  planrun suggest --doc checkout.md  Generate from the document library
  planrun suggest "short text"       Generate from inline text
    --local                   Call Ollama directly instead of the server
    --save                    Save the generated plan to the backend

Docs:
  planrun docs                List documents in the library
  planrun docs show <name>    Print one document
  planrun docs watch          Report library changes until interrupted

Config:
  planrun config show         Show current configuration
  planrun config path         Print the config file path
  planrun config set KEY VAL  Set a value (e.g. server.port, ui.theme)

Global Flags:
  --backend URL       Override the plan server URL
  --model NAME        Override the Ollama model
  --json              Output in JSON format where supported
  -q, --quiet         Suppress non-essential output
  -v, --verbose       Verbose output
  -h, --help          Show help
  --version           Show version

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("planrun version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

// parse is the testable core of Parse.
func parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// No arguments: open the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "serve", "server":
		return CmdServe, parsedArgs

	case "list", "ls":
		return CmdList, parsedArgs

	case "show", "view":
		return CmdShow, parsedArgs

	case "export":
		return CmdExport, parsedArgs

	case "delete", "rm":
		return CmdDelete, parsedArgs

	case "suggest", "generate":
		return CmdSuggest, parsedArgs

	case "docs", "doc", "documents":
		return CmdDocs, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		fmt.Fprintf(os.Stderr, "planrun: unknown command %q (see 'planrun help')\n", cmd)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--backend":
			if i+1 < len(args) {
				i++
				parsedArgs.Backend = args[i]
			}
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, parsedArgs
}

// =============================================================================
// SIMPLE HANDLERS
// =============================================================================

// HandleVersion handles the version command.
func HandleVersion(args Args) {
	if args.JSON {
		out, _ := json.MarshalIndent(map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go_version": runtime.Version(),
		}, "", "  ")
		fmt.Println(string(out))
		return
	}
	PrintVersion()
}

// HandleHelp handles the help command.
func HandleHelp() {
	PrintUsage()
}
