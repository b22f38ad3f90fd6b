// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/jeranaias/planrun-tui/internal/config"
)

// =============================================================================
// COMMAND PARSING TESTS
// =============================================================================

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"tui"}, CmdTUI},
		{[]string{"serve"}, CmdServe},
		{[]string{"server"}, CmdServe},
		{[]string{"list"}, CmdList},
		{[]string{"ls"}, CmdList},
		{[]string{"show", "7"}, CmdShow},
		{[]string{"export", "7"}, CmdExport},
		{[]string{"delete", "7"}, CmdDelete},
		{[]string{"rm", "7"}, CmdDelete},
		{[]string{"suggest", "--file", "req.md"}, CmdSuggest},
		{[]string{"docs"}, CmdDocs},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
	}

	for _, tc := range tests {
		cmd, _ := parse(tc.argv)
		if cmd != tc.want {
			t.Errorf("parse(%v) = %v, want %v", tc.argv, cmd, tc.want)
		}
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--json", "--backend", "http://127.0.0.1:9999", "list"})
	if cmd != CmdList {
		t.Fatalf("cmd = %v, want CmdList", cmd)
	}
	if !args.JSON {
		t.Error("JSON flag not parsed")
	}
	if args.Backend != "http://127.0.0.1:9999" {
		t.Errorf("Backend = %q", args.Backend)
	}
}

func TestParse_RemainingArgsPassedThrough(t *testing.T) {
	_, args := parse([]string{"export", "7", "--format", "json"})
	want := []string{"7", "--format", "json"}
	if len(args.Raw) != len(want) {
		t.Fatalf("Raw = %v, want %v", args.Raw, want)
	}
	for i := range want {
		if args.Raw[i] != want[i] {
			t.Errorf("Raw[%d] = %q, want %q", i, args.Raw[i], want[i])
		}
	}
}

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser_FlagFormats(t *testing.T) {
	parser := NewArgParser([]string{"7", "--format", "json", "--output=./out", "--open", "--json=false"})

	if parser.Positional(0) != "7" {
		t.Errorf("Positional(0) = %q", parser.Positional(0))
	}
	if got := parser.Flag("format"); got != "json" {
		t.Errorf("Flag(format) = %q", got)
	}
	if got := parser.Flag("output"); got != "./out" {
		t.Errorf("Flag(output) = %q", got)
	}
	if !parser.BoolFlag("open") {
		t.Error("BoolFlag(open) = false")
	}
	if parser.BoolFlag("json") {
		t.Error("explicit --json=false should parse as false")
	}
}

func TestArgParser_Defaults(t *testing.T) {
	parser := NewArgParser([]string{"show"})

	if got := parser.FlagOrDefault("format", "md"); got != "md" {
		t.Errorf("FlagOrDefault = %q", got)
	}
	if got := parser.FlagIntOrDefault("port", 8787); got != 8787 {
		t.Errorf("FlagIntOrDefault = %d", got)
	}
	if parser.Subcommand() != "show" {
		t.Errorf("Subcommand() = %q", parser.Subcommand())
	}
}

func TestArgParser_JoinPositional(t *testing.T) {
	parser := NewArgParser([]string{"test", "the", "login", "form"})
	if got := JoinPositionalArgs(parser, 0); got != "test the login form" {
		t.Errorf("JoinPositionalArgs = %q", got)
	}
}

func TestParsePlanID(t *testing.T) {
	if id, err := ParsePlanID("42"); err != nil || id != 42 {
		t.Errorf("ParsePlanID(42) = %d, %v", id, err)
	}

	for _, bad := range []string{"", "zero", "-1", "0"} {
		if _, err := ParsePlanID(bad); err == nil {
			t.Errorf("ParsePlanID(%q) = nil error", bad)
		}
	}
}

// =============================================================================
// TERMINAL HELPERS
// =============================================================================

func TestWrapText(t *testing.T) {
	wrapped := WrapText("one two three four five six seven eight", 20)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 20 {
			t.Errorf("line too long: %q", line)
		}
	}
}

func TestWrapText_PreservesNewlines(t *testing.T) {
	wrapped := WrapText("first\nsecond", 40)
	if wrapped != "first\nsecond" {
		t.Errorf("WrapText = %q", wrapped)
	}
}

// =============================================================================
// CONFIG SET TESTS
// =============================================================================

func TestApplyConfigValue(t *testing.T) {
	cfg := config.Default()

	if err := applyConfigValue(cfg, "server.port", "9000"); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}

	if err := applyConfigValue(cfg, "ui.theme", "light"); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}

	if err := applyConfigValue(cfg, "docs.watch", "on"); err != nil {
		t.Fatal(err)
	}
	if !cfg.Docs.Watch {
		t.Error("Watch = false")
	}

	if err := applyConfigValue(cfg, "nope.nothing", "x"); err == nil {
		t.Error("unknown key should error")
	}
	if err := applyConfigValue(cfg, "server.port", "not-a-number"); err == nil {
		t.Error("bad port should error")
	}
}

func TestParseBoolValue(t *testing.T) {
	for _, s := range []string{"true", "YES", "y", "1", "on"} {
		if b, err := parseBoolValue(s); err != nil || !b {
			t.Errorf("parseBoolValue(%q) = %v, %v", s, b, err)
		}
	}
	for _, s := range []string{"false", "no", "N", "0", "off"} {
		if b, err := parseBoolValue(s); err != nil || b {
			t.Errorf("parseBoolValue(%q) = %v, %v", s, b, err)
		}
	}
	if _, err := parseBoolValue("maybe"); err == nil {
		t.Error("parseBoolValue(maybe) = nil error")
	}
}
