// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for planrun.
//
// Command: config
//
// Examples:
//   planrun config                    Show current configuration
//   planrun config show               Same as above
//   planrun config path               Print the config file path
//   planrun config set ui.theme light Set and persist a value
//
// Settable keys:
//   server.port                backend.url
//   server.database_path       backend.timeout_secs
//   local.ollama_url           backend.suggest_timeout_secs
//   local.ollama_model         docs.dir
//   ui.theme                   docs.watch
//   ui.compact_mode            ui.show_step_numbers

package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/planrun-tui/internal/config"
)

// HandleConfig handles the config command and its subcommands.
func HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "show":
		return configShow(args)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "set":
		return configSet(args, parser)
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, path, or set)", parser.Subcommand())
	}
}

func configShow(args Args) error {
	cfg := config.Global()

	if args.JSON {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	path, _ := config.ConfigPath()

	fmt.Println(TitleStyle.Render("planrun configuration"))
	fmt.Printf("%s %s\n", RenderLabel("File"), DimStyle.Render(path))

	fmt.Println(SectionStyle.Render("Server"))
	fmt.Printf("%s %d\n", RenderLabel("server.port", 30), cfg.Server.Port)
	fmt.Printf("%s %s\n", RenderLabel("server.database_path", 30), valueOrDefault(cfg.Server.DatabasePath))

	fmt.Println(SectionStyle.Render("Backend"))
	fmt.Printf("%s %s\n", RenderLabel("backend.url", 30), cfg.Backend.URL)
	fmt.Printf("%s %d\n", RenderLabel("backend.timeout_secs", 30), cfg.Backend.TimeoutSecs)
	fmt.Printf("%s %d\n", RenderLabel("backend.suggest_timeout_secs", 30), cfg.Backend.SuggestTimeoutSecs)

	fmt.Println(SectionStyle.Render("Local model"))
	fmt.Printf("%s %s\n", RenderLabel("local.ollama_url", 30), cfg.Local.OllamaURL)
	fmt.Printf("%s %s\n", RenderLabel("local.ollama_model", 30), cfg.Local.OllamaModel)

	fmt.Println(SectionStyle.Render("Documents"))
	fmt.Printf("%s %s\n", RenderLabel("docs.dir", 30), valueOrDefault(cfg.Docs.Dir))
	fmt.Printf("%s %t\n", RenderLabel("docs.watch", 30), cfg.Docs.Watch)

	fmt.Println(SectionStyle.Render("UI"))
	fmt.Printf("%s %s\n", RenderLabel("ui.theme", 30), cfg.UI.Theme)
	fmt.Printf("%s %t\n", RenderLabel("ui.compact_mode", 30), cfg.UI.CompactMode)
	fmt.Printf("%s %t\n", RenderLabel("ui.show_step_numbers", 30), cfg.UI.ShowStepNumbers)

	return nil
}

func valueOrDefault(s string) string {
	if s == "" {
		return DimStyle.Render("(default)")
	}
	return s
}

func configSet(args Args, parser *ArgParser) error {
	key := strings.ToLower(parser.Positional(1))
	value := parser.Positional(2)
	if key == "" || value == "" {
		return fmt.Errorf("usage: planrun config set KEY VALUE")
	}

	cfg := config.Global()
	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if !args.Quiet {
		fmt.Printf("%s set %s = %s\n", RenderStatus("ok"), key, value)
	}
	return nil
}

// applyConfigValue writes one dotted key into the config struct.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "server.port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("port must be a number: %q", value)
		}
		cfg.Server.Port = port
	case "server.database_path":
		cfg.Server.DatabasePath = value
	case "backend.url":
		cfg.Backend.URL = value
	case "backend.timeout_secs":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be a number: %q", value)
		}
		cfg.Backend.TimeoutSecs = secs
	case "backend.suggest_timeout_secs":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be a number: %q", value)
		}
		cfg.Backend.SuggestTimeoutSecs = secs
	case "local.ollama_url":
		cfg.Local.OllamaURL = value
	case "local.ollama_model":
		cfg.Local.OllamaModel = value
	case "docs.dir":
		cfg.Docs.Dir = value
	case "docs.watch":
		b, err := parseBoolValue(value)
		if err != nil {
			return err
		}
		cfg.Docs.Watch = b
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.compact_mode":
		b, err := parseBoolValue(value)
		if err != nil {
			return err
		}
		cfg.UI.CompactMode = b
	case "ui.show_step_numbers":
		b, err := parseBoolValue(value)
		if err != nil {
			return err
		}
		cfg.UI.ShowStepNumbers = b
	default:
		return fmt.Errorf("unknown config key %q (see 'planrun help')", key)
	}
	return nil
}

// parseBoolValue parses a boolean from common string representations.
// Accepts: true/false, yes/no, y/n, 1/0, on/off (case-insensitive)
func parseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
