// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for planrun.
//
// Configuration lives at ~/.planrun/config.toml, decoded with BurntSushi/toml.
// Defaults are filled for any missing field, PLANRUN_* environment variables
// override file values, and the result is validated before use.
//
// # Sections
//
//   - [server]  - plan API server port and SQLite database path
//   - [backend] - how the TUI and CLI reach the plan API
//   - [local]   - Ollama URL and suggestion model
//   - [docs]    - document library directory and watch toggle
//   - [ui]      - theme and layout options
//
// # Usage
//
//	cfg := config.Global()
//	fmt.Println(cfg.Backend.URL)
package config
