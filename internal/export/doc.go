// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides test plan export functionality for planrun.
//
// Two formats are supported:
//
//   - Markdown: YAML frontmatter, the plan description, and a numbered
//     step list. Suitable for pasting into wikis and PRs.
//   - JSON: the plan wrapped in an export envelope with a timestamp.
//
// Exporters implement the Exporter interface so the CLI can pick a format
// by name. ExportToFile handles filename generation and writing.
package export
