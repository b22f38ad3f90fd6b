// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the planrun TUI.
//
// The package has two layers:
//
//   - colors.go: the adaptive color palette. Every color is a
//     lipgloss.AdaptiveColor so light and dark terminals both get readable
//     output without a configuration step.
//   - theme.go: the Theme struct, which bundles all pre-built styles for
//     the planner views (list, editor, suggestions, status bar).
//
// Views hold a *Theme and use its styles rather than constructing their
// own, which keeps the look consistent and makes palette changes a
// one-file edit.
package styles
