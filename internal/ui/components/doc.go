// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the planrun TUI.
//
// Components here are small, self-contained pieces with no knowledge of the
// planner's state machine:
//
//   - Spinner: loading indicator with an elapsed timer, shown while a
//     suggestion request runs.
//   - StatusBar: the bottom bar with a status/error message and the key
//     shortcuts for the current view.
//
// Both render through the shared styles.Theme so the planner views stay
// visually consistent.
package components
