// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the application.
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - StringWidth: display width of a string (CJK counts as 2 columns)
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
