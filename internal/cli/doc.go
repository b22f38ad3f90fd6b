// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the planrun command line interface.
//
// Parse turns os.Args into a Command plus parsed Args; main dispatches to
// the matching Handle* function. Commands either talk to a running plan
// server through the backend client (list, show, export, suggest, status)
// or run the server themselves (serve).
//
// Output is TTY-aware: colors are dropped for piped output and NO_COLOR
// is respected, and most commands take --json for scripting.
package cli
