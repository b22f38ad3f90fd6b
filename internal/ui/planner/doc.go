// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package planner implements the interactive test plan TUI.
//
// The Model is a Bubble Tea state machine with three views:
//
//   - list: the saved plans, reconciled against the backend through
//     planstore.Store. All mutations go through the store so the backend
//     stays authoritative.
//   - editor: the single draft managed by editor.Editor, either creating
//     a new plan or editing an existing one.
//   - suggest: a document prompt plus the suggest.Session state machine.
//     Responses that arrive after a newer request began are dropped by the
//     session's token check.
//
// Backend I/O never runs on the event loop. Commands run the store or
// client call in a goroutine and report back with a message; a busy flag
// keeps at most one store mutation in flight, which preserves the store's
// single-owner contract. Views render from the plans snapshot carried by
// the last message, never from the store directly.
package planner
