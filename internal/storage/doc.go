// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides SQLite-backed persistence for test plans.
//
// Plans live in two tables: test_plans for title/description and
// test_steps for the ordered step list. Steps are stored with an explicit
// position column so listing a plan always reproduces insertion order;
// updating a plan replaces its whole step set, matching the position-based
// identity of steps (there is no per-step patching at this layer).
//
// The store uses the pure-Go modernc.org/sqlite driver, so the server
// binary needs no cgo.
package storage
