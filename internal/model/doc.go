// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for test plans and
// AI-generated plan suggestions.
//
// A Plan is a titled, described collection of ordered Steps. Steps have no
// identity of their own; they are addressed by position within their plan.
// A SuggestionResult is an AI-generated candidate plan that has not been
// persisted yet.
//
// The types here are shared by the client-side state packages (planstore,
// editor, suggest), the HTTP backend client, and the server. They carry no
// behavior beyond copying and conversion so that every component can own
// its data without aliasing another component's records.
package model
