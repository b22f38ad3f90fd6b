// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest turns free-text documents into draft test plans using a
// local language model, and manages the lifecycle of one in-flight
// suggestion request.
//
// The package has two halves:
//
//   - Generator builds the prompt for the model, calls the completion
//     collaborator, and parses the TITLE/DESCRIPTION/STEPS response format
//     into a model.SuggestionResult.
//
//   - Session is the request state machine
//     (Idle -> Pending -> Succeeded|Failed). Each request carries a unique
//     token; a response settles the session only if its token matches the
//     most recent request, so a slow earlier response can never overwrite a
//     newer one. A failed request settles to a fixed placeholder result
//     rather than surfacing the raw error.
package suggest
