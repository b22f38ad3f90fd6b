// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with a local
// Ollama server.
//
// planrun uses Ollama for exactly one thing: non-streaming text completion
// over POST /api/generate, which feeds the suggestion generator. The client
// also exposes a health check (is Ollama reachable at all) and a model
// listing used by the status command.
//
// Errors are wrapped in ClientError with a coarse ErrorType; callers that
// only care about success/failure can treat any returned error as opaque.
package ollama
