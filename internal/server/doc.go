// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the planrun HTTP API server.
//
// This package implements the REST API that the TUI, the CLI, and any
// browser frontend talk to. Plans are persisted through internal/storage;
// suggestion generation is delegated to internal/suggest.
//
// # Endpoints
//
//   - GET    /plans      - List plans (skip/limit pagination)
//   - POST   /plans      - Create a plan
//   - GET    /plans/{id} - Fetch one plan
//   - PUT    /plans/{id} - Replace a plan
//   - DELETE /plans/{id} - Delete a plan
//   - POST   /suggest    - Generate a draft plan from document text
//   - GET    /health     - Health check
//   - GET    /stats      - Usage statistics
//
// # Middleware
//
//   - Panic recovery with stack trace logging
//   - Per-request UUID tracing (X-Request-Id)
//   - Request logging with timing information
//   - CORS headers for local browser frontends
//   - Per-IP token bucket rate limiting
//
// # Usage
//
//	store, _ := storage.Open(dbPath)
//	srv := server.NewServer(8787, store).
//		WithGenerator(suggest.NewGenerator(ollamaClient)).
//		WithOllamaClient(ollamaClient)
//	if err := srv.Start(); err != nil {
//		log.Fatal(err)
//	}
package server
