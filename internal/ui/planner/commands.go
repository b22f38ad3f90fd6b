// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Async commands for backend I/O.
//
// Each command owns the store (or editor) for the duration of its call;
// the model's busy flag guarantees the event loop does not touch them
// until the result message arrives.

package planner

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/planrun-tui/internal/model"
)

// crudTimeout bounds plan CRUD calls. Suggestion requests get their own,
// much longer timeout from the backend client.
const crudTimeout = 10 * time.Second

// suggestTimeout bounds one suggestion round trip, local model included.
const suggestTimeout = 150 * time.Second

// loadPlansCmd reconciles the store against the backend.
func (m *Model) loadPlansCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), crudTimeout)
		defer cancel()

		err := store.Load(ctx)
		return plansLoadedMsg{plans: store.Plans(), err: err}
	}
}

// submitDraftCmd persists the editor draft (create or update).
func (m *Model) submitDraftCmd() tea.Cmd {
	ed := m.editor
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), crudTimeout)
		defer cancel()

		saved, err := ed.Submit(ctx)
		return planSavedMsg{saved: saved, plans: store.Plans(), err: err}
	}
}

// deletePlanCmd removes a plan through the store.
func (m *Model) deletePlanCmd(id int64) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), crudTimeout)
		defer cancel()

		err := store.Delete(ctx, id)
		return planDeletedMsg{id: id, plans: store.Plans(), err: err}
	}
}

// requestSuggestionCmd runs one suggestion request. The token travels with
// the response so the session can discard stale answers.
func (m *Model) requestSuggestionCmd(token, document string) tea.Cmd {
	generator := m.generator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()

		result, err := generator.Generate(ctx, document)
		return suggestionMsg{token: token, result: result, err: err}
	}
}

// Generator is the suggestion collaborator. The backend client satisfies
// it by calling the server's /suggest endpoint; a local suggest.Generator
// satisfies it by talking to Ollama directly.
type Generator interface {
	Generate(ctx context.Context, document string) (model.SuggestionResult, error)
}

// backendGenerator adapts the plan API client's Suggest method.
type backendGenerator struct {
	client SuggestClient
}

// SuggestClient is the part of the backend client the planner needs for
// suggestions.
type SuggestClient interface {
	Suggest(ctx context.Context, document string) (model.SuggestionResult, error)
}

func (g backendGenerator) Generate(ctx context.Context, document string) (model.SuggestionResult, error) {
	return g.client.Suggest(ctx, document)
}
