// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for test plans and suggestions.
package model

// Placeholder values used when suggestion generation fails. The failure
// result is always this fixed content, never derived from the underlying
// error, so the user is never shown a raw error string.
const (
	PlaceholderTitle       = "Error Generating Plan"
	PlaceholderDescription = "Failed to generate suggestions"
	PlaceholderStep        = "Check that the AI service is running and try again"
)

// =============================================================================
// SUGGESTION RESULT
// =============================================================================

// SuggestionResult is an AI-generated candidate plan derived from free-text
// document input. It has not been persisted; importing it into the editor
// produces an unsaved draft plan.
type SuggestionResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// PlaceholderResult returns the fixed fallback shown when generation fails.
func PlaceholderResult() SuggestionResult {
	return SuggestionResult{
		Title:       PlaceholderTitle,
		Description: PlaceholderDescription,
		Steps:       []string{PlaceholderStep},
	}
}

// ToPlan converts the suggestion into an unsaved plan draft. Each suggested
// step string becomes a Step in order.
func (r SuggestionResult) ToPlan() Plan {
	steps := make([]Step, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = Step{Description: s}
	}
	return Plan{
		Title:       r.Title,
		Description: r.Description,
		Steps:       steps,
	}
}
