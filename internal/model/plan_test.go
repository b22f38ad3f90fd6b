// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for test plans and suggestions.
package model

import "testing"

// =============================================================================
// PLAN TESTS
// =============================================================================

func TestPlan_Clone_IsIndependent(t *testing.T) {
	original := Plan{
		ID:          7,
		Title:       "Login flow",
		Description: "Covers the login page",
		Steps: []Step{
			{Description: "Open the login page"},
			{Description: "Enter credentials"},
		},
	}

	clone := original.Clone()
	clone.Title = "Changed"
	clone.Steps[0].Description = "Mutated"
	clone.Steps = append(clone.Steps, Step{Description: "Extra"})

	if original.Title != "Login flow" {
		t.Errorf("Clone mutation leaked into original title: %q", original.Title)
	}
	if original.Steps[0].Description != "Open the login page" {
		t.Errorf("Clone mutation leaked into original step: %q", original.Steps[0].Description)
	}
	if len(original.Steps) != 2 {
		t.Errorf("Clone append changed original step count: %d", len(original.Steps))
	}
}

func TestPlan_Clone_NilSteps(t *testing.T) {
	p := Plan{Title: "Empty"}
	c := p.Clone()
	if c.Steps != nil {
		t.Errorf("Clone of nil steps should stay nil, got %v", c.Steps)
	}
}

func TestPlan_HasTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \t\n", false},
		{"plain title", "Smoke tests", true},
		{"padded title", "  Smoke tests  ", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Plan{Title: tc.title}
			if got := p.HasTitle(); got != tc.want {
				t.Errorf("HasTitle(%q) = %v, want %v", tc.title, got, tc.want)
			}
		})
	}
}

func TestPlan_IsSaved(t *testing.T) {
	unsaved := Plan{Title: "x"}
	if unsaved.IsSaved() {
		t.Error("plan with zero ID should not be saved")
	}
	saved := Plan{ID: 12, Title: "x"}
	if !saved.IsSaved() {
		t.Error("plan with assigned ID should be saved")
	}
}

// =============================================================================
// SUGGESTION RESULT TESTS
// =============================================================================

func TestSuggestionResult_ToPlan(t *testing.T) {
	r := SuggestionResult{
		Title:       "API regression",
		Description: "Generated from the release notes",
		Steps:       []string{"Call /health", "Verify status field"},
	}

	p := r.ToPlan()

	if p.ID != 0 {
		t.Errorf("Imported plan should be unsaved, got ID %d", p.ID)
	}
	if p.Title != r.Title || p.Description != r.Description {
		t.Errorf("ToPlan() dropped fields: %+v", p)
	}
	if len(p.Steps) != 2 || p.Steps[1].Description != "Verify status field" {
		t.Errorf("ToPlan() steps = %+v", p.Steps)
	}
}

func TestPlaceholderResult(t *testing.T) {
	r := PlaceholderResult()

	if r.Title != "Error Generating Plan" {
		t.Errorf("placeholder title = %q", r.Title)
	}
	if r.Description != "Failed to generate suggestions" {
		t.Errorf("placeholder description = %q", r.Description)
	}
	if len(r.Steps) != 1 {
		t.Fatalf("placeholder should have exactly one step, got %d", len(r.Steps))
	}
}
