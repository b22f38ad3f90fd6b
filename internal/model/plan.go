// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for test plans and suggestions.
package model

import "strings"

// =============================================================================
// STEP
// =============================================================================

// Step is a single free-text instruction within a plan.
//
// Steps carry no identifier. Their identity is their position in the parent
// plan's Steps slice: insertion order is preserved, deletion shifts later
// steps left, and duplicate descriptions are allowed.
type Step struct {
	Description string `json:"description"`
}

// =============================================================================
// PLAN
// =============================================================================

// Plan is a named, described collection of ordered test steps.
//
// ID is assigned by the backend on first successful creation; a zero ID
// means the plan has never been saved.
type Plan struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
}

// IsSaved reports whether the plan has been persisted by the backend.
func (p *Plan) IsSaved() bool {
	return p.ID != 0
}

// HasTitle reports whether the plan has a non-empty, non-whitespace title.
// A plan without a title must never be submitted to the backend.
func (p *Plan) HasTitle() bool {
	return strings.TrimSpace(p.Title) != ""
}

// Clone returns a deep copy of the plan.
//
// The copy shares no memory with the receiver, so edits to the clone's
// steps never leak back into the original. Callers that hand a plan from
// one component to another must clone rather than alias.
func (p *Plan) Clone() Plan {
	c := Plan{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
	}
	if p.Steps != nil {
		c.Steps = make([]Step, len(p.Steps))
		copy(c.Steps, p.Steps)
	}
	return c
}

// StepDescriptions returns the step descriptions in order.
func (p *Plan) StepDescriptions() []string {
	out := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Description
	}
	return out
}
