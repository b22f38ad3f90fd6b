// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor manages the single in-progress test plan draft.
package editor

import (
	"context"
	"fmt"

	"github.com/jeranaias/planrun-tui/internal/model"
	"github.com/jeranaias/planrun-tui/internal/planstore"
)

// =============================================================================
// MODE
// =============================================================================

// Mode indicates whether the draft targets a brand-new plan or an existing
// one.
type Mode int

const (
	// ModeCreating - the draft will become a new plan on submit.
	ModeCreating Mode = iota

	// ModeEditing - the draft updates the plan identified by TargetID.
	ModeEditing
)

// String returns the string representation of an editor mode.
func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "Creating"
	case ModeEditing:
		return "Editing"
	default:
		return "Unknown"
	}
}

// =============================================================================
// EDITOR
// =============================================================================

// Editor holds the one mutable plan draft. Exactly one draft exists at a
// time: starting a new edit, importing a suggestion, cancelling, or a
// successful submit all discard the previous draft. There is no undo.
//
// The draft is always an independent copy; edits never mutate the plan list
// held by the store.
type Editor struct {
	store *planstore.Store

	draft    model.Plan
	mode     Mode
	targetID int64
}

// New creates an editor over the given store, starting with an empty
// create-mode draft.
func New(store *planstore.Store) *Editor {
	e := &Editor{store: store}
	e.StartCreate()
	return e
}

// Mode returns the current editing mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// TargetID returns the id of the plan being edited. It is only meaningful
// while Mode is ModeEditing.
func (e *Editor) TargetID() int64 {
	return e.targetID
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() model.Plan {
	return e.draft.Clone()
}

// StepCount returns the number of steps in the draft.
func (e *Editor) StepCount() int {
	return len(e.draft.Steps)
}

// =============================================================================
// DRAFT LIFECYCLE
// =============================================================================

// StartCreate resets the draft to an empty new plan, discarding any unsaved
// changes.
func (e *Editor) StartCreate() {
	e.draft = model.Plan{Steps: []model.Step{}}
	e.mode = ModeCreating
	e.targetID = 0
}

// StartEdit seeds the draft with a full copy of the given plan and switches
// to edit mode. Any unsaved prior draft is discarded.
func (e *Editor) StartEdit(plan model.Plan) {
	e.draft = plan.Clone()
	e.mode = ModeEditing
	e.targetID = plan.ID
}

// Cancel unconditionally resets to the empty create-mode state.
func (e *Editor) Cancel() {
	e.StartCreate()
}

// =============================================================================
// FIELD EDITS
// =============================================================================

// SetTitle replaces the draft title.
func (e *Editor) SetTitle(text string) {
	e.draft.Title = text
}

// SetDescription replaces the draft description.
func (e *Editor) SetDescription(text string) {
	e.draft.Description = text
}

// AddStep appends an empty step to the end of the draft.
func (e *Editor) AddStep() {
	e.draft.Steps = append(e.draft.Steps, model.Step{})
}

// UpdateStep replaces the description of the step at index. An out-of-range
// index is a caller bug, not a runtime condition, and panics.
func (e *Editor) UpdateStep(index int, text string) {
	e.mustValidIndex(index)
	e.draft.Steps[index].Description = text
}

// DeleteStep removes the step at index, shifting later steps left by one.
// An out-of-range index is a caller bug and panics.
func (e *Editor) DeleteStep(index int) {
	e.mustValidIndex(index)
	e.draft.Steps = append(e.draft.Steps[:index], e.draft.Steps[index+1:]...)
}

func (e *Editor) mustValidIndex(index int) {
	if index < 0 || index >= len(e.draft.Steps) {
		panic(fmt.Sprintf("editor: step index %d out of range [0,%d)", index, len(e.draft.Steps)))
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit persists the draft through the store: create in ModeCreating,
// update of the target plan in ModeEditing.
//
// A draft without a title is rejected before any store call; the store
// applies the same guard again so a doomed call is never attempted. On
// success the editor resets to the empty create state. On failure the draft
// is retained unchanged so the user can correct and retry.
func (e *Editor) Submit(ctx context.Context) (model.Plan, error) {
	if !e.draft.HasTitle() {
		return model.Plan{}, planstore.ErrTitleRequired
	}

	var (
		saved model.Plan
		err   error
	)
	switch e.mode {
	case ModeEditing:
		saved, err = e.store.Update(ctx, e.targetID, e.draft)
	default:
		saved, err = e.store.Create(ctx, e.draft)
	}
	if err != nil {
		return model.Plan{}, err
	}

	e.StartCreate()
	return saved, nil
}

// =============================================================================
// SUGGESTION IMPORT
// =============================================================================

// ImportSuggestion replaces the draft with the suggested plan content and
// forces the mode to Creating, regardless of what was being edited before.
// Importing always targets a brand-new plan; it never silently converts an
// in-progress edit of an existing plan into a create.
func (e *Editor) ImportSuggestion(result model.SuggestionResult) {
	e.draft = result.ToPlan()
	if e.draft.Steps == nil {
		e.draft.Steps = []model.Step{}
	}
	e.mode = ModeCreating
	e.targetID = 0
}
