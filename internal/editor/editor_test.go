// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor manages the single in-progress test plan draft.
package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/jeranaias/planrun-tui/internal/model"
	"github.com/jeranaias/planrun-tui/internal/planstore"
)

// countingBackend counts collaborator calls so tests can assert that a
// guarded submit never goes out on the wire.
type countingBackend struct {
	plans       []model.Plan
	nextID      int64
	fail        error
	createCalls int
	updateCalls int
}

func (b *countingBackend) ListPlans(ctx context.Context) ([]model.Plan, error) {
	out := make([]model.Plan, len(b.plans))
	for i := range b.plans {
		out[i] = b.plans[i].Clone()
	}
	return out, nil
}

func (b *countingBackend) CreatePlan(ctx context.Context, plan model.Plan) (model.Plan, error) {
	b.createCalls++
	if b.fail != nil {
		return model.Plan{}, b.fail
	}
	created := plan.Clone()
	b.nextID++
	created.ID = b.nextID
	b.plans = append(b.plans, created.Clone())
	return created, nil
}

func (b *countingBackend) UpdatePlan(ctx context.Context, id int64, plan model.Plan) (model.Plan, error) {
	b.updateCalls++
	if b.fail != nil {
		return model.Plan{}, b.fail
	}
	updated := plan.Clone()
	updated.ID = id
	for i := range b.plans {
		if b.plans[i].ID == id {
			b.plans[i] = updated.Clone()
		}
	}
	return updated, nil
}

func (b *countingBackend) DeletePlan(ctx context.Context, id int64) error {
	return nil
}

func newEditor(t *testing.T, seed ...model.Plan) (*Editor, *planstore.Store, *countingBackend) {
	t.Helper()
	backend := &countingBackend{}
	for _, p := range seed {
		backend.plans = append(backend.plans, p.Clone())
		if p.ID > backend.nextID {
			backend.nextID = p.ID
		}
	}
	store := planstore.New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return New(store), store, backend
}

// =============================================================================
// DRAFT LIFECYCLE TESTS
// =============================================================================

func TestEditor_StartsEmptyInCreateMode(t *testing.T) {
	e, _, _ := newEditor(t)

	if e.Mode() != ModeCreating {
		t.Errorf("initial mode = %v, want Creating", e.Mode())
	}
	draft := e.Draft()
	if draft.Title != "" || draft.Description != "" || len(draft.Steps) != 0 {
		t.Errorf("initial draft not empty: %+v", draft)
	}
}

func TestEditor_StartEdit_CopiesPlan(t *testing.T) {
	source := model.Plan{
		ID:          3,
		Title:       "Checkout",
		Description: "Cart flow",
		Steps:       []model.Step{{Description: "Add item"}, {Description: "Pay"}},
	}
	e, store, _ := newEditor(t, source)

	plan, _ := store.Get(3)
	e.StartEdit(plan)

	if e.Mode() != ModeEditing || e.TargetID() != 3 {
		t.Fatalf("StartEdit mode/target = %v/%d", e.Mode(), e.TargetID())
	}

	// Mutating the draft must never alter the store's record.
	e.SetTitle("Changed")
	e.UpdateStep(0, "Changed step")
	e.DeleteStep(1)

	original, _ := store.Get(3)
	if original.Title != "Checkout" || len(original.Steps) != 2 ||
		original.Steps[0].Description != "Add item" {
		t.Errorf("draft edits leaked into store: %+v", original)
	}
}

func TestEditor_Cancel_DiscardsDraft(t *testing.T) {
	e, _, _ := newEditor(t, model.Plan{ID: 1, Title: "A"})
	e.StartEdit(model.Plan{ID: 1, Title: "A"})
	e.SetTitle("Unsaved work")

	e.Cancel()

	if e.Mode() != ModeCreating {
		t.Errorf("Cancel() mode = %v, want Creating", e.Mode())
	}
	if e.Draft().Title != "" {
		t.Errorf("Cancel() should discard the draft, got %+v", e.Draft())
	}
}

// =============================================================================
// STEP EDITING TESTS
// =============================================================================

func TestEditor_AddUpdateDeleteStep(t *testing.T) {
	e, _, _ := newEditor(t)

	e.AddStep()
	e.AddStep()
	e.AddStep()
	e.UpdateStep(0, "a")
	e.UpdateStep(1, "b")
	e.UpdateStep(2, "c")

	e.DeleteStep(1)

	draft := e.Draft()
	if len(draft.Steps) != 2 {
		t.Fatalf("step count = %d, want 2", len(draft.Steps))
	}
	if draft.Steps[0].Description != "a" || draft.Steps[1].Description != "c" {
		t.Errorf("DeleteStep(1) on [a b c] = %+v, want [a c]", draft.Steps)
	}
}

func TestEditor_NewStepIsEmpty(t *testing.T) {
	e, _, _ := newEditor(t)
	e.AddStep()
	if got := e.Draft().Steps[0].Description; got != "" {
		t.Errorf("AddStep() description = %q, want empty", got)
	}
}

func TestEditor_StepIndexOutOfRangePanics(t *testing.T) {
	e, _, _ := newEditor(t)
	e.AddStep()

	for _, index := range []int{-1, 1, 5} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("UpdateStep(%d) should panic", index)
				}
			}()
			e.UpdateStep(index, "x")
		}()
	}
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestEditor_Submit_CreateResetsDraft(t *testing.T) {
	e, store, _ := newEditor(t)
	e.SetTitle("New plan")
	e.SetDescription("desc")
	e.AddStep()
	e.UpdateStep(0, "only step")

	saved, err := e.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if saved.ID == 0 {
		t.Error("Submit() should return the saved plan with its id")
	}
	if _, ok := store.Get(saved.ID); !ok {
		t.Error("saved plan missing from store list")
	}
	if e.Mode() != ModeCreating || e.Draft().Title != "" {
		t.Error("Submit() success should reset to an empty create draft")
	}
}

func TestEditor_Submit_EditUpdatesTarget(t *testing.T) {
	e, store, backend := newEditor(t, model.Plan{ID: 4, Title: "Old"})
	plan, _ := store.Get(4)
	e.StartEdit(plan)
	e.SetTitle("New title")

	if _, err := e.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if backend.updateCalls != 1 || backend.createCalls != 0 {
		t.Errorf("edit submit calls: create=%d update=%d", backend.createCalls, backend.updateCalls)
	}
	updated, _ := store.Get(4)
	if updated.Title != "New title" {
		t.Errorf("store entry not updated: %+v", updated)
	}
	if e.Mode() != ModeCreating {
		t.Error("successful edit submit should reset to create mode")
	}
}

func TestEditor_Submit_EmptyTitleNeverCallsBackend(t *testing.T) {
	e, store, backend := newEditor(t)
	e.SetDescription("x")

	_, err := e.Submit(context.Background())
	if !errors.Is(err, planstore.ErrTitleRequired) {
		t.Fatalf("Submit() error = %v, want ErrTitleRequired", err)
	}
	if backend.createCalls != 0 || backend.updateCalls != 0 {
		t.Error("guarded submit must not reach the collaborator")
	}
	if store.Len() != 0 {
		t.Error("store list must be unchanged")
	}
	if e.Draft().Description != "x" {
		t.Error("rejected submit must keep the draft editable")
	}
}

func TestEditor_Submit_FailureRetainsDraft(t *testing.T) {
	e, _, backend := newEditor(t)
	e.SetTitle("Keep me")
	e.AddStep()
	e.UpdateStep(0, "step")

	backend.fail = errors.New("offline")
	if _, err := e.Submit(context.Background()); err == nil {
		t.Fatal("Submit() should propagate the backend failure")
	}

	draft := e.Draft()
	if draft.Title != "Keep me" || len(draft.Steps) != 1 {
		t.Errorf("failed Submit() must retain the draft, got %+v", draft)
	}
}

// =============================================================================
// SUGGESTION IMPORT TESTS
// =============================================================================

func TestEditor_ImportSuggestion_ForcesCreateMode(t *testing.T) {
	e, store, _ := newEditor(t, model.Plan{ID: 9, Title: "Being edited"})
	plan, _ := store.Get(9)
	e.StartEdit(plan)

	result := model.SuggestionResult{
		Title:       "Suggested",
		Description: "From a document",
		Steps:       []string{"one", "two"},
	}
	e.ImportSuggestion(result)

	if e.Mode() != ModeCreating {
		t.Errorf("ImportSuggestion mode = %v, want Creating even mid-edit", e.Mode())
	}
	if e.TargetID() != 0 {
		t.Errorf("ImportSuggestion should drop the edit target, got %d", e.TargetID())
	}

	draft := e.Draft()
	if draft.Title != "Suggested" || len(draft.Steps) != 2 || draft.Steps[1].Description != "two" {
		t.Errorf("imported draft = %+v", draft)
	}

	// The stored plan that was being edited is untouched.
	original, _ := store.Get(9)
	if original.Title != "Being edited" {
		t.Errorf("import must not modify the stored plan: %+v", original)
	}
}
