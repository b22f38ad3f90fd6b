// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package planstore holds the client-side list of persisted test plans.
package planstore

import (
	"context"
	"errors"
	"testing"

	"github.com/jeranaias/planrun-tui/internal/model"
)

// =============================================================================
// FAKE BACKEND
// =============================================================================

// fakeBackend is an in-memory Backend that records calls and can be forced
// to fail.
type fakeBackend struct {
	plans  []model.Plan
	nextID int64
	fail   error

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeBackend(seed ...model.Plan) *fakeBackend {
	b := &fakeBackend{nextID: 1}
	for _, p := range seed {
		if p.ID >= b.nextID {
			b.nextID = p.ID + 1
		}
		b.plans = append(b.plans, p.Clone())
	}
	return b
}

func (b *fakeBackend) ListPlans(ctx context.Context) ([]model.Plan, error) {
	b.listCalls++
	if b.fail != nil {
		return nil, b.fail
	}
	out := make([]model.Plan, len(b.plans))
	for i := range b.plans {
		out[i] = b.plans[i].Clone()
	}
	return out, nil
}

func (b *fakeBackend) CreatePlan(ctx context.Context, plan model.Plan) (model.Plan, error) {
	b.createCalls++
	if b.fail != nil {
		return model.Plan{}, b.fail
	}
	created := plan.Clone()
	created.ID = b.nextID
	b.nextID++
	b.plans = append(b.plans, created.Clone())
	return created, nil
}

func (b *fakeBackend) UpdatePlan(ctx context.Context, id int64, plan model.Plan) (model.Plan, error) {
	b.updateCalls++
	if b.fail != nil {
		return model.Plan{}, b.fail
	}
	updated := plan.Clone()
	updated.ID = id
	for i := range b.plans {
		if b.plans[i].ID == id {
			b.plans[i] = updated.Clone()
			return updated, nil
		}
	}
	return model.Plan{}, errors.New("backend: no such plan")
}

func (b *fakeBackend) DeletePlan(ctx context.Context, id int64) error {
	b.deleteCalls++
	if b.fail != nil {
		return b.fail
	}
	for i := range b.plans {
		if b.plans[i].ID == id {
			b.plans = append(b.plans[:i], b.plans[i+1:]...)
			return nil
		}
	}
	return errors.New("backend: no such plan")
}

var errBoom = errors.New("backend unavailable")

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestStore_Load_ReplacesList(t *testing.T) {
	backend := newFakeBackend(
		model.Plan{ID: 1, Title: "First"},
		model.Plan{ID: 2, Title: "Second"},
	)
	store := New(backend)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}

	// A second load after backend changes is a full replacement, not a merge.
	backend.plans = backend.plans[1:]
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	plans := store.Plans()
	if len(plans) != 1 || plans[0].ID != 2 {
		t.Errorf("Load() did not replace list, got %+v", plans)
	}
}

func TestStore_Load_FailureKeepsList(t *testing.T) {
	backend := newFakeBackend(model.Plan{ID: 1, Title: "Kept"})
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	backend.fail = errBoom
	if err := store.Load(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("Load() error = %v, want %v", err, errBoom)
	}
	if store.Len() != 1 {
		t.Errorf("failed Load() should keep prior list, Len() = %d", store.Len())
	}
}

// =============================================================================
// CREATE TESTS
// =============================================================================

func TestStore_Create_AppendsBackendPlan(t *testing.T) {
	backend := newFakeBackend(model.Plan{ID: 5, Title: "Existing"})
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	draft := model.Plan{
		Title:       "T",
		Description: "D",
		Steps:       []model.Step{{Description: "S1"}},
	}
	created, err := store.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == 0 {
		t.Error("Create() should return a plan with an assigned id")
	}
	if created.Title != "T" || created.Description != "D" || len(created.Steps) != 1 {
		t.Errorf("Create() altered content: %+v", created)
	}

	// New plans are appended at the end.
	plans := store.Plans()
	if plans[len(plans)-1].ID != created.ID {
		t.Errorf("created plan should be last in list, got %+v", plans)
	}

	// Round trip: the plan appears in a fresh load too.
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := store.Get(created.ID); !ok {
		t.Error("created plan missing from reloaded list")
	}
}

func TestStore_Create_EmptyTitleIsLocalNoop(t *testing.T) {
	tests := []string{"", "   ", "\t\n"}

	for _, title := range tests {
		backend := newFakeBackend()
		store := New(backend)

		_, err := store.Create(context.Background(), model.Plan{Title: title, Description: "x"})
		if !errors.Is(err, ErrTitleRequired) {
			t.Errorf("Create(title=%q) error = %v, want ErrTitleRequired", title, err)
		}
		if backend.createCalls != 0 {
			t.Errorf("Create(title=%q) must not call the backend", title)
		}
		if store.Len() != 0 {
			t.Errorf("Create(title=%q) must not grow the list", title)
		}
	}
}

func TestStore_Create_FailureLeavesListUnchanged(t *testing.T) {
	backend := newFakeBackend(model.Plan{ID: 1, Title: "Only"})
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	backend.fail = errBoom
	_, err := store.Create(context.Background(), model.Plan{Title: "New"})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Create() error = %v, want %v", err, errBoom)
	}
	if store.Len() != 1 {
		t.Errorf("failed Create() must not append, Len() = %d", store.Len())
	}
}

// =============================================================================
// UPDATE TESTS
// =============================================================================

func TestStore_Update_ReplacesEntryInPlace(t *testing.T) {
	backend := newFakeBackend(
		model.Plan{ID: 1, Title: "A"},
		model.Plan{ID: 2, Title: "B"},
		model.Plan{ID: 3, Title: "C"},
	)
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	draft := model.Plan{Title: "B2", Steps: []model.Step{{Description: "new step"}}}
	updated, err := store.Update(context.Background(), 2, draft)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.ID != 2 || updated.Title != "B2" {
		t.Errorf("Update() = %+v", updated)
	}

	// Position is preserved.
	plans := store.Plans()
	if plans[1].ID != 2 || plans[1].Title != "B2" {
		t.Errorf("updated plan moved or stale: %+v", plans)
	}
	if plans[0].ID != 1 || plans[2].ID != 3 {
		t.Errorf("neighbours disturbed: %+v", plans)
	}
}

func TestStore_Update_UnknownID(t *testing.T) {
	backend := newFakeBackend(model.Plan{ID: 1, Title: "A"})
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	_, err := store.Update(context.Background(), 99, model.Plan{Title: "X"})
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrPlanNotFound", err)
	}
	if backend.updateCalls != 0 {
		t.Error("Update(unknown) must not call the backend")
	}
}

func TestStore_Update_FailureLeavesEntryUnchanged(t *testing.T) {
	backend := newFakeBackend(model.Plan{ID: 1, Title: "Before"})
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	backend.fail = errBoom
	_, err := store.Update(context.Background(), 1, model.Plan{Title: "After"})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Update() error = %v, want %v", err, errBoom)
	}
	got, _ := store.Get(1)
	if got.Title != "Before" {
		t.Errorf("failed Update() partially applied: %+v", got)
	}
}

// =============================================================================
// DELETE TESTS
// =============================================================================

func TestStore_Delete_RemovesByID(t *testing.T) {
	backend := newFakeBackend(
		model.Plan{ID: 1, Title: "A"},
		model.Plan{ID: 2, Title: "B"},
		model.Plan{ID: 3, Title: "C"},
	)
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if err := store.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	plans := store.Plans()
	if len(plans) != 2 || plans[0].ID != 1 || plans[1].ID != 3 {
		t.Errorf("Delete() result = %+v, want [1 3] in order", plans)
	}
}

func TestStore_Delete_FailureKeepsEntry(t *testing.T) {
	backend := newFakeBackend(model.Plan{ID: 1, Title: "A"})
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	backend.fail = errBoom
	if err := store.Delete(context.Background(), 1); !errors.Is(err, errBoom) {
		t.Fatalf("Delete() error = %v, want %v", err, errBoom)
	}
	if _, ok := store.Get(1); !ok {
		t.Error("plan must not disappear until backend confirms the delete")
	}
}

// =============================================================================
// COPY ISOLATION
// =============================================================================

func TestStore_Plans_ReturnsCopies(t *testing.T) {
	backend := newFakeBackend(model.Plan{
		ID:    1,
		Title: "Original",
		Steps: []model.Step{{Description: "step"}},
	})
	store := New(backend)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	plans := store.Plans()
	plans[0].Title = "Mutated"
	plans[0].Steps[0].Description = "Mutated"

	fresh, _ := store.Get(1)
	if fresh.Title != "Original" || fresh.Steps[0].Description != "step" {
		t.Errorf("mutation of returned slice leaked into store: %+v", fresh)
	}
}
