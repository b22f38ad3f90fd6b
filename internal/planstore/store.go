// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package planstore holds the client-side list of persisted test plans and
// reconciles it against the backend.
package planstore

import (
	"context"
	"errors"

	"github.com/jeranaias/planrun-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrTitleRequired is returned when a draft without a title is submitted.
	// The call never reaches the backend in this case.
	ErrTitleRequired = errors.New("plan title is required")

	// ErrPlanNotFound is returned when an update targets an id that is not
	// in the local list.
	ErrPlanNotFound = errors.New("plan not found")
)

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the plan-collection collaborator. Any call may fail with an
// opaque transport or server error; the store treats all failures uniformly
// and leaves its list untouched when one occurs.
type Backend interface {
	// ListPlans returns the authoritative plan list, in backend order.
	ListPlans(ctx context.Context) ([]model.Plan, error)

	// CreatePlan persists a new plan and returns it with its assigned id.
	CreatePlan(ctx context.Context, plan model.Plan) (model.Plan, error)

	// UpdatePlan replaces the stored plan and returns the stored
	// representation.
	UpdatePlan(ctx context.Context, id int64, plan model.Plan) (model.Plan, error)

	// DeletePlan removes the plan with the given id.
	DeletePlan(ctx context.Context, id int64) error
}

// =============================================================================
// PLAN STORE
// =============================================================================

// Store holds the plan list as last synced from the backend.
//
// The backend is authoritative: Load replaces the list wholesale, Create
// appends the backend's returned plan, Update replaces the matching entry
// with the backend's returned representation (not the submitted draft), and
// Delete removes the entry only after backend confirmation. A failed call
// never partially applies.
//
// Store is not safe for concurrent use. It is designed for the single
// event loop of the TUI; async work runs outside the store and reports back
// through these methods.
type Store struct {
	backend Backend
	plans   []model.Plan
}

// New creates a store backed by the given collaborator.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Plans returns a copy of the current list. Mutating the returned slice or
// its plans does not affect the store.
func (s *Store) Plans() []model.Plan {
	out := make([]model.Plan, len(s.plans))
	for i := range s.plans {
		out[i] = s.plans[i].Clone()
	}
	return out
}

// Len returns the number of plans in the local list.
func (s *Store) Len() int {
	return len(s.plans)
}

// Get returns a copy of the plan with the given id.
func (s *Store) Get(id int64) (model.Plan, bool) {
	for i := range s.plans {
		if s.plans[i].ID == id {
			return s.plans[i].Clone(), true
		}
	}
	return model.Plan{}, false
}

// Load replaces the entire local list with the backend's current list.
// No merge is attempted; on failure the previous list is kept.
func (s *Store) Load(ctx context.Context) error {
	plans, err := s.backend.ListPlans(ctx)
	if err != nil {
		return err
	}
	s.plans = plans
	return nil
}

// Create persists a new plan draft. On success the backend's returned plan,
// now carrying its assigned id, is appended to the end of the list.
//
// A draft without a title is rejected locally with ErrTitleRequired and no
// backend call is made.
func (s *Store) Create(ctx context.Context, draft model.Plan) (model.Plan, error) {
	if !draft.HasTitle() {
		return model.Plan{}, ErrTitleRequired
	}

	created, err := s.backend.CreatePlan(ctx, draft)
	if err != nil {
		return model.Plan{}, err
	}

	s.plans = append(s.plans, created)
	return created.Clone(), nil
}

// Update persists changes to an existing plan. On success the list entry
// whose id matches is replaced, in place, with the backend's returned
// representation. The backend response is authoritative, guarding against
// drift between what was sent and what was stored.
func (s *Store) Update(ctx context.Context, id int64, draft model.Plan) (model.Plan, error) {
	if !draft.HasTitle() {
		return model.Plan{}, ErrTitleRequired
	}
	if _, ok := s.indexOf(id); !ok {
		return model.Plan{}, ErrPlanNotFound
	}

	updated, err := s.backend.UpdatePlan(ctx, id, draft)
	if err != nil {
		return model.Plan{}, err
	}

	if i, ok := s.indexOf(updated.ID); ok {
		s.plans[i] = updated
	}
	return updated.Clone(), nil
}

// Delete removes the plan with the given id. The local entry disappears
// only after the backend confirms; relative order of the remaining plans
// is preserved.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeletePlan(ctx, id); err != nil {
		return err
	}

	if i, ok := s.indexOf(id); ok {
		s.plans = append(s.plans[:i], s.plans[i+1:]...)
	}
	return nil
}

// indexOf returns the list position of the plan with the given id.
func (s *Store) indexOf(id int64) (int, bool) {
	for i := range s.plans {
		if s.plans[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
