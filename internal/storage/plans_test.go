// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides SQLite-backed persistence for test plans.
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/planrun-tui/internal/model"
)

func newTestStore(t *testing.T) *PlanStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePlan() model.Plan {
	return model.Plan{
		Title:       "Login flow",
		Description: "Covers the login form",
		Steps: []model.Step{
			{Description: "Open the login page"},
			{Description: "Enter valid credentials"},
			{Description: "Verify redirect to dashboard"},
		},
	}
}

// =============================================================================
// CREATE / GET
// =============================================================================

func TestPlanStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePlan(ctx, samplePlan())
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0), "create should assign an id")

	got, err := store.GetPlan(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Login flow", got.Title)
	assert.Len(t, got.Steps, 3)
	assert.Equal(t, "Enter valid credentials", got.Steps[1].Description)
}

func TestPlanStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPlan(context.Background(), 999)
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

func TestPlanStore_CreateEmptySteps(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreatePlan(context.Background(), model.Plan{Title: "Bare"})
	require.NoError(t, err)
	assert.Empty(t, created.Steps)
}

// =============================================================================
// LIST
// =============================================================================

func TestPlanStore_ListOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := store.CreatePlan(ctx, model.Plan{Title: title})
		require.NoError(t, err)
	}

	plans, err := store.ListPlans(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "first", plans[0].Title)
	assert.Equal(t, "third", plans[2].Title)
}

func TestPlanStore_ListPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := store.CreatePlan(ctx, model.Plan{Title: title})
		require.NoError(t, err)
	}

	plans, err := store.ListPlans(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "b", plans[0].Title)
	assert.Equal(t, "c", plans[1].Title)
}

func TestPlanStore_ListEmpty(t *testing.T) {
	store := newTestStore(t)

	plans, err := store.ListPlans(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

// =============================================================================
// UPDATE
// =============================================================================

func TestPlanStore_UpdateReplacesSteps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePlan(ctx, samplePlan())
	require.NoError(t, err)

	updated, err := store.UpdatePlan(ctx, created.ID, model.Plan{
		Title:       "Login flow v2",
		Description: "Rewritten",
		Steps:       []model.Step{{Description: "only step"}},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Login flow v2", updated.Title)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, "only step", updated.Steps[0].Description)

	// Old steps must be gone, not merged.
	got, err := store.GetPlan(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Steps, 1)
}

func TestPlanStore_UpdateMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdatePlan(context.Background(), 404, model.Plan{Title: "x"})
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

// =============================================================================
// DELETE
// =============================================================================

func TestPlanStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePlan(ctx, samplePlan())
	require.NoError(t, err)

	require.NoError(t, store.DeletePlan(ctx, created.ID))

	_, err = store.GetPlan(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

func TestPlanStore_DeleteCascadesSteps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePlan(ctx, samplePlan())
	require.NoError(t, err)
	require.NoError(t, store.DeletePlan(ctx, created.ID))

	var count int
	err = store.db.QueryRow("SELECT COUNT(*) FROM test_steps WHERE plan_id = ?", created.ID).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "cascade should remove orphaned steps")
}

func TestPlanStore_DeleteMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.DeletePlan(context.Background(), 77)
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}
