// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides SQLite-backed persistence for test plans.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/planrun-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrPlanNotFound is returned when an id does not exist in the database.
	ErrPlanNotFound = errors.New("plan not found")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS test_plans (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS test_steps (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	plan_id     INTEGER NOT NULL REFERENCES test_plans(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_steps_plan ON test_steps(plan_id, position);
`

// =============================================================================
// PLAN STORE
// =============================================================================

// PlanStore persists test plans in a SQLite database.
type PlanStore struct {
	db *sql.DB
}

// Open creates (if needed) and opens the plan database at path.
func Open(path string) (*PlanStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Cascading step deletes depend on foreign keys being enforced.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PlanStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *PlanStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// ListPlans returns plans in insertion order. skip and limit implement
// simple pagination; limit <= 0 means no limit.
func (s *PlanStore) ListPlans(ctx context.Context, skip, limit int) ([]model.Plan, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means unlimited
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description FROM test_plans ORDER BY id LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	plans := []model.Plan{}
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		steps, err := s.loadSteps(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Steps = steps
	}
	return plans, nil
}

// GetPlan returns a single plan with its steps.
func (s *PlanStore) GetPlan(ctx context.Context, id int64) (model.Plan, error) {
	var p model.Plan
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, description FROM test_plans WHERE id = ?", id).
		Scan(&p.ID, &p.Title, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to get plan: %w", err)
	}

	steps, err := s.loadSteps(ctx, id)
	if err != nil {
		return model.Plan{}, err
	}
	p.Steps = steps
	return p, nil
}

// loadSteps returns a plan's steps in position order.
func (s *PlanStore) loadSteps(ctx context.Context, planID int64) ([]model.Step, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT description FROM test_steps WHERE plan_id = ? ORDER BY position", planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load steps: %w", err)
	}
	defer rows.Close()

	steps := []model.Step{}
	for rows.Next() {
		var st model.Step
		if err := rows.Scan(&st.Description); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// CreatePlan inserts a plan with its steps and returns the stored plan,
// including the assigned id.
func (s *PlanStore) CreatePlan(ctx context.Context, plan model.Plan) (model.Plan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO test_plans (title, description) VALUES (?, ?)",
		plan.Title, plan.Description)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to insert plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to read inserted id: %w", err)
	}

	if err := insertSteps(ctx, tx, id, plan.Steps); err != nil {
		return model.Plan{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Plan{}, fmt.Errorf("failed to commit: %w", err)
	}

	return s.GetPlan(ctx, id)
}

// UpdatePlan replaces the plan's fields and its entire step set, returning
// the stored representation.
func (s *PlanStore) UpdatePlan(ctx context.Context, id int64, plan model.Plan) (model.Plan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE test_plans SET title = ?, description = ? WHERE id = ?",
		plan.Title, plan.Description, id)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to update plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.Plan{}, ErrPlanNotFound
	}

	// Steps have position-based identity: replace the whole set.
	if _, err := tx.ExecContext(ctx, "DELETE FROM test_steps WHERE plan_id = ?", id); err != nil {
		return model.Plan{}, fmt.Errorf("failed to clear steps: %w", err)
	}
	if err := insertSteps(ctx, tx, id, plan.Steps); err != nil {
		return model.Plan{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Plan{}, fmt.Errorf("failed to commit: %w", err)
	}

	return s.GetPlan(ctx, id)
}

// DeletePlan removes a plan; its steps go with it via the cascade.
func (s *PlanStore) DeletePlan(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM test_plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// insertSteps writes the step list with explicit positions.
func insertSteps(ctx context.Context, tx *sql.Tx, planID int64, steps []model.Step) error {
	for i, st := range steps {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO test_steps (plan_id, position, description) VALUES (?, ?, ?)",
			planID, i, st.Description); err != nil {
			return fmt.Errorf("failed to insert step %d: %w", i, err)
		}
	}
	return nil
}
