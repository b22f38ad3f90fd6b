// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/planrun-tui/internal/model"
)

func samplePlan() model.Plan {
	return model.Plan{
		ID:          7,
		Title:       "Checkout flow",
		Description: "Covers the purchase path",
		Steps: []model.Step{
			{Description: "Add an item to the cart"},
			{Description: "Complete payment"},
		},
	}
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdownExporter(t *testing.T) {
	content, err := NewMarkdownExporter(nil).Export(samplePlan())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	out := string(content)

	for _, want := range []string{
		"# Checkout flow",
		"plan_id: 7",
		"Covers the purchase path",
		"1. Add an item to the cart",
		"2. Complete payment",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestMarkdownExporter_NoSteps(t *testing.T) {
	content, err := NewMarkdownExporter(nil).Export(model.Plan{Title: "Empty"})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.Contains(string(content), "No steps defined") {
		t.Errorf("empty plan should note the missing steps")
	}
}

func TestMarkdownExporter_UnsavedPlanOmitsID(t *testing.T) {
	plan := samplePlan()
	plan.ID = 0

	content, err := NewMarkdownExporter(nil).Export(plan)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "plan_id") {
		t.Errorf("unsaved plan should not carry a plan_id")
	}
}

func TestMarkdownExporter_RequiresTitle(t *testing.T) {
	_, err := NewMarkdownExporter(nil).Export(model.Plan{Title: "  "})
	if err == nil {
		t.Error("Export() = nil error for untitled plan")
	}
}

// =============================================================================
// JSON TESTS
// =============================================================================

func TestJSONExporter(t *testing.T) {
	content, err := NewJSONExporter().Export(samplePlan())
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var doc struct {
		Plan      model.Plan `json:"plan"`
		Generator string     `json:"generator"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Plan.Title != "Checkout flow" || len(doc.Plan.Steps) != 2 {
		t.Errorf("plan content lost: %+v", doc.Plan)
	}
	if doc.Generator != "planrun-tui" {
		t.Errorf("generator = %q", doc.Generator)
	}
}

// =============================================================================
// FILE TESTS
// =============================================================================

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{OutputDir: dir, IncludeMetadata: true}

	path, err := ExportMarkdown(samplePlan(), opts)
	if err != nil {
		t.Fatalf("ExportMarkdown() error: %v", err)
	}
	if filepath.Ext(path) != ".md" {
		t.Errorf("path = %q, want .md extension", path)
	}
	if !strings.Contains(filepath.Base(path), "Checkout_flow") {
		t.Errorf("filename should carry the sanitized title: %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Login flow", "Login_flow"},
		{"a/b\\c:d", "a-b-c-d"},
		{"", "plan"},
	}

	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
