// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest turns free-text documents into draft test plans.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeCompletion returns a canned response or error.
type fakeCompletion struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompletion) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

// =============================================================================
// GENERATE TESTS
// =============================================================================

func TestGenerator_Generate_ParsesWellFormedResponse(t *testing.T) {
	client := &fakeCompletion{response: `TITLE: Login Test Plan
DESCRIPTION: Covers authentication flows.
STEPS:
1. Open the login page
2. Enter valid credentials
3. Verify the dashboard loads`}
	g := NewGenerator(client)

	result, err := g.Generate(context.Background(), "Auth service design doc")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if result.Title != "Login Test Plan" {
		t.Errorf("title = %q", result.Title)
	}
	if result.Description != "Covers authentication flows." {
		t.Errorf("description = %q", result.Description)
	}
	want := []string{"Open the login page", "Enter valid credentials", "Verify the dashboard loads"}
	if len(result.Steps) != len(want) {
		t.Fatalf("steps = %v", result.Steps)
	}
	for i, s := range want {
		if result.Steps[i] != s {
			t.Errorf("step[%d] = %q, want %q", i, result.Steps[i], s)
		}
	}

	// The document must appear in the prompt sent to the model.
	if len(client.prompts) != 1 || !strings.Contains(client.prompts[0], "Auth service design doc") {
		t.Error("prompt should embed the document text")
	}
}

func TestGenerator_Generate_PropagatesClientError(t *testing.T) {
	g := NewGenerator(&fakeCompletion{err: errors.New("model not loaded")})

	_, err := g.Generate(context.Background(), "doc")
	if err == nil {
		t.Fatal("Generate() should fail when the model call fails")
	}
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParseResponse_Fallbacks(t *testing.T) {
	tests := []struct {
		name            string
		response        string
		wantTitle       string
		wantDescription string
		wantSteps       int
	}{
		{
			name:            "missing title",
			response:        "DESCRIPTION: something\nSTEPS:\n1. a\n2. b",
			wantTitle:       "Generated Test Plan",
			wantDescription: "something",
			wantSteps:       2,
		},
		{
			name:            "missing description",
			response:        "TITLE: T\nSTEPS:\n1. a",
			wantTitle:       "T",
			wantDescription: "Test plan generated from document with 1 steps",
			wantSteps:       1,
		},
		{
			name:            "unstructured rambling",
			response:        "I could not find anything useful in the document.",
			wantTitle:       "Generated Test Plan",
			wantDescription: "Test plan generated from document with 0 steps",
			wantSteps:       0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseResponse(tc.response)
			if got.Title != tc.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tc.wantTitle)
			}
			if got.Description != tc.wantDescription {
				t.Errorf("description = %q, want %q", got.Description, tc.wantDescription)
			}
			if len(got.Steps) != tc.wantSteps {
				t.Errorf("steps = %v, want %d entries", got.Steps, tc.wantSteps)
			}
		})
	}
}

func TestParseResponse_StepNumberingVariants(t *testing.T) {
	response := `TITLE: T
DESCRIPTION: D
STEPS:
1. First step
2) Second step keeps its text
10. Tenth-style index
Not a step line
3. After the interruption steps resume`

	got := parseResponse(response)

	// "2)" has no dot in the first three characters, so the line is kept
	// whole; everything that starts with a digit inside STEPS counts.
	want := []string{
		"First step",
		"2) Second step keeps its text",
		"Tenth-style index",
		"After the interruption steps resume",
	}
	if len(got.Steps) != len(want) {
		t.Fatalf("steps = %v", got.Steps)
	}
	for i := range want {
		if got.Steps[i] != want[i] {
			t.Errorf("step[%d] = %q, want %q", i, got.Steps[i], want[i])
		}
	}
}

func TestParseResponse_CapsSteps(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("TITLE: Long\nDESCRIPTION: Many steps\nSTEPS:\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&sb, "%d. step %d\n", i, i)
	}

	got := parseResponse(sb.String())
	if len(got.Steps) != MaxSteps {
		t.Errorf("steps capped at %d, got %d", MaxSteps, len(got.Steps))
	}
	if got.Steps[0] != "step 1" || got.Steps[MaxSteps-1] != fmt.Sprintf("step %d", MaxSteps) {
		t.Errorf("cap should keep the first %d steps: %v", MaxSteps, got.Steps)
	}
}
