// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest turns free-text documents into draft test plans.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/planrun-tui/internal/model"
)

// MaxSteps caps how many generated steps are kept. Long documents can make
// the model ramble; the UI shows at most this many.
const MaxSteps = 10

// Fallback values used when the model responds but the expected sections
// are missing from its output.
const (
	fallbackTitle = "Generated Test Plan"
)

// =============================================================================
// LLM CLIENT INTERFACE
// =============================================================================

// CompletionClient is the language-model collaborator used to generate
// suggestions.
type CompletionClient interface {
	// GenerateCompletion generates a text completion for the prompt.
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator produces a draft test plan from document text.
type Generator struct {
	client CompletionClient
}

// NewGenerator creates a generator over the given completion client.
func NewGenerator(client CompletionClient) *Generator {
	return &Generator{client: client}
}

// Generate asks the model for a test plan derived from the document and
// parses the response. Transport errors and unusable responses are returned
// as errors; mapping an error to the placeholder result is the session's
// job, not the generator's.
func (g *Generator) Generate(ctx context.Context, document string) (model.SuggestionResult, error) {
	if g.client == nil {
		return model.SuggestionResult{}, fmt.Errorf("completion client not configured")
	}

	response, err := g.client.GenerateCompletion(ctx, buildPrompt(document))
	if err != nil {
		return model.SuggestionResult{}, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	return parseResponse(response), nil
}

// buildPrompt constructs the structured prompt for the model. The response
// format is line-oriented (TITLE/DESCRIPTION/STEPS) because small local
// models follow it far more reliably than JSON.
func buildPrompt(document string) string {
	return fmt.Sprintf(`Based on this document, generate a complete test plan with:

1. A concise, descriptive Title for the test plan (max 50 characters)
2. A brief Description (max 100 words)
3. Practical test steps in checklist format (numbered list)

Document:
%s

Format your response exactly like this:

TITLE: [title here]
DESCRIPTION: [description here]
STEPS:
1. [step 1]
2. [step 2]
etc.`, document)
}

// =============================================================================
// RESPONSE PARSING
// =============================================================================

// parseResponse extracts title, description, and steps from the model's
// line-oriented response. Missing sections fall back to generated defaults;
// the parser never fails outright, since even a partial response is more
// useful to the user than nothing.
func parseResponse(text string) model.SuggestionResult {
	var (
		title       string
		description string
		steps       []string
		inSteps     bool
	)

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "TITLE:"):
			title = strings.TrimSpace(strings.TrimPrefix(line, "TITLE:"))
			inSteps = false
		case strings.HasPrefix(line, "DESCRIPTION:"):
			description = strings.TrimSpace(strings.TrimPrefix(line, "DESCRIPTION:"))
			inSteps = false
		case strings.HasPrefix(line, "STEPS:"):
			inSteps = true
		case inSteps && startsWithDigit(line):
			if step := stripNumbering(line); step != "" {
				steps = append(steps, step)
			}
		}
	}

	if title == "" {
		title = fallbackTitle
	}
	if description == "" {
		description = fmt.Sprintf("Test plan generated from document with %d steps", len(steps))
	}
	if len(steps) > MaxSteps {
		steps = steps[:MaxSteps]
	}

	return model.SuggestionResult{
		Title:       title,
		Description: description,
		Steps:       steps,
	}
}

// startsWithDigit reports whether the line begins with an ASCII digit.
func startsWithDigit(line string) bool {
	return line != "" && line[0] >= '0' && line[0] <= '9'
}

// stripNumbering removes a leading "3." style list marker from a step line.
func stripNumbering(line string) string {
	if i := strings.Index(line, "."); i >= 0 && i < 3 {
		return strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}
