// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - Rendering for the planner TUI.

package planner

import (
	"fmt"
	"strings"

	"github.com/jeranaias/planrun-tui/internal/editor"
	"github.com/jeranaias/planrun-tui/internal/suggest"
	"github.com/jeranaias/planrun-tui/internal/ui/components"
	"github.com/jeranaias/planrun-tui/internal/util"
)

// View renders the current screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.view {
	case viewList:
		body = m.viewListScreen()
	case viewEditor:
		body = m.viewEditorScreen()
	case viewSuggest:
		body = m.viewSuggestScreen()
	}

	m.statusBar.SetShortcuts(m.shortcutsForView())

	return strings.Join([]string{
		m.viewHeader(),
		body,
		m.statusBar.View(m.theme),
	}, "\n")
}

// viewHeader renders the one-line application header.
func (m *Model) viewHeader() string {
	title := m.theme.HeaderTitle.Render("planrun")

	var subtitle string
	switch m.view {
	case viewList:
		subtitle = "test plans"
	case viewEditor:
		if m.editor.Mode() == editor.ModeEditing {
			subtitle = fmt.Sprintf("editing plan %d", m.editor.TargetID())
		} else {
			subtitle = "new plan"
		}
	case viewSuggest:
		subtitle = "suggestions"
	}

	return m.theme.Header.Render(title + "  " + m.theme.HeaderSubtitle.Render(subtitle))
}

// shortcutsForView returns the status bar hints for the current view.
func (m *Model) shortcutsForView() []components.Shortcut {
	switch m.view {
	case viewEditor:
		return []components.Shortcut{
			{Key: "C-s", Desc: "save"},
			{Key: "C-n", Desc: "add step"},
			{Key: "C-d", Desc: "del step"},
			{Key: "Tab", Desc: "next"},
			{Key: "Esc", Desc: "cancel"},
		}
	case viewSuggest:
		if m.session.Settled() {
			return []components.Shortcut{
				{Key: "Enter", Desc: "import"},
				{Key: "C-s", Desc: "regenerate"},
				{Key: "Esc", Desc: "back"},
			}
		}
		return []components.Shortcut{
			{Key: "C-s", Desc: "generate"},
			{Key: "Esc", Desc: "back"},
		}
	default:
		return []components.Shortcut{
			{Key: "n", Desc: "new"},
			{Key: "Enter", Desc: "edit"},
			{Key: "d", Desc: "delete"},
			{Key: "s", Desc: "suggest"},
			{Key: "r", Desc: "reload"},
			{Key: "q", Desc: "quit"},
		}
	}
}

// =============================================================================
// LIST VIEW
// =============================================================================

func (m *Model) viewListScreen() string {
	if len(m.plans) == 0 {
		return m.theme.ListEmpty.Render(
			"No plans yet.\n\nPress n to create one, or s to generate a draft from a document.")
	}

	titleWidth := m.width - 18
	if titleWidth < 20 {
		titleWidth = 40
	}

	var sb strings.Builder
	for i, plan := range m.plans {
		id := m.theme.ListID.Render(fmt.Sprintf("#%d", plan.ID))
		title := util.TruncateWidth(plan.Title, titleWidth)
		meta := m.theme.ListMeta.Render(fmt.Sprintf("%d step(s)", len(plan.Steps)))

		row := fmt.Sprintf("%s %s  %s", id, title, meta)
		if i == m.cursor {
			sb.WriteString(m.theme.ListItemSelected.Render(row))
		} else {
			sb.WriteString(m.theme.ListItem.Render(row))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// =============================================================================
// EDITOR VIEW
// =============================================================================

func (m *Model) viewEditorScreen() string {
	var sb strings.Builder

	badge := m.theme.EditorModeBadge.Render(strings.ToUpper(m.editor.Mode().String()))
	sb.WriteString(badge)
	sb.WriteString("\n\n")

	sb.WriteString(m.theme.EditorLabel.Render("Title"))
	sb.WriteString(m.titleInput.View())
	sb.WriteString("\n")

	sb.WriteString(m.theme.EditorLabel.Render("Description"))
	sb.WriteString(m.descInput.View())
	sb.WriteString("\n\n")

	sb.WriteString(m.theme.EditorLabel.Render("Steps"))
	sb.WriteString("\n")

	if len(m.stepInputs) == 0 {
		sb.WriteString(m.theme.ListEmpty.Render("No steps. Press C-n to add one."))
		sb.WriteString("\n")
	}
	for i := range m.stepInputs {
		num := m.theme.StepNumber.Render(fmt.Sprintf("%2d.", i+1))
		sb.WriteString(fmt.Sprintf("%s %s\n", num, m.stepInputs[i].View()))
	}

	return m.theme.EditorBox.Render(sb.String())
}

// =============================================================================
// SUGGEST VIEW
// =============================================================================

func (m *Model) viewSuggestScreen() string {
	var sb strings.Builder

	sb.WriteString(m.theme.SuggestTitle.Render("Generate a plan from a document"))
	sb.WriteString("\n\n")
	sb.WriteString(m.docInput.View())
	sb.WriteString("\n\n")

	switch m.session.State() {
	case suggest.StatePending:
		sb.WriteString(m.spinner.View())
		sb.WriteString("\n")

	case suggest.StateSucceeded, suggest.StateFailed:
		result := m.session.Result()

		if m.session.State() == suggest.StateFailed {
			sb.WriteString(m.theme.SuggestFailed.Render(result.Title))
		} else {
			sb.WriteString(m.theme.SuggestTitle.Render(result.Title))
		}
		sb.WriteString("\n")
		if result.Description != "" {
			sb.WriteString(m.theme.SuggestStep.Render(result.Description))
			sb.WriteString("\n")
		}
		for i, step := range result.Steps {
			sb.WriteString(m.theme.SuggestStep.Render(fmt.Sprintf("%2d. %s", i+1, step)))
			sb.WriteString("\n")
		}
	}

	return m.theme.SuggestBox.Render(sb.String())
}
