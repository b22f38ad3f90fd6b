// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update.go - Message handling for the planner TUI.

package planner

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/planrun-tui/internal/suggest"
)

// Update is the Bubble Tea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case plansLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.statusBar.SetError("Could not load plans: " + msg.err.Error())
			return m, nil
		}
		m.setPlans(msg.plans)
		m.statusBar.SetMessage(fmt.Sprintf("%d plan(s)", len(m.plans)))
		return m, nil

	case planSavedMsg:
		m.busy = false
		if msg.err != nil {
			// The editor kept the draft; stay in the editor so the user
			// can fix it and retry.
			m.statusBar.SetError("Save failed: " + msg.err.Error())
			return m, nil
		}
		m.setPlans(msg.plans)
		m.view = viewList
		m.statusBar.SetMessage(fmt.Sprintf("Saved plan %d: %s", msg.saved.ID, msg.saved.Title))
		return m, nil

	case planDeletedMsg:
		m.busy = false
		m.confirmDelete = 0
		if msg.err != nil {
			m.statusBar.SetError("Delete failed: " + msg.err.Error())
			return m, nil
		}
		m.setPlans(msg.plans)
		m.statusBar.SetMessage(fmt.Sprintf("Deleted plan %d", msg.id))
		return m, nil

	case suggestionMsg:
		// The session drops responses from superseded requests.
		if !m.session.Resolve(msg.token, msg.result, msg.err) {
			return m, nil
		}
		m.spinner.Stop()
		if m.session.State() == suggest.StateFailed {
			m.statusBar.SetError("Suggestion generation failed")
		} else {
			m.statusBar.SetMessage("Suggestions ready - Enter imports them into the editor")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (spinner ticks, cursor blink) goes to the widgets.
	return m, m.updateWidgets(msg)
}

// resize propagates a terminal size change.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.statusBar.SetWidth(width)

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.titleInput.Width = inputWidth
	m.descInput.Width = inputWidth
	for i := range m.stepInputs {
		m.stepInputs[i].Width = inputWidth
	}
	m.docInput.SetWidth(inputWidth)
}

// updateWidgets forwards a message to the animated widgets.
func (m *Model) updateWidgets(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	switch m.view {
	case viewEditor:
		cmds = append(cmds, m.updateEditorInputs(msg))
	case viewSuggest:
		m.docInput, cmd = m.docInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl-C always quits, regardless of view or focus.
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.view {
	case viewList:
		return m.handleListKey(msg)
	case viewEditor:
		return m.handleEditorKey(msg)
	case viewSuggest:
		return m.handleSuggestKey(msg)
	}
	return m, nil
}

// -----------------------------------------------------------------------------
// List view
// -----------------------------------------------------------------------------

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key other than a repeated delete clears the pending confirmation.
	if m.confirmDelete != 0 && !key.Matches(msg, m.keys.Delete) {
		m.confirmDelete = 0
		m.statusBar.Clear()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.plans)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.New):
		m.editor.StartCreate()
		m.openEditor()
		m.statusBar.SetMessage("Creating a new plan")

	case key.Matches(msg, m.keys.Edit):
		plan, ok := m.selectedPlan()
		if !ok {
			break
		}
		m.editor.StartEdit(plan)
		m.openEditor()
		m.statusBar.SetMessage(fmt.Sprintf("Editing plan %d", plan.ID))

	case key.Matches(msg, m.keys.Delete):
		if m.busy {
			break
		}
		plan, ok := m.selectedPlan()
		if !ok {
			break
		}
		if m.confirmDelete != plan.ID {
			m.confirmDelete = plan.ID
			m.statusBar.SetMessage(fmt.Sprintf("Delete %q? Press d again to confirm", plan.Title))
			break
		}
		m.busy = true
		m.statusBar.SetMessage("Deleting...")
		return m, m.deletePlanCmd(plan.ID)

	case key.Matches(msg, m.keys.Reload):
		if m.busy {
			break
		}
		m.busy = true
		m.statusBar.SetMessage("Reloading plans...")
		return m, m.loadPlansCmd()

	case key.Matches(msg, m.keys.Suggest):
		m.openSuggest()
	}

	return m, nil
}

// -----------------------------------------------------------------------------
// Editor view
// -----------------------------------------------------------------------------

func (m *Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The submit command owns the editor until its result message lands;
	// every branch below mutates the draft, so ignore input meanwhile.
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor.Cancel()
		m.view = viewList
		m.statusBar.SetMessage("Edit cancelled")
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.flushInputs()
		draft := m.editor.Draft()
		if !draft.HasTitle() {
			m.statusBar.SetError("A plan needs a title before it can be saved")
			return m, nil
		}
		m.busy = true
		m.statusBar.SetMessage("Saving...")
		return m, m.submitDraftCmd()

	case key.Matches(msg, m.keys.AddStep):
		m.flushInputs()
		m.editor.AddStep()
		m.syncEditorInputs()
		m.focus = m.lastFocus()
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.DeleteStep):
		step := m.focusedStep()
		if step < 0 {
			return m, nil
		}
		m.flushInputs()
		m.editor.DeleteStep(step)
		m.syncEditorInputs()
		return m, nil

	case key.Matches(msg, m.keys.Suggest) && msg.String() == "ctrl+g":
		m.openSuggest()
		return m, nil

	case msg.String() == "enter", key.Matches(msg, m.keys.NextField):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.moveFocus(-1)
		return m, nil
	}

	return m, m.updateEditorInputs(msg)
}

// moveFocus cycles the editor focus by delta, wrapping at both ends.
func (m *Model) moveFocus(delta int) {
	m.flushInputs()

	last := m.lastFocus()
	m.focus += delta
	if m.focus > last {
		m.focus = focusTitle
	}
	if m.focus < focusTitle {
		m.focus = last
	}
	m.applyFocus()
}

// flushInputs pushes the widget values into the editor draft.
func (m *Model) flushInputs() {
	m.editor.SetTitle(m.titleInput.Value())
	m.editor.SetDescription(m.descInput.Value())
	for i := range m.stepInputs {
		m.editor.UpdateStep(i, m.stepInputs[i].Value())
	}
}

// updateEditorInputs forwards a message to the focused editor input.
func (m *Model) updateEditorInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.focus == focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case m.focus == focusDesc:
		m.descInput, cmd = m.descInput.Update(msg)
	default:
		if i := m.focusedStep(); i >= 0 {
			m.stepInputs[i], cmd = m.stepInputs[i].Update(msg)
		}
	}
	return cmd
}

// -----------------------------------------------------------------------------
// Suggest view
// -----------------------------------------------------------------------------

// openSuggest switches to the suggestion view, remembering where to return.
func (m *Model) openSuggest() {
	m.returnView = m.view
	m.view = viewSuggest
	m.docInput.Focus()
	m.statusBar.SetMessage("Describe what to test, then C-s to generate")
}

func (m *Model) handleSuggestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Leaving the view does not cancel an in-flight request; a late
		// response still settles the session and is announced in the
		// status bar. A newer Begin makes it stale instead.
		m.docInput.Blur()
		m.view = m.returnView
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		token, ok := m.session.Begin(m.docInput.Value())
		if !ok {
			m.statusBar.SetError("Enter a document before requesting suggestions")
			return m, nil
		}
		m.statusBar.Clear()
		return m, tea.Batch(
			m.spinner.Start(),
			m.requestSuggestionCmd(token, m.docInput.Value()),
		)

	case key.Matches(msg, m.keys.Import) && m.session.Settled():
		m.editor.ImportSuggestion(m.session.Result())
		m.openEditor()
		m.statusBar.SetMessage("Suggestion imported - review and C-s to save")
		return m, nil
	}

	if m.session.Pending() {
		// The document is locked while a request runs; editing it would
		// only invite confusion about what the pending request contains.
		return m, nil
	}

	var cmd tea.Cmd
	m.docInput, cmd = m.docInput.Update(msg)
	return m, cmd
}
