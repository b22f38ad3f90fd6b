// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - The planner TUI state machine.

package planner

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/planrun-tui/internal/backend"
	"github.com/jeranaias/planrun-tui/internal/editor"
	"github.com/jeranaias/planrun-tui/internal/model"
	"github.com/jeranaias/planrun-tui/internal/planstore"
	"github.com/jeranaias/planrun-tui/internal/suggest"
	"github.com/jeranaias/planrun-tui/internal/ui/components"
	"github.com/jeranaias/planrun-tui/internal/ui/styles"
)

// =============================================================================
// VIEWS
// =============================================================================

// view identifies which screen the planner is showing.
type view int

const (
	viewList view = iota
	viewEditor
	viewSuggest
)

// Editor focus slots. Steps start at focusSteps; step i is focusSteps+i.
const (
	focusTitle = 0
	focusDesc  = 1
	focusSteps = 2
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the top-level Bubble Tea model for the planner.
type Model struct {
	keys  KeyMap
	theme *styles.Theme

	store     *planstore.Store
	editor    *editor.Editor
	session   *suggest.Session
	generator Generator

	view view

	// returnView is where Esc from the suggest view goes back to.
	returnView view

	// busy is true while a store mutation or load is in flight. Input that
	// would start another one is ignored until the result message lands.
	busy bool

	quitting bool

	// List state. plans is the snapshot from the last store message; the
	// cursor indexes into it.
	plans         []model.Plan
	cursor        int
	confirmDelete int64 // plan id awaiting delete confirmation, 0 = none

	// Editor inputs, rebuilt whenever the draft is replaced wholesale.
	titleInput textinput.Model
	descInput  textinput.Model
	stepInputs []textinput.Model
	focus      int

	// Suggestion state.
	docInput textarea.Model
	spinner  components.Spinner

	statusBar *components.StatusBar

	width  int
	height int
}

// New creates a planner model over the given plan API client.
func New(client *backend.Client) *Model {
	return newModel(client, backendGenerator{client: client})
}

// newModel wires the model from its collaborators. Tests inject fakes here.
func newModel(pb planstore.Backend, generator Generator) *Model {
	store := planstore.New(pb)

	title := textinput.New()
	title.Placeholder = "Plan title"
	title.CharLimit = 200
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500

	doc := textarea.New()
	doc.Placeholder = "Paste a requirements document, or describe the feature to test..."
	doc.CharLimit = 0
	doc.SetHeight(8)

	return &Model{
		keys:      DefaultKeyMap(),
		theme:     styles.NewTheme(),
		store:     store,
		editor:    editor.New(store),
		session:   suggest.NewSession(),
		generator: generator,

		view:       viewList,
		titleInput: title,
		descInput:  desc,
		docInput:   doc,
		spinner:    components.NewSuggestSpinner(),
		statusBar:  components.NewStatusBar(),
	}
}

// WithGenerator overrides the suggestion collaborator. Tests use this; the
// CLI uses it to wire a local Ollama generator when no server is running.
func (m *Model) WithGenerator(g Generator) *Model {
	m.generator = g
	return m
}

// Init loads the plan list and starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	m.busy = true
	m.statusBar.SetMessage("Loading plans...")
	return tea.Batch(m.loadPlansCmd(), textinput.Blink)
}

// =============================================================================
// LIST HELPERS
// =============================================================================

// selectedPlan returns the plan under the cursor.
func (m *Model) selectedPlan() (model.Plan, bool) {
	if m.cursor < 0 || m.cursor >= len(m.plans) {
		return model.Plan{}, false
	}
	return m.plans[m.cursor], true
}

// setPlans replaces the list snapshot and clamps the cursor.
func (m *Model) setPlans(plans []model.Plan) {
	m.plans = plans
	if m.cursor >= len(m.plans) {
		m.cursor = len(m.plans) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// =============================================================================
// EDITOR INPUT SYNC
// =============================================================================

// syncEditorInputs rebuilds the input widgets from the current draft.
// Called when the draft is replaced wholesale (start edit, import, step
// add/remove), not on every keystroke.
func (m *Model) syncEditorInputs() {
	draft := m.editor.Draft()

	m.titleInput.SetValue(draft.Title)
	m.descInput.SetValue(draft.Description)

	m.stepInputs = make([]textinput.Model, len(draft.Steps))
	for i, step := range draft.Steps {
		in := textinput.New()
		in.Placeholder = "Step description"
		in.CharLimit = 500
		in.SetValue(step.Description)
		m.stepInputs[i] = in
	}

	if m.focus > m.lastFocus() {
		m.focus = m.lastFocus()
	}
	m.applyFocus()
}

// lastFocus returns the highest valid focus slot.
func (m *Model) lastFocus() int {
	return focusSteps + len(m.stepInputs) - 1
}

// applyFocus focuses the input for the current slot and blurs the rest.
func (m *Model) applyFocus() {
	m.titleInput.Blur()
	m.descInput.Blur()
	for i := range m.stepInputs {
		m.stepInputs[i].Blur()
	}

	switch {
	case m.focus == focusTitle:
		m.titleInput.Focus()
	case m.focus == focusDesc:
		m.descInput.Focus()
	case m.focus >= focusSteps && m.focus-focusSteps < len(m.stepInputs):
		m.stepInputs[m.focus-focusSteps].Focus()
	}
}

// focusedStep returns the step index for the current focus slot, or -1 if
// a non-step field is focused.
func (m *Model) focusedStep() int {
	if m.focus < focusSteps || m.focus-focusSteps >= len(m.stepInputs) {
		return -1
	}
	return m.focus - focusSteps
}

// openEditor switches to the editor view with the given draft already
// loaded into the editor.
func (m *Model) openEditor() {
	m.view = viewEditor
	m.focus = focusTitle
	m.syncEditorInputs()
}
