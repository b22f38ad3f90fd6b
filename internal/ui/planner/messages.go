// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - Bubble Tea messages passed back from async commands.

package planner

import (
	"github.com/jeranaias/planrun-tui/internal/model"
)

// plansLoadedMsg reports the result of a store Load. Plans is the store
// snapshot taken after the call; on error it is the previous list.
type plansLoadedMsg struct {
	plans []model.Plan
	err   error
}

// planSavedMsg reports the result of an editor Submit.
type planSavedMsg struct {
	saved model.Plan
	plans []model.Plan
	err   error
}

// planDeletedMsg reports the result of a store Delete.
type planDeletedMsg struct {
	id    int64
	plans []model.Plan
	err   error
}

// suggestionMsg delivers the outcome of one suggestion request. The token
// identifies which Begin it answers; the session drops it if a newer
// request has started since.
type suggestionMsg struct {
	token  string
	result model.SuggestionResult
	err    error
}
