// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest turns free-text documents into draft test plans.
package suggest

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/planrun-tui/internal/model"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// State is the lifecycle tag of the suggestion session.
type State int

const (
	// StateIdle - no request has been made yet.
	StateIdle State = iota

	// StatePending - a request is in flight; any prior result is cleared.
	StatePending

	// StateSucceeded - the most recent request produced a result.
	StateSucceeded

	// StateFailed - the most recent request failed; the result holds the
	// fixed placeholder content.
	StateFailed
)

// String returns the string representation of a session state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePending:
		return "Pending"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session tracks one in-flight AI suggestion request.
//
// The session itself performs no I/O. Begin hands the caller a request
// token and the document to send; the caller runs the generator however it
// likes (a tea.Cmd in the TUI, a plain call in the CLI) and reports back
// through Resolve. Only the token of the most recent Begin can settle the
// session - responses to superseded requests are dropped on arrival. That
// is the one ordering guarantee the session enforces; there is no retry,
// no backoff, and no hard cancellation of an abandoned request.
//
// Session is not safe for concurrent use; like the plan store it lives on
// the TUI's single event loop.
type Session struct {
	state   State
	result  model.SuggestionResult
	current string // token of the most recent request, "" when none
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	return s.state == StatePending
}

// Settled reports whether the session holds a displayable result.
func (s *Session) Settled() bool {
	return s.state == StateSucceeded || s.state == StateFailed
}

// Result returns the current result. It is only meaningful once the
// session has settled; importing it while Pending is a caller error that
// the editor layer guards against.
func (s *Session) Result() model.SuggestionResult {
	r := s.result
	if s.result.Steps != nil {
		r.Steps = make([]string, len(s.result.Steps))
		copy(r.Steps, s.result.Steps)
	}
	return r
}

// Begin starts a new suggestion request for the given document text.
//
// Empty or all-whitespace input is a no-op: no token is issued and the
// session state does not change. Otherwise the session transitions to
// Pending, any previous result is cleared immediately, and the returned
// token identifies the one request allowed to settle the session.
func (s *Session) Begin(document string) (token string, ok bool) {
	if strings.TrimSpace(document) == "" {
		return "", false
	}

	s.state = StatePending
	s.result = model.SuggestionResult{}
	s.current = uuid.New().String()
	return s.current, true
}

// Resolve delivers the outcome of a request. Responses whose token does
// not match the most recent Begin are stale and ignored; Resolve reports
// whether the session state changed.
//
// A nil err settles to Succeeded with the given result. A non-nil err
// settles to Failed with the fixed placeholder, never the error text.
func (s *Session) Resolve(token string, result model.SuggestionResult, err error) bool {
	if token == "" || token != s.current {
		return false
	}

	if err != nil {
		s.state = StateFailed
		s.result = model.PlaceholderResult()
		return true
	}

	s.state = StateSucceeded
	s.result = result
	return true
}
