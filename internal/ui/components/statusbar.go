// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/planrun-tui/internal/ui/styles"
	"github.com/jeranaias/planrun-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar renders the single-line bar at the bottom of the TUI: a status
// message on the left and the active key shortcuts on the right.
type StatusBar struct {
	width int

	message string
	isError bool

	shortcuts []Shortcut
}

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// NewStatusBar creates a status bar with no message.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth updates the render width.
func (b *StatusBar) SetWidth(width int) {
	b.width = width
}

// SetMessage sets an informational message.
func (b *StatusBar) SetMessage(msg string) {
	b.message = msg
	b.isError = false
}

// SetError sets an error message. It stays until replaced or cleared.
func (b *StatusBar) SetError(msg string) {
	b.message = msg
	b.isError = true
}

// Clear removes the current message.
func (b *StatusBar) Clear() {
	b.message = ""
	b.isError = false
}

// SetShortcuts replaces the shortcut hints.
func (b *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	b.shortcuts = shortcuts
}

// View renders the status bar.
func (b *StatusBar) View(theme *styles.Theme) string {
	var hints []string
	for _, s := range b.shortcuts {
		hints = append(hints, theme.ShortcutKey.Render(s.Key)+" "+theme.ShortcutDesc.Render(s.Desc))
	}
	right := strings.Join(hints, "  ")

	// Truncate the message before the shortcuts, not the other way round.
	msg := b.message
	if b.width > 0 {
		gap := b.width - lipgloss.Width(right) - 4
		if gap < 0 {
			gap = 0
		}
		msg = util.TruncateWidth(msg, gap)
	}

	var left string
	switch {
	case b.isError:
		left = theme.StatusError.Render(msg)
	case msg != "":
		left = theme.StatusInfo.Render(msg)
	}

	if b.width <= 0 {
		return theme.StatusBar.Render(left + "  " + right)
	}

	pad := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}

	return theme.StatusBar.Render(left + strings.Repeat(" ", pad) + right)
}
