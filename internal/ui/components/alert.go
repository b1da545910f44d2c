// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
	"github.com/jeranaias/taxchat-tui/internal/util"
)

// =============================================================================
// ALERT MODAL
// =============================================================================

// Alert is a blocking modal. While visible it consumes every key press;
// only Enter or Esc dismiss it.
type Alert struct {
	title   string
	message string
	visible bool

	width  int
	height int
}

// NewAlert creates a hidden alert with the given title.
func NewAlert(title string) Alert {
	return Alert{title: title}
}

// Show displays message in the alert.
func (a *Alert) Show(message string) {
	a.message = message
	a.visible = true
}

// Hide dismisses the alert.
func (a *Alert) Hide() {
	a.visible = false
}

// IsVisible returns whether the alert is showing.
func (a Alert) IsVisible() bool {
	return a.visible
}

// Message returns the current alert text.
func (a Alert) Message() string {
	return a.message
}

// SetSize sets the area the alert is centered in.
func (a *Alert) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// AlertDismissedMsg is emitted when the user closes the alert.
type AlertDismissedMsg struct{}

// Update handles key presses while the alert is visible. The returned bool
// reports whether msg was consumed.
func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd, bool) {
	if !a.visible {
		return a, nil, false
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil, false

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			a.Hide()
			return a, func() tea.Msg { return AlertDismissedMsg{} }, true
		case tea.KeyCtrlC:
			// quitting stays possible
			return a, nil, false
		}
		return a, nil, true
	}

	return a, nil, false
}

// View renders the alert box, or "" when hidden.
func (a Alert) View(theme *styles.Theme) string {
	if !a.visible {
		return ""
	}

	maxWidth := a.width - 8
	if maxWidth < 30 {
		maxWidth = 30
	}
	if maxWidth > 60 {
		maxWidth = 60
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.AlertTitle.Render(styles.StatusIndicators.Error+" "+a.title),
		"",
		theme.AlertMessage.Render(util.WrapText(a.message, maxWidth-8)),
		"",
		theme.AlertHint.Render("Press Enter to dismiss"),
	)
	return theme.AlertBox.Render(body)
}

// Overlay centers the alert over the full screen. When hidden it returns
// base unchanged.
func (a Alert) Overlay(base string, theme *styles.Theme) string {
	if !a.visible {
		return base
	}
	if a.width == 0 || a.height == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, base, a.View(theme))
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.View(theme),
		lipgloss.WithWhitespaceChars(" "))
}
