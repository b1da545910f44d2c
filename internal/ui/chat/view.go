// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the panel inside its border.
func (p *Panel) View() string {
	title := p.theme.PanelTitle.Render("Chat")

	var status string
	switch {
	case p.sending:
		status = p.spinner.View() + " " + p.theme.BusyText.Render("Sending...")
	case p.status != "":
		status = p.theme.ShortcutDesc.Render(p.status)
	default:
		status = p.theme.ShortcutDesc.Render(" ")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		p.viewport.View(),
		status,
		p.input.View(),
	)

	box := p.theme.Panel
	if p.focused {
		box = p.theme.PanelFocused
	}
	if p.width > 2 {
		box = box.Width(p.width - 2)
	}
	return box.Render(body)
}
