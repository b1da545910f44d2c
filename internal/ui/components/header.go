// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
	"github.com/jeranaias/taxchat-tui/internal/util"
)

// Fixed page texts.
const (
	AppTitle    = "India Tax Chatbot"
	AppSubtitle = "Demo – Informational only"
	FooterText  = "For education only. Consult a professional for advice."
)

// Header renders the title bar across width columns.
func Header(theme *styles.Theme, width int) string {
	title := theme.HeaderTitle.Render(AppTitle)
	subtitle := theme.HeaderSubtitle.Render(AppSubtitle)

	// border (2) + padding (4)
	inner := width - 6
	if inner < 0 {
		inner = 0
	}

	gap := inner - lipgloss.Width(title) - lipgloss.Width(subtitle)
	var content string
	if gap >= 2 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), subtitle)
	} else {
		// stacked, each line cut to fit
		title = theme.HeaderTitle.Render(util.TruncateWidth(AppTitle, inner))
		subtitle = theme.HeaderSubtitle.Render(util.TruncateWidth(AppSubtitle, inner))
		content = lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	}

	return theme.Header.Width(inner + 4).Render(content)
}

// Shortcut is one key hint in the footer.
type Shortcut struct {
	Key  string
	Desc string
}

// Footer renders the disclaimer and, below it, the key hints.
func Footer(theme *styles.Theme, width int, shortcuts []Shortcut) string {
	var line string
	for i, s := range shortcuts {
		if i > 0 {
			line += theme.ShortcutDesc.Render("  ")
		}
		line += theme.ShortcutKey.Render(s.Key) + " " + theme.ShortcutDesc.Render(s.Desc)
	}

	text := FooterText
	if width > 0 {
		text = util.TruncateWidth(text, width-theme.Footer.GetHorizontalFrameSize())
	}
	disclaimer := theme.Footer.Render(text)
	if line == "" {
		return disclaimer
	}
	keys := theme.StatusBar.MaxWidth(width).Render(line)
	return lipgloss.JoinVertical(lipgloss.Left, disclaimer, keys)
}
