// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/taxchat-tui/internal/model"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
	"github.com/jeranaias/taxchat-tui/internal/util"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// MarkdownRenderer renders assistant replies with glamour. The underlying
// renderer depends on the wrap width, so one is built per width and reused.
// Not safe for concurrent use.
type MarkdownRenderer struct {
	style   string
	profile termenv.Profile
	enabled bool

	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer using a glamour standard style
// ("dark", "light", "notty"). When enabled is false, Render only wraps.
func NewMarkdownRenderer(style string, profile termenv.Profile, enabled bool) *MarkdownRenderer {
	return &MarkdownRenderer{style: style, profile: profile, enabled: enabled}
}

// Enabled reports whether markdown rendering is on.
func (r *MarkdownRenderer) Enabled() bool {
	return r != nil && r.enabled
}

// Render formats content for the given width. Rendering failures fall back
// to plain wrapped text; the stored content is never altered.
func (r *MarkdownRenderer) Render(content string, width int) string {
	if width < 10 {
		width = 10
	}
	if !r.Enabled() {
		return util.WrapText(content, width)
	}

	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithColorProfile(r.profile),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return util.WrapText(content, width)
		}
		r.renderer = tr
		r.width = width
	}

	out, err := r.renderer.Render(content)
	if err != nil {
		return util.WrapText(content, width)
	}
	return trimBlankLines(out)
}

// trimBlankLines drops the blank lines glamour puts around documents.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders one transcript entry: a role label above a bordered
// box. User text is shown verbatim; assistant text goes through the
// markdown renderer.
type MessageBubble struct {
	Message model.Message
	Width   int

	theme    *styles.Theme
	markdown *MarkdownRenderer
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg model.Message, theme *styles.Theme, md *MarkdownRenderer) *MessageBubble {
	return &MessageBubble{
		Message:  msg,
		Width:    80,
		theme:    theme,
		markdown: md,
	}
}

// SetWidth sets the total width available to the bubble.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	// border (2) + padding (2)
	inner := b.Width - 4
	if inner < 10 {
		inner = 10
	}

	label := b.theme.RoleLabel.Render(b.Message.Role.DisplayName())

	var body string
	var box lipgloss.Style
	if b.Message.IsUser() {
		body = util.WrapText(b.Message.Content, inner)
		box = b.theme.UserBubble
	} else {
		body = b.markdown.Render(b.Message.Content, inner)
		box = b.theme.AssistantBubble
	}

	rendered := lipgloss.JoinVertical(lipgloss.Left, label, box.Render(body))
	if b.Message.IsUser() {
		return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, rendered)
	}
	return rendered
}

// RenderTranscript renders every message in order, separated by blank lines.
func RenderTranscript(msgs []model.Message, width int, theme *styles.Theme, md *MarkdownRenderer) string {
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		bubble := NewMessageBubble(msg, theme, md)
		bubble.SetWidth(width)
		parts = append(parts, bubble.View())
	}
	return strings.Join(parts, "\n\n")
}
