// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calculator

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/taxchat-tui/internal/ui/components"
)

// KeyMap defines the keyboard bindings of the calculator panel.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Toggle    key.Binding
	Calculate key.Binding
}

// DefaultKeyMap returns the default key bindings for the calculator panel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("left", "right", " "),
			key.WithHelp("←/→", "regime"),
		),
		Calculate: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "calculate"),
		),
	}
}

// Shortcuts returns footer hints for the enabled bindings.
func (k KeyMap) Shortcuts() []components.Shortcut {
	var out []components.Shortcut
	for _, b := range []key.Binding{k.Calculate, k.Next, k.Toggle} {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}
