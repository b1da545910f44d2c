// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/taxchat-tui/internal/ui/components"
)

// KeyMap defines the keyboard bindings of the chat panel.
type KeyMap struct {
	Submit   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Copy     key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat panel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy reply"),
		),
	}
}

// Shortcuts returns footer hints for the enabled bindings.
func (k KeyMap) Shortcuts() []components.Shortcut {
	var out []components.Shortcut
	for _, b := range []key.Binding{k.Submit, k.PageUp, k.PageDown, k.Copy} {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}
