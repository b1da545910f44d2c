// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application-wide bindings.
type KeyMap struct {
	SwitchFocus key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default application bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchFocus: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "switch panel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
