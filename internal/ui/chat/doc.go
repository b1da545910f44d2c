// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel of the TUI.
//
// The panel owns a model.Transcript seeded with the welcome message, a
// viewport showing it and a single-line input. Enter sends the input through
// SendCmd; the reply comes back as a ReplyMsg and is appended inside Update,
// so all transcript changes happen on the Bubble Tea update loop.
//
// # Failure Handling
//
// Any failure (connection, malformed body, missing reply) appends
// model.FallbackText and writes one error event to the log. The error never
// leaves the panel.
//
// # Usage
//
//	panel := chat.New(chat.Config{Client: client, Theme: theme})
//	panel.SetSize(80, 30)
//	cmd := panel.Update(msg)
package chat
