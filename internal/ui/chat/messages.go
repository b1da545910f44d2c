// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/taxchat-tui/internal/taxapi"

// ReplyMsg carries the outcome of a chat request back into the update loop.
type ReplyMsg struct {
	Question string
	Response *taxapi.ChatResponse
	Err      error
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Err error
}
