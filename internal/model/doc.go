// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// # Key Types
//
//   - Message: Single message with role and content (plus a UUID and
//     timestamp used only for rendering)
//   - Transcript: Ordered, append-only message sequence seeded with the
//     assistant welcome message; lives only for the session
//   - Role: "user" or "assistant"
//
// # Usage
//
//	tr := model.NewTranscript()
//	tr.AppendUser("What are the new regime slab rates?")
//	tr.AppendAssistant(reply)
package model
