// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

// Fixed assistant texts.
const (
	// WelcomeText seeds every new transcript.
	WelcomeText = "Welcome! I can answer questions on Indian income tax and compute quick estimates. Ask anything or use the calculator below."

	// FallbackText replaces the reply when the chat call fails for any reason.
	FallbackText = "Sorry, I could not reach the server. Please check your connection and try again."
)

// Transcript is the ordered, append-only message sequence of one session.
// It is never persisted. Transcript is not safe for concurrent use; it is
// owned by the UI update loop.
type Transcript struct {
	messages []Message

	// onChange runs after every append
	onChange func()
}

// NewTranscript creates a transcript seeded with the assistant welcome message.
func NewTranscript() *Transcript {
	return &Transcript{
		messages: []Message{NewAssistantMessage(WelcomeText)},
	}
}

// OnChange registers a function called after every append. Passing nil
// removes the hook.
func (t *Transcript) OnChange(fn func()) {
	t.onChange = fn
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
	if t.onChange != nil {
		t.onChange()
	}
}

// AppendUser creates and appends a user message.
func (t *Transcript) AppendUser(content string) Message {
	msg := NewUserMessage(content)
	t.Append(msg)
	return msg
}

// AppendAssistant creates and appends an assistant message.
func (t *Transcript) AppendAssistant(content string) Message {
	msg := NewAssistantMessage(content)
	t.Append(msg)
	return msg
}

// Messages returns a copy of the messages in insertion order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// LastAssistant returns the most recent assistant message.
func (t *Transcript) LastAssistant() (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleAssistant {
			return t.messages[i], true
		}
	}
	return Message{}, false
}
