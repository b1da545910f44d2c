// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/taxchat-tui/internal/model"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
)

// errNoClient is reported when the panel was built without a backend.
var errNoClient = errors.New("no chat client configured")

// questionPreviewLen caps how much of a question reaches the debug log.
const questionPreviewLen = 60

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SendCmd posts question to the backend and reports the outcome as a ReplyMsg.
// There is no timeout: the command returns when the call resolves or fails.
func SendCmd(client Chatter, question string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ReplyMsg{Question: question, Err: errNoClient}
		}
		resp, err := client.Chat(context.Background(), question)
		return ReplyMsg{Question: question, Response: resp, Err: err}
	}
}

// copyCmd writes text to the clipboard.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: write(text)}
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init returns the initial command.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// Focus gives the panel keyboard focus.
func (p *Panel) Focus() tea.Cmd {
	p.focused = true
	if p.sending {
		return nil
	}
	return p.input.Focus()
}

// Blur removes keyboard focus.
func (p *Panel) Blur() {
	p.focused = false
	p.input.Blur()
}

// Update handles messages. Key presses are only processed while focused;
// replies are applied regardless.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ReplyMsg:
		return p.handleReply(msg)

	case CopiedMsg:
		if msg.Err != nil {
			p.log.Warn().Err(msg.Err).Msg("clipboard copy failed")
			p.status = "Clipboard unavailable"
		} else {
			p.status = "Copied last reply"
		}
		return nil

	case spinner.TickMsg:
		if !p.sending {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !p.focused {
			return nil
		}
		return p.handleKey(msg)
	}

	// cursor blink
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *Panel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Submit):
		return p.Submit()

	case key.Matches(msg, p.keys.PageUp):
		p.viewport.ViewUp()
		return nil

	case key.Matches(msg, p.keys.PageDown):
		p.viewport.ViewDown()
		return nil

	case key.Matches(msg, p.keys.Copy):
		last, ok := p.transcript.LastAssistant()
		if !ok {
			return nil
		}
		return copyCmd(p.clipboard, last.Content)
	}

	if p.sending {
		return nil
	}
	p.status = ""
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// Submit sends the current input as typed. Blank input and submits while a
// request is outstanding are ignored and return nil.
func (p *Panel) Submit() tea.Cmd {
	if p.sending {
		return nil
	}
	text := p.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	msg := p.transcript.AppendUser(text)
	p.log.Debug().Str("id", msg.ID).Str("question", msg.Preview(questionPreviewLen)).Msg("chat submit")
	p.input.Reset()
	p.input.Blur()
	p.sending = true
	p.status = ""

	return tea.Batch(SendCmd(p.client, text), p.spinner.Tick)
}

// handleReply appends the reply, or the fallback text on any failure, and
// re-enables the input.
func (p *Panel) handleReply(msg ReplyMsg) tea.Cmd {
	p.sending = false

	switch {
	case msg.Err != nil:
		p.logFailure(msg.Err)
		p.transcript.AppendAssistant(model.FallbackText)
	case msg.Response == nil:
		p.logFailure(taxapi.ErrInvalidResponse)
		p.transcript.AppendAssistant(model.FallbackText)
	default:
		p.transcript.AppendAssistant(msg.Response.Reply)
	}

	if p.focused {
		return p.input.Focus()
	}
	return nil
}

func (p *Panel) logFailure(err error) {
	ev := p.log.Error().Err(err).Str("endpoint", taxapi.ChatPath)
	var ce *taxapi.ClientError
	if errors.As(err, &ce) {
		ev = ev.Str("kind", ce.Type.String())
	}
	ev.Msg("chat request failed")
}
