// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calculator

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
)

var errNoClient = errors.New("no calculator client configured")

// numericRunes are the characters a number field accepts.
const numericRunes = "0123456789.-eE"

// CalcCmd posts req to the backend and reports the outcome as a ResultMsg.
func CalcCmd(client Calculator, req taxapi.CalcRequest) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ResultMsg{Request: req, Err: errNoClient}
		}
		res, err := client.Calc(context.Background(), req)
		return ResultMsg{Request: req, Result: res, Err: err}
	}
}

// Init returns the initial command.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// Focus gives the panel keyboard focus.
func (p *Panel) Focus() tea.Cmd {
	p.focused = true
	return p.focusField(p.focus)
}

// Blur removes keyboard focus.
func (p *Panel) Blur() {
	p.focused = false
	for _, ti := range p.inputs {
		ti.Blur()
	}
}

func (p *Panel) focusField(f Field) tea.Cmd {
	p.focus = f
	for _, ti := range p.inputs {
		ti.Blur()
	}
	if ti, ok := p.inputs[f]; ok && p.focused {
		return ti.Focus()
	}
	return nil
}

// Update handles messages. While the alert is visible it receives every key
// press, whether or not the panel is focused.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	if p.alert.IsVisible() {
		var (
			cmd     tea.Cmd
			handled bool
		)
		p.alert, cmd, handled = p.alert.Update(msg)
		if handled {
			return cmd
		}
	}

	switch msg := msg.(type) {
	case ResultMsg:
		p.handleResult(msg)
		return nil

	case components.AlertDismissedMsg:
		return nil

	case spinner.TickMsg:
		if !p.loading {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !p.focused {
			return nil
		}
		return p.handleKey(msg)
	}

	// cursor blink for the focused text field
	if ti, ok := p.inputs[p.focus]; ok {
		updated, cmd := ti.Update(msg)
		*ti = updated
		return cmd
	}
	return nil
}

func (p *Panel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Calculate):
		return p.Calculate()

	case key.Matches(msg, p.keys.Next):
		return p.focusField((p.focus + 1) % fieldCount)

	case key.Matches(msg, p.keys.Prev):
		return p.focusField((p.focus + fieldCount - 1) % fieldCount)
	}

	if p.focus == FieldRegime {
		if key.Matches(msg, p.keys.Toggle) {
			form := p.Form()
			form.ToggleRegime()
			p.regime = form.Regime
		}
		return nil
	}

	ti, ok := p.inputs[p.focus]
	if !ok {
		return nil
	}
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !strings.ContainsRune(numericRunes, r) {
				return nil
			}
		}
	}
	updated, cmd := ti.Update(msg)
	*ti = updated
	return cmd
}

// Calculate starts a calculation. It returns nil when the form is not
// calculable or a calculation is already in flight.
func (p *Panel) Calculate() tea.Cmd {
	if p.loading {
		return nil
	}
	req, err := p.Form().Request()
	if err != nil {
		return nil
	}

	p.loading = true
	return tea.Batch(CalcCmd(p.client, req), p.spinner.Tick)
}

// handleResult stores a successful result and fires the callback, or shows
// the failure alert and keeps the previous result.
func (p *Panel) handleResult(msg ResultMsg) {
	p.loading = false

	err := msg.Err
	if err == nil && msg.Result == nil {
		err = taxapi.ErrInvalidResponse
	}
	if err != nil {
		p.logFailure(err)
		p.alert.Show(calc.FailureText)
		return
	}

	res := *msg.Result
	p.result = &res
	p.log.Info().Str("regime", res.Regime).Float64("total_tax", res.TotalTax).Msg("calculation finished")
	if p.onCalculated != nil {
		p.onCalculated(res)
	}
}

func (p *Panel) logFailure(err error) {
	ev := p.log.Error().Err(err).Str("endpoint", taxapi.CalcPath)
	var ce *taxapi.ClientError
	if errors.As(err, &ce) {
		ev = ev.Str("kind", ce.Type.String())
	}
	ev.Msg("calculation failed")
}
