// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calculator

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
)

// Title is the panel heading.
const Title = "Quick Tax Estimate"

// View renders the panel inside its border.
func (p *Panel) View() string {
	rows := []string{p.theme.PanelTitle.Render(Title)}

	for f := FieldIncome; f < fieldCount; f++ {
		label := p.theme.FieldLabel
		if p.focused && f == p.focus {
			label = p.theme.FieldLabelFocused
		}
		rows = append(rows, label.Render(fieldLabels[f]))
		if f == FieldRegime {
			rows = append(rows, p.viewRegime())
			continue
		}
		rows = append(rows, p.inputs[f].View())
	}

	rows = append(rows, "", p.viewButton())

	if p.result != nil {
		rows = append(rows, "")
		rows = append(rows, p.viewResult(*p.result)...)
	}

	box := p.theme.Panel
	if p.focused {
		box = p.theme.PanelFocused
	}
	if p.width > 2 {
		box = box.Width(p.width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Overlay draws the failure alert over base when it is visible.
func (p *Panel) Overlay(base string) string {
	return p.alert.Overlay(base, p.theme)
}

func (p *Panel) viewRegime() string {
	option := func(r taxapi.Regime, label string) string {
		if p.regime == r {
			return p.theme.RegimeSelected.Render("(•) " + label)
		}
		return p.theme.RegimeOption.Render("( ) " + label)
	}
	return "  " + option(taxapi.RegimeNew, "New") + "  " + option(taxapi.RegimeOld, "Old")
}

func (p *Panel) viewButton() string {
	switch {
	case p.loading:
		return p.theme.ButtonDisabled.Render(p.spinner.View() + " Calculating...")
	case !p.Form().CanCalculate():
		return p.theme.ButtonDisabled.Render("[ Calculate ]")
	default:
		return p.theme.Button.Render("[ Calculate ]")
	}
}

func (p *Panel) viewResult(r taxapi.CalcResult) []string {
	lines := calc.ResultLines(r)
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		value := p.theme.ResultValue
		if i == len(lines)-1 {
			value = p.theme.ResultTotal
		}
		out = append(out, p.theme.ResultLabel.Render(l.Label+": ")+value.Render(l.Value))
	}
	return out
}
