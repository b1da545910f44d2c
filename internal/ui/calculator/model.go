// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calculator

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

// Calculator runs one calculation on the backend.
// *taxapi.Client satisfies it.
type Calculator interface {
	Calc(ctx context.Context, req taxapi.CalcRequest) (*taxapi.CalcResult, error)
}

// Config holds the dependencies of a Panel.
type Config struct {
	Client Calculator
	Theme  *styles.Theme
	Logger *zerolog.Logger

	// Form is the initial field content (default: calc.DefaultForm)
	Form *calc.Form

	// OnCalculated is invoked once per successful calculation
	OnCalculated func(taxapi.CalcResult)
}

// Field identifies a focusable control, in display order.
type Field int

const (
	FieldIncome Field = iota
	FieldRegime
	Field80C
	Field80D
	FieldOther
	fieldCount
)

// fieldLabels are shown above each control.
var fieldLabels = [fieldCount]string{
	FieldIncome: "Annual Income (₹)",
	FieldRegime: "Regime",
	Field80C:    "80C Deductions (old)",
	Field80D:    "80D Deductions (old)",
	FieldOther:  "Other Deductions (old)",
}

// Panel is the quick calculator.
type Panel struct {
	client Calculator

	inputs map[Field]*textinput.Model
	regime taxapi.Regime
	focus  Field

	spinner spinner.Model
	alert   components.Alert
	keys    KeyMap

	theme        *styles.Theme
	log          zerolog.Logger
	onCalculated func(taxapi.CalcResult)

	loading bool
	focused bool
	result  *taxapi.CalcResult

	width  int
	height int
}

// New creates a calculator panel.
func New(cfg Config) *Panel {
	theme := cfg.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	form := calc.DefaultForm()
	if cfg.Form != nil {
		form = *cfg.Form
	}

	p := &Panel{
		client:       cfg.Client,
		inputs:       make(map[Field]*textinput.Model, 4),
		regime:       form.Regime,
		spinner:      spinner.New(),
		alert:        components.NewAlert("Calculation failed"),
		keys:         DefaultKeyMap(),
		theme:        theme,
		log:          logger.With().Str("component", "calculator").Logger(),
		onCalculated: cfg.OnCalculated,
	}
	p.spinner.Spinner = styles.DotsSpinner.Bubble()
	p.spinner.Style = theme.Spinner

	for f, v := range map[Field]string{
		FieldIncome: form.Income,
		Field80C:    form.Deductions80C,
		Field80D:    form.Deductions80D,
		FieldOther:  form.OtherDeductions,
	} {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.PromptStyle = theme.InputPrompt
		ti.TextStyle = theme.InputText
		ti.CharLimit = 20
		ti.Placeholder = "0"
		ti.SetValue(v)
		p.inputs[f] = &ti
	}

	return p
}

// SetOnCalculated replaces the success callback.
func (p *Panel) SetOnCalculated(fn func(taxapi.CalcResult)) {
	p.onCalculated = fn
}

// Form returns the field content as typed.
func (p *Panel) Form() calc.Form {
	return calc.Form{
		Income:          p.inputs[FieldIncome].Value(),
		Regime:          p.regime,
		Deductions80C:   p.inputs[Field80C].Value(),
		Deductions80D:   p.inputs[Field80D].Value(),
		OtherDeductions: p.inputs[FieldOther].Value(),
	}
}

// SetField replaces the text of a numeric field. It is a no-op for
// FieldRegime.
func (p *Panel) SetField(f Field, value string) {
	if ti, ok := p.inputs[f]; ok {
		ti.SetValue(value)
	}
}

// SetRegime selects the regime.
func (p *Panel) SetRegime(r taxapi.Regime) {
	p.regime = r
}

// CanCalculate reports whether Calculate would start a request.
func (p *Panel) CanCalculate() bool {
	return !p.loading && p.Form().CanCalculate()
}

// Loading reports whether a calculation is in flight.
func (p *Panel) Loading() bool {
	return p.loading
}

// Result returns the last successful result, or nil.
func (p *Panel) Result() *taxapi.CalcResult {
	return p.result
}

// FocusedField returns the control that receives key presses.
func (p *Panel) FocusedField() Field {
	return p.focus
}

// Focused reports whether the panel receives key presses.
func (p *Panel) Focused() bool {
	return p.focused
}

// AlertVisible reports whether the failure alert is showing.
func (p *Panel) AlertVisible() bool {
	return p.alert.IsVisible()
}

// AlertMessage returns the text of the failure alert.
func (p *Panel) AlertMessage() string {
	return p.alert.Message()
}

// Keys returns the panel's key bindings.
func (p *Panel) Keys() KeyMap {
	return p.keys
}

// SetSize sets the outer size of the panel, border included.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height

	w := width - 4 - 3
	if w < 8 {
		w = 8
	}
	for _, ti := range p.inputs {
		ti.Width = w
	}
}

// SetScreenSize sets the area the failure alert is centered in.
func (p *Panel) SetScreenSize(width, height int) {
	p.alert.SetSize(width, height)
}
