// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func resultFrom(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if r, ok := msg.(ResultMsg); ok {
			return r
		}
	}
	t.Fatal("command produced no ResultMsg")
	return ResultMsg{}
}

func newPanel(t *testing.T, client Calculator, form *calc.Form) *Panel {
	t.Helper()
	p := New(Config{
		Client: client,
		Theme:  styles.NewTheme(styles.ModeDark),
		Form:   form,
	})
	p.SetSize(40, 30)
	p.SetScreenSize(100, 40)
	p.Focus()
	return p
}

// backend starts a fake calc server that records each request body.
func backend(t *testing.T, status int, body string) (*taxapi.Client, *int32, chan map[string]any) {
	t.Helper()
	var hits int32
	bodies := make(chan map[string]any, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		var got map[string]any
		_ = json.NewDecoder(r.Body).Decode(&got)
		bodies <- got
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return taxapi.NewClientWithConfig(&taxapi.ClientConfig{BaseURL: srv.URL}), &hits, bodies
}

type fakeCalculator struct {
	result *taxapi.CalcResult
	err    error
	calls  int
}

func (f *fakeCalculator) Calc(_ context.Context, _ taxapi.CalcRequest) (*taxapi.CalcResult, error) {
	f.calls++
	return f.result, f.err
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

const okBody = `{"taxable_income":1125000,"tax":71250,"cess":2850,"total_tax":74100,"regime":"new"}`

// =============================================================================
// GATE
// =============================================================================

func TestNew_DefaultForm(t *testing.T) {
	p := newPanel(t, &fakeCalculator{}, nil)
	assert.Equal(t, calc.DefaultForm(), p.Form())
	assert.True(t, p.CanCalculate())
	assert.Nil(t, p.Result())
	assert.Equal(t, FieldIncome, p.FocusedField())
}

func TestCalculate_GateClosedSendsNothing(t *testing.T) {
	tests := []struct {
		name   string
		income string
		regime taxapi.Regime
	}{
		{"blank income", "", taxapi.RegimeNew},
		{"negative income", "-5", taxapi.RegimeNew},
		{"non-numeric income", "abc", taxapi.RegimeNew},
		{"grouped income", "12,00,000", taxapi.RegimeNew},
		{"bad regime", "1200000", taxapi.Regime("flat")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, hits, _ := backend(t, http.StatusOK, okBody)
			p := newPanel(t, client, nil)
			p.SetField(FieldIncome, tt.income)
			p.SetRegime(tt.regime)

			assert.False(t, p.CanCalculate())
			assert.Nil(t, p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
			assert.False(t, p.Loading())
			assert.Zero(t, atomic.LoadInt32(hits))
		})
	}
}

func TestCalculate_IgnoredWhileLoading(t *testing.T) {
	fc := &fakeCalculator{result: &taxapi.CalcResult{Regime: "new"}}
	p := newPanel(t, fc, nil)

	first := p.Calculate()
	require.NotNil(t, first)
	assert.True(t, p.Loading())
	assert.False(t, p.CanCalculate())
	assert.Nil(t, p.Calculate())
}

// =============================================================================
// RESULTS
// =============================================================================

func TestCalculate_SuccessShowsServerValues(t *testing.T) {
	client, hits, bodies := backend(t, http.StatusOK, okBody)
	form := calc.Form{Income: "1200000", Regime: taxapi.RegimeNew, Deductions80C: "0", Deductions80D: "0", OtherDeductions: "0"}
	p := newPanel(t, client, &form)

	var got []taxapi.CalcResult
	p.SetOnCalculated(func(r taxapi.CalcResult) { got = append(got, r) })

	cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, p.Loading())
	assert.Contains(t, p.View(), "Calculating...")

	p.Update(resultFrom(t, cmd))

	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
	assert.Equal(t, map[string]any{
		"annual_income":    float64(1200000),
		"regime":           "new",
		"deductions_80c":   float64(0),
		"deductions_80d":   float64(0),
		"other_deductions": float64(0),
	}, <-bodies)

	assert.False(t, p.Loading())
	require.NotNil(t, p.Result())
	want := taxapi.CalcResult{TaxableIncome: 1125000, Tax: 71250, Cess: 2850, TotalTax: 74100, Regime: "new", StatusCode: http.StatusOK}
	assert.Equal(t, want, *p.Result())
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])

	view := p.View()
	assert.Contains(t, view, "Taxable Income: ₹11,25,000")
	assert.Contains(t, view, "Tax: ₹71,250")
	assert.Contains(t, view, "Cess (4%): ₹2,850")
	assert.Contains(t, view, "Total Tax: ₹74,100")
	assert.False(t, p.AlertVisible())
}

func TestCalculate_BlankDeductionsSentAsZero(t *testing.T) {
	client, _, bodies := backend(t, http.StatusOK, okBody)
	form := calc.Form{Income: "800000", Regime: taxapi.RegimeOld, Deductions80C: "", Deductions80D: "abc", OtherDeductions: " "}
	p := newPanel(t, client, &form)

	p.Update(resultFrom(t, p.Calculate()))

	body := <-bodies
	assert.Equal(t, "old", body["regime"])
	assert.Equal(t, float64(0), body["deductions_80c"])
	assert.Equal(t, float64(0), body["deductions_80d"])
	assert.Equal(t, float64(0), body["other_deductions"])
}

func TestCalculate_FailureShowsAlertAndKeepsResult(t *testing.T) {
	prev := &taxapi.CalcResult{TaxableIncome: 1, Tax: 2, Cess: 3, TotalTax: 5, Regime: "old"}
	fc := &fakeCalculator{result: prev}
	p := newPanel(t, fc, nil)
	calls := 0
	p.SetOnCalculated(func(taxapi.CalcResult) { calls++ })

	p.Update(resultFrom(t, p.Calculate()))
	require.Equal(t, 1, calls)

	fc.result, fc.err = nil, taxapi.ErrUnreachable
	p.Update(resultFrom(t, p.Calculate()))

	assert.False(t, p.Loading())
	assert.True(t, p.AlertVisible())
	assert.Equal(t, calc.FailureText, p.AlertMessage())
	assert.Equal(t, *prev, *p.Result())
	assert.Equal(t, 1, calls)
	assert.Contains(t, p.Overlay("base"), calc.FailureText)
}

func TestCalculate_MalformedBodyIsFailure(t *testing.T) {
	client, _, _ := backend(t, http.StatusOK, `{"tax":1}`)
	p := newPanel(t, client, nil)

	p.Update(resultFrom(t, p.Calculate()))
	assert.True(t, p.AlertVisible())
	assert.Nil(t, p.Result())
}

func TestCalculate_NilClient(t *testing.T) {
	p := newPanel(t, nil, nil)
	msg := resultFrom(t, p.Calculate())
	assert.True(t, errors.Is(msg.Err, errNoClient))
	p.Update(msg)
	assert.True(t, p.AlertVisible())
}

// =============================================================================
// ALERT
// =============================================================================

func TestAlert_SwallowsKeysUntilDismissed(t *testing.T) {
	fc := &fakeCalculator{err: taxapi.ErrUnreachable}
	p := newPanel(t, fc, nil)
	p.Update(resultFrom(t, p.Calculate()))
	require.True(t, p.AlertVisible())
	before := p.Form()

	p.Update(runes("9"))
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, before, p.Form())
	assert.Equal(t, FieldIncome, p.FocusedField())
	assert.Equal(t, 1, fc.calls)

	// Enter dismisses instead of calculating
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.AlertVisible())
	assert.Equal(t, 1, fc.calls)
	assert.False(t, p.Loading())
}

// =============================================================================
// EDITING
// =============================================================================

func TestKeys_FocusCycle(t *testing.T) {
	p := newPanel(t, &fakeCalculator{}, nil)

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FieldRegime, p.FocusedField())
	p.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	p.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FieldOther, p.FocusedField())
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, FieldIncome, p.FocusedField())
}

func TestKeys_RegimeToggle(t *testing.T) {
	p := newPanel(t, &fakeCalculator{}, nil)
	p.Update(tea.KeyMsg{Type: tea.KeyTab})

	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, taxapi.RegimeOld, p.Form().Regime)
	p.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, taxapi.RegimeNew, p.Form().Regime)
}

func TestKeys_NumericFieldsRejectLetters(t *testing.T) {
	form := calc.Form{Income: "", Regime: taxapi.RegimeNew}
	p := newPanel(t, &fakeCalculator{}, &form)

	p.Update(runes("5"))
	p.Update(runes("x"))
	p.Update(runes("0"))
	assert.Equal(t, "50", p.Form().Income)
	assert.True(t, p.CanCalculate())
}

func TestKeys_IgnoredWhenBlurred(t *testing.T) {
	fc := &fakeCalculator{}
	p := newPanel(t, fc, nil)
	p.Blur()

	assert.Nil(t, p.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	p.Update(runes("1"))
	assert.Equal(t, calc.DefaultForm(), p.Form())
	assert.Zero(t, fc.calls)
}

func TestUpdate_ForwardsCursorBlinkToFocusedField(t *testing.T) {
	p := newPanel(t, &fakeCalculator{}, nil)
	assert.Equal(t, FieldIncome, p.FocusedField())
	assert.NotNil(t, p.Update(cursor.Blink()))

	// the regime toggle has no cursor
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FieldRegime, p.FocusedField())
	assert.Nil(t, p.Update(cursor.Blink()))

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p.Blur()
	assert.Nil(t, p.Update(cursor.Blink()))
}

func TestView_Labels(t *testing.T) {
	p := newPanel(t, &fakeCalculator{}, nil)
	view := p.View()
	for _, s := range []string{Title, "Annual Income (₹)", "Regime", "80C Deductions (old)", "80D Deductions (old)", "Other Deductions (old)", "Calculate"} {
		assert.Contains(t, view, s)
	}
}

func TestShortcuts(t *testing.T) {
	sc := DefaultKeyMap().Shortcuts()
	require.Len(t, sc, 3)
	assert.Equal(t, "enter", sc[0].Key)
}
