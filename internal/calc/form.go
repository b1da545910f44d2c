// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package calc holds the quick-calculator form: raw field text, the gate
// that decides whether a calculation may run, and the text shown for a
// server result. No tax is computed here.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/util"
)

// ErrNotReady is returned by Request when the gate is closed.
var ErrNotReady = errors.New("calculator input is not valid")

// Form is the calculator input as typed. Fields are independent strings;
// parsing happens only when a request is built.
type Form struct {
	Income          string
	Regime          taxapi.Regime
	Deductions80C   string
	Deductions80D   string
	OtherDeductions string
}

// DefaultForm returns the initial form values.
func DefaultForm() Form {
	return Form{
		Income:          "1200000",
		Regime:          taxapi.RegimeNew,
		Deductions80C:   "150000",
		Deductions80D:   "0",
		OtherDeductions: "0",
	}
}

// ParseIncome parses an income field. Blank, non-numeric, non-finite and
// negative values are rejected.
func ParseIncome(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// ParseDeduction parses a deduction field. Blank or unparsable text counts
// as zero.
func ParseDeduction(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CanCalculate reports whether income is a non-negative number and the
// regime is "old" or "new".
func (f Form) CanCalculate() bool {
	_, ok := ParseIncome(f.Income)
	return ok && f.Regime.Valid()
}

// Request builds the wire request, or ErrNotReady when the gate is closed.
func (f Form) Request() (taxapi.CalcRequest, error) {
	income, ok := ParseIncome(f.Income)
	if !ok || !f.Regime.Valid() {
		return taxapi.CalcRequest{}, ErrNotReady
	}
	return taxapi.CalcRequest{
		AnnualIncome:    income,
		Regime:          f.Regime,
		Deductions80C:   ParseDeduction(f.Deductions80C),
		Deductions80D:   ParseDeduction(f.Deductions80D),
		OtherDeductions: ParseDeduction(f.OtherDeductions),
	}, nil
}

// ToggleRegime flips between the two regimes. An invalid regime becomes new.
func (f *Form) ToggleRegime() {
	if f.Regime == taxapi.RegimeNew {
		f.Regime = taxapi.RegimeOld
		return
	}
	f.Regime = taxapi.RegimeNew
}

// =============================================================================
// RESULT TEXT
// =============================================================================

// FailureText is the alert shown when a calculation fails.
const FailureText = "Failed to calculate. Please try again."

// Line is one labelled row of a displayed result.
type Line struct {
	Label string
	Value string
}

// ResultLines returns the four display rows for a result, formatted with
// Indian grouping and the rupee sign. Values are the server's, unchanged.
func ResultLines(r taxapi.CalcResult) []Line {
	return []Line{
		{Label: "Taxable Income", Value: util.FormatRupees(r.TaxableIncome)},
		{Label: "Tax", Value: util.FormatRupees(r.Tax)},
		{Label: "Cess (4%)", Value: util.FormatRupees(r.Cess)},
		{Label: "Total Tax", Value: util.FormatRupees(r.TotalTax)},
	}
}

// Summary is the chat message announcing a finished calculation.
func Summary(r taxapi.CalcResult) string {
	return fmt.Sprintf("Your quick estimate under the %s regime is Total Tax %s.",
		strings.ToUpper(r.Regime), util.FormatRupees(r.TotalTax))
}
