// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package taxapi

// =============================================================================
// REGIME
// =============================================================================

// Regime names one of the two income-tax computation schemes.
type Regime string

const (
	RegimeNew Regime = "new"
	RegimeOld Regime = "old"
)

// Valid reports whether r is "old" or "new".
func (r Regime) Valid() bool {
	return r == RegimeNew || r == RegimeOld
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for the /api/chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// CalcRequest is the request body for the /api/calc endpoint.
type CalcRequest struct {
	AnnualIncome    float64 `json:"annual_income"`
	Regime          Regime  `json:"regime"`
	Deductions80C   float64 `json:"deductions_80c"`
	Deductions80D   float64 `json:"deductions_80d"`
	OtherDeductions float64 `json:"other_deductions"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the response from the /api/chat endpoint.
type ChatResponse struct {
	Reply string `json:"reply"`

	// StatusCode is the HTTP status the reply arrived with.
	StatusCode int `json:"-"`
}

// CalcResult is the response from the /api/calc endpoint. Values are shown
// exactly as the server computed them.
type CalcResult struct {
	TaxableIncome float64 `json:"taxable_income"`
	Tax           float64 `json:"tax"`
	Cess          float64 `json:"cess"`
	TotalTax      float64 `json:"total_tax"`
	Regime        string  `json:"regime"`

	// StatusCode is the HTTP status the result arrived with.
	StatusCode int `json:"-"`
}

// chatWire and calcWire detect absent fields; a missing field is a malformed
// response rather than a zero value.
type chatWire struct {
	Reply *string `json:"reply"`
}

type calcWire struct {
	TaxableIncome *float64 `json:"taxable_income"`
	Tax           *float64 `json:"tax"`
	Cess          *float64 `json:"cess"`
	TotalTax      *float64 `json:"total_tax"`
	Regime        *string  `json:"regime"`
}

// missing returns the names of absent fields.
func (w calcWire) missing() []string {
	var names []string
	if w.TaxableIncome == nil {
		names = append(names, "taxable_income")
	}
	if w.Tax == nil {
		names = append(names, "tax")
	}
	if w.Cess == nil {
		names = append(names, "cess")
	}
	if w.TotalTax == nil {
		names = append(names, "total_tax")
	}
	if w.Regime == nil {
		names = append(names, "regime")
	}
	return names
}
