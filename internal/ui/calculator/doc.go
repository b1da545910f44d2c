// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package calculator provides the quick tax estimate panel of the TUI.
//
// The panel edits a calc.Form through four text fields and a regime toggle.
// Enter runs a calculation when the form passes calc.Form.CanCalculate and
// no calculation is in flight. The result arrives as a ResultMsg; on success
// it replaces the displayed result and the OnCalculated callback fires once,
// on failure a blocking alert shows calc.FailureText and the previous result
// stays on screen.
package calculator
