// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package calculator

import "github.com/jeranaias/taxchat-tui/internal/taxapi"

// ResultMsg carries the outcome of a calculation back into the update loop.
type ResultMsg struct {
	Request taxapi.CalcRequest
	Result  *taxapi.CalcResult
	Err     error
}
