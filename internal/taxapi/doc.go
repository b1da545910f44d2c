// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package taxapi provides the HTTP client for the tax assistant backend.
//
// The backend exposes two JSON endpoints. All tax rules live on the server;
// this package only moves values across the wire.
//
// # Key Types
//
//   - Client: single-shot JSON client, no retry and no timeout
//   - CalcRequest: calculator input posted to /api/calc
//   - CalcResult: server-computed taxable income, tax, cess and total
//   - ClientError: typed error wrapping transport and decode failures
//
// # Usage
//
//	client := taxapi.NewClientWithConfig(&taxapi.ClientConfig{BaseURL: url})
//	reply, err := client.Chat(ctx, "What is 80C?")
//	result, err := client.Calc(ctx, taxapi.CalcRequest{
//	    AnnualIncome: 1200000,
//	    Regime:       taxapi.RegimeNew,
//	})
//
// A response whose body decodes with every required field is a success,
// whatever its HTTP status.
package taxapi
