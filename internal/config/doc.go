// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for taxchat.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Backend base URL and User-Agent
//   - UIConfig: Theme, markdown rendering, screen and mouse modes
//   - CalculatorConfig: Initial text of the five calculator fields
//   - LogConfig: Diagnostic log level and path
//
// # Backend URL Precedence
//
// Highest first:
//   - --backend-url flag (applied by the CLI)
//   - TAXCHAT_BACKEND_URL
//   - backend.url in ~/.taxchat/config.toml (or config.json)
//   - BuildBackendURL, set with -ldflags -X
//   - empty, which the client resolves to http://127.0.0.1:8000
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	}
//	config.SetGlobal(cfg)
//	theme := config.Global().UI.Theme
package config
