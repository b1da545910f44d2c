// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the taxchat command tree.
//
// Running taxchat without a subcommand starts the full-screen TUI. The
// subcommands cover scripted and line-oriented use:
//
//   - ask: one chat question, reply rendered as markdown
//   - calc: one quick estimate, printed like the calculator panel
//   - chat: a line-editing REPL against /api/chat
//   - config: show, locate, edit and initialize the config file
//   - version: build information
//
// Global flags --backend-url, --config and --debug apply to every command.
//
// # Usage
//
//	os.Exit(cli.Execute())
package cli
