// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the taxchat screen.

# Display Components

Header (header.go) - Title bar with the app name and the informational
subtitle, plus the footer with the disclaimer and key hints.

Hints (hints.go) - The "What can I ask?" box listing example topics.

MessageBubble (message.go) - Role label above a bordered box. User text is
shown verbatim; assistant text goes through MarkdownRenderer (glamour).

# Feedback

Alert (alert.go) - Blocking modal. While visible it consumes every key press
until Enter or Esc dismisses it.

	alert := components.NewAlert("Calculation failed")
	alert.Show(calc.FailureText)
	screen = alert.Overlay(screen, theme)
*/
package components
