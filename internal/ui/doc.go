// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui composes the full-screen application: the chat panel on the
// left, the quick calculator and hint box on the right (stacked on narrow
// terminals). A finished calculation posts a summary into the chat.
package ui
