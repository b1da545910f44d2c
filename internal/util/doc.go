// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the taxchat application.
//
// # Key Functions
//
// Number Formatting:
//   - FormatIndian: Indian digit grouping (12,34,567.5)
//   - FormatRupees: FormatIndian with the rupee sign
//
// String Utilities:
//   - TruncateWidth, StringWidth, WrapText, PadRight: display-width aware
//     helpers backed by go-runewidth
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	total := util.FormatRupees(117000) // "₹1,17,000"
//	err := util.AtomicWriteFile(path, data, 0600)
package util
