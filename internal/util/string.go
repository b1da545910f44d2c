// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the taxchat application.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Width-aware helpers. The rupee sign, Devanagari and CJK input all
// occupy different column counts, so layout never measures bytes.

// TruncateWidth truncates a string to a maximum display width, appending
// "..." when anything was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of a string.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WrapText word-wraps every line of text to the given display width. Existing
// newlines are preserved and words wider than width are broken hard.
// A non-positive width returns the text unchanged.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	var out strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		if w > width {
			word = runewidth.Wrap(word, width)
			w = runewidth.StringWidth(word[strings.LastIndex(word, "\n")+1:])
			if lineWidth > 0 {
				out.WriteByte('\n')
			}
			out.WriteString(word)
			lineWidth = w
			continue
		}
		switch {
		case lineWidth == 0:
		case lineWidth+1+w > width:
			out.WriteByte('\n')
			lineWidth = 0
		default:
			out.WriteByte(' ')
			lineWidth++
		}
		out.WriteString(word)
		lineWidth += w
	}
	return out.String()
}

// PadRight pads s with spaces up to the given display width.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
