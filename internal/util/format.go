// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the taxchat application.
package util

import (
	"math"
	"strconv"
	"strings"
)

// RupeeSign prefixes every amount shown to the user.
const RupeeSign = "₹"

// maxFractionDigits matches the en-IN locale default of three fraction digits.
const maxFractionDigits = 3

// FormatIndian formats a number with Indian digit grouping: the last three
// integer digits form one group and every group above it has two digits
// (1200000 -> "12,00,000"). Fraction digits are rounded to three places and
// trailing zeros are dropped. NaN and infinities are returned unformatted.
func FormatIndian(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', maxFractionDigits, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	var b strings.Builder
	if v < 0 && (intPart != "0" || fracPart != "") {
		b.WriteByte('-')
	}
	b.WriteString(groupIndian(intPart))
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatRupees formats an amount with the rupee sign and Indian grouping.
func FormatRupees(v float64) string {
	return RupeeSign + FormatIndian(v)
}

// groupIndian inserts separators into a string of ASCII digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
