// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
	"github.com/jeranaias/taxchat-tui/internal/util"
)

// HintTitle heads the hint box.
const HintTitle = "What can I ask?"

// HintItems are the example topics listed in the hint box.
var HintItems = []string{
	"New vs Old regime differences",
	"Basic slab rates and cess",
	"Common deductions like 80C and 80D",
	"Very rough tax estimates",
}

// Hints renders the "What can I ask?" box at the given outer width.
func Hints(theme *styles.Theme, width int) string {
	// border (2) + padding (2) + bullet (2)
	inner := width - 6
	if inner < 10 {
		inner = 10
	}

	lines := []string{theme.HintTitle.Render(HintTitle)}
	for _, item := range HintItems {
		wrapped := strings.Split(util.WrapText(item, inner), "\n")
		for i, w := range wrapped {
			prefix := "  "
			if i == 0 {
				prefix = "- "
			}
			lines = append(lines, theme.HintItem.Render(prefix+w))
		}
	}

	return theme.HintBox.Width(width - 2).Render(strings.Join(lines, "\n"))
}
