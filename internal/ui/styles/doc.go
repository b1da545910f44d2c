// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the taxchat TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Saffron - Brand color, header title and focused panel border
  - Purple - Assistant messages and spinners
  - Cyan - Shortcuts and hint titles
  - Emerald - Calculate button and total tax
  - Rose - The calculation alert and errors

# Theme System (theme.go)

	theme := styles.NewTheme(styles.ModeAuto)
	theme.SetSize(width, height)
	if theme.SideBySide() {
		// chat and calculator next to each other
	}

GlamourStyle names the glamour standard style that matches the detected
background, so markdown replies follow the theme.

# Spinners (spinner.go)

	LineSpinner - chat reply pending
	DotsSpinner - calculation pending
*/
package styles
