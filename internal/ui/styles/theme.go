// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND FOOTER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	Footer         lipgloss.Style

	// ==========================================================================
	// PANELS
	// ==========================================================================

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	RoleLabel       lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS
	// ==========================================================================

	InputPrompt  lipgloss.Style
	InputText    lipgloss.Style
	Spinner      lipgloss.Style
	BusyText     lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// CALCULATOR FORM
	// ==========================================================================

	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	RegimeOption      lipgloss.Style
	RegimeSelected    lipgloss.Style
	Button            lipgloss.Style
	ButtonDisabled    lipgloss.Style
	ResultLabel       lipgloss.Style
	ResultValue       lipgloss.Style
	ResultTotal       lipgloss.Style

	// ==========================================================================
	// HINTS AND ALERT
	// ==========================================================================

	HintBox   lipgloss.Style
	HintTitle lipgloss.Style
	HintItem  lipgloss.Style

	AlertBox     lipgloss.Style
	AlertTitle   lipgloss.Style
	AlertMessage lipgloss.Style
	AlertHint    lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme for the given mode. "dark" and "light" force the
// background; anything else asks the terminal.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// GlamourStyle returns the name of the glamour standard style matching the
// background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header and footer
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Saffron).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)

	// Panels
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.PanelFocused = t.Panel.
		BorderForeground(Saffron)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	// Input and status
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.BusyText = lipgloss.NewStyle().
		Foreground(Amber)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Calculator form
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldLabelFocused = lipgloss.NewStyle().
		Foreground(Saffron).
		Bold(true)

	t.RegimeOption = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.RegimeSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Saffron).
		Bold(true).
		Padding(0, 1)

	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Bold(true).
		Padding(0, 2)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	t.ResultLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ResultValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ResultTotal = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Hints
	t.HintBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HintTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.HintItem = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Alert
	t.AlertBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.AlertTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.AlertMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.AlertHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// SideBySide reports whether the chat and calculator fit next to each other.
func (t *Theme) SideBySide() bool {
	return t.GetLayoutMode() == LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-99 columns
	LayoutWide                     // >= 100 columns
)

// String returns the mode name.
func (m LayoutMode) String() string {
	switch m {
	case LayoutNarrow:
		return "narrow"
	case LayoutMedium:
		return "medium"
	default:
		return "wide"
	}
}
