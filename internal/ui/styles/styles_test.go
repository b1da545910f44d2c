// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme_ForcedModes(t *testing.T) {
	dark := NewTheme(ModeDark)
	assert.True(t, dark.IsDark)
	assert.Equal(t, "dark", dark.GlamourStyle())

	light := NewTheme(ModeLight)
	assert.False(t, light.IsDark)
	assert.Equal(t, "light", light.GlamourStyle())
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(ModeDark)

	for name, rendered := range map[string]string{
		"Header":          theme.Header.Render("test"),
		"UserBubble":      theme.UserBubble.Render("test"),
		"AssistantBubble": theme.AssistantBubble.Render("test"),
		"PanelFocused":    theme.PanelFocused.Render("test"),
		"AlertBox":        theme.AlertBox.Render("test"),
		"HintBox":         theme.HintBox.Render("test"),
	} {
		assert.Contains(t, rendered, "test", name)
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme(ModeLight)
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		assert.Equal(t, tt.want, theme.GetLayoutMode(), "width %d", tt.width)
		assert.Equal(t, tt.want == LayoutWide, theme.SideBySide())
	}
	assert.Equal(t, "medium", LayoutMedium.String())
}

// =============================================================================
// STATUS RENDER TESTS
// =============================================================================

func TestRenderHelpers_IncludeIndicators(t *testing.T) {
	assert.True(t, strings.Contains(RenderSuccess("done"), "[OK] done"))
	assert.True(t, strings.Contains(RenderError("failed"), "[X] failed"))
	assert.True(t, strings.Contains(RenderWarning("careful"), "[!] careful"))
	assert.True(t, strings.Contains(RenderInfo("note"), "[i] note"))
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerConfig(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, LineSpinner.Duration())
	assert.Equal(t, time.Second, SpinnerConfig{}.Duration())

	s := DotsSpinner.Bubble()
	assert.Equal(t, DotsSpinner.Frames, s.Frames)
	assert.Equal(t, DotsSpinner.Duration(), s.FPS)
}
