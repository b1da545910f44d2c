// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/config"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

// formFromConfig turns the configured calculator defaults into a form.
func formFromConfig(cfg *config.Config) calc.Form {
	c := cfg.Calculator
	return calc.Form{
		Income:          c.Income,
		Regime:          taxapi.Regime(c.Regime),
		Deductions80C:   c.Deductions80C,
		Deductions80D:   c.Deductions80D,
		OtherDeductions: c.OtherDeductions,
	}
}

// runTUI starts the full-screen application.
func runTUI(cmd *cobra.Command, e *env) error {
	if err := RequiresTTY("run the chat interface"); err != nil {
		return err
	}

	cfg := config.Global()
	theme := styles.NewTheme(cfg.UI.Theme)
	md := components.NewMarkdownRenderer(theme.GlamourStyle(), theme.ColorProfile, cfg.UI.Markdown)
	form := formFromConfig(cfg)

	app := ui.New(ui.Config{
		Backend:  e.client(),
		Theme:    theme,
		Markdown: md,
		Logger:   &e.log,
		Form:     &form,
	})

	opts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	e.log.Info().Str("backend", e.backendURL()).Msg("tui started")
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	e.log.Info().Msg("tui stopped")
	return nil
}
