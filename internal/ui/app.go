// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/calculator"
	"github.com/jeranaias/taxchat-tui/internal/ui/chat"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

// Backend is what the two panels need from the server.
// *taxapi.Client satisfies it.
type Backend interface {
	Chat(ctx context.Context, message string) (*taxapi.ChatResponse, error)
	Calc(ctx context.Context, req taxapi.CalcRequest) (*taxapi.CalcResult, error)
}

// Focus identifies the panel that receives key presses.
type Focus int

const (
	FocusChat Focus = iota
	FocusCalculator
)

// Config holds the dependencies of the application model.
type Config struct {
	Backend  Backend
	Theme    *styles.Theme
	Markdown *components.MarkdownRenderer
	Logger   *zerolog.Logger

	// Form seeds the calculator fields (default: calc.DefaultForm)
	Form *calc.Form

	// Clipboard overrides the chat panel's clipboard writer
	Clipboard func(string) error
}

// Model is the root Bubble Tea model: header, chat panel, calculator panel
// with the hint box, and footer.
type Model struct {
	theme *styles.Theme
	keys  KeyMap
	log   zerolog.Logger

	chat *chat.Panel
	calc *calculator.Panel

	focus  Focus
	width  int
	height int
}

// New builds the application model and wires the calculator's completion
// callback into the chat transcript.
func New(cfg Config) *Model {
	theme := cfg.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	var (
		chatter chat.Chatter
		calcer  calculator.Calculator
	)
	if cfg.Backend != nil {
		chatter = cfg.Backend
		calcer = cfg.Backend
	}

	m := &Model{
		theme: theme,
		keys:  DefaultKeyMap(),
		log:   logger,
		chat: chat.New(chat.Config{
			Client:    chatter,
			Theme:     theme,
			Markdown:  cfg.Markdown,
			Logger:    &logger,
			Clipboard: cfg.Clipboard,
		}),
		calc: calculator.New(calculator.Config{
			Client: calcer,
			Theme:  theme,
			Logger: &logger,
			Form:   cfg.Form,
		}),
	}

	m.calc.SetOnCalculated(func(r taxapi.CalcResult) {
		m.chat.AppendAssistant(calc.Summary(r))
	})

	return m
}

// Chat returns the chat panel.
func (m *Model) Chat() *chat.Panel {
	return m.chat
}

// Calculator returns the calculator panel.
func (m *Model) Calculator() *calculator.Panel {
	return m.calc
}

// Focus returns the focused panel.
func (m *Model) Focus() Focus {
	return m.focus
}

// Init focuses the chat panel.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.chat.Init(), m.calc.Init(), m.setFocus(FocusChat))
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	if f == FocusCalculator {
		m.chat.Blur()
		return m.calc.Focus()
	}
	m.calc.Blur()
	return m.chat.Focus()
}

// Update routes messages. Keys go to the alert when it is visible, otherwise
// to the focused panel; everything else goes to both panels.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.calc.AlertVisible() {
			return m, m.calc.Update(msg)
		}
		if key.Matches(msg, m.keys.SwitchFocus) {
			if m.focus == FocusChat {
				return m, m.setFocus(FocusCalculator)
			}
			return m, m.setFocus(FocusChat)
		}
		if m.focus == FocusCalculator {
			return m, m.calc.Update(msg)
		}
		return m, m.chat.Update(msg)

	case tea.MouseMsg:
		if m.calc.AlertVisible() {
			return m, nil
		}
		return m, m.chat.Update(msg)
	}

	return m, tea.Batch(m.chat.Update(msg), m.calc.Update(msg))
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.calc.SetScreenSize(width, height)

	bodyHeight := height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
	if bodyHeight < 10 {
		bodyHeight = 10
	}

	if m.theme.SideBySide() {
		chatWidth := width * 2 / 3
		m.chat.SetSize(chatWidth, bodyHeight)
		m.calc.SetSize(width-chatWidth, bodyHeight)
		return
	}

	m.chat.SetSize(width, bodyHeight/2)
	m.calc.SetSize(width, bodyHeight-bodyHeight/2)
}

func (m *Model) header() string {
	return components.Header(m.theme, m.width)
}

func (m *Model) footer() string {
	shortcuts := []components.Shortcut{}
	if m.focus == FocusCalculator {
		shortcuts = append(shortcuts, m.calc.Keys().Shortcuts()...)
	} else {
		shortcuts = append(shortcuts, m.chat.Keys().Shortcuts()...)
	}
	for _, b := range []key.Binding{m.keys.SwitchFocus, m.keys.Quit} {
		h := b.Help()
		shortcuts = append(shortcuts, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return components.Footer(m.theme, m.width, shortcuts)
}

// View renders the whole screen.
func (m *Model) View() string {
	var body string
	if m.theme.SideBySide() {
		chatWidth := m.width * 2 / 3
		side := lipgloss.JoinVertical(lipgloss.Left,
			m.calc.View(),
			components.Hints(m.theme, m.width-chatWidth),
		)
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.chat.View(), side)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.chat.View(),
			m.calc.View(),
			components.Hints(m.theme, m.width),
		)
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer())
	return m.calc.Overlay(screen)
}
