// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"

	"github.com/jeranaias/taxchat-tui/internal/model"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

// DefaultInput is the question the input starts with.
const DefaultInput = "What are the new regime slab rates?"

// Chatter sends one question and returns the server reply.
// *taxapi.Client satisfies it.
type Chatter interface {
	Chat(ctx context.Context, message string) (*taxapi.ChatResponse, error)
}

// Config holds the dependencies of a Panel.
type Config struct {
	Client   Chatter
	Theme    *styles.Theme
	Markdown *components.MarkdownRenderer
	Logger   *zerolog.Logger

	// Clipboard writes text to the system clipboard (default: atotto/clipboard)
	Clipboard func(string) error

	// InitialInput prefills the input (default: DefaultInput)
	InitialInput string
}

// Panel is the chat panel: a transcript viewport above a single-line input.
//
// At most one chat request is outstanding. While it is, the input is blurred
// and submits are ignored.
type Panel struct {
	client     Chatter
	transcript *model.Transcript

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	keys     KeyMap

	theme     *styles.Theme
	markdown  *components.MarkdownRenderer
	log       zerolog.Logger
	clipboard func(string) error

	sending bool
	focused bool
	status  string

	width  int
	height int
}

// New creates a chat panel with a transcript seeded with the welcome message.
func New(cfg Config) *Panel {
	theme := cfg.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	md := cfg.Markdown
	if md == nil {
		md = components.NewMarkdownRenderer(theme.GlamourStyle(), theme.ColorProfile, true)
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about slabs, regimes, deductions..."
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.CharLimit = 4096
	initial := cfg.InitialInput
	if initial == "" {
		initial = DefaultInput
	}
	ti.SetValue(initial)

	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Bubble()
	sp.Style = theme.Spinner

	p := &Panel{
		client:     cfg.Client,
		transcript: model.NewTranscript(),
		input:      ti,
		viewport:   viewport.New(80, 20),
		spinner:    sp,
		keys:       DefaultKeyMap(),
		theme:      theme,
		markdown:   md,
		log:        logger.With().Str("component", "chat").Logger(),
		clipboard:  copyFn,
	}

	p.transcript.OnChange(p.refresh)
	p.refresh()
	return p
}

// Transcript returns the panel's transcript.
func (p *Panel) Transcript() *model.Transcript {
	return p.transcript
}

// Sending reports whether a chat request is outstanding.
func (p *Panel) Sending() bool {
	return p.sending
}

// Focused reports whether the panel receives key presses.
func (p *Panel) Focused() bool {
	return p.focused
}

// InputValue returns the current input text.
func (p *Panel) InputValue() string {
	return p.input.Value()
}

// SetInput replaces the input text.
func (p *Panel) SetInput(s string) {
	p.input.SetValue(s)
}

// Status returns the one-line status shown under the transcript.
func (p *Panel) Status() string {
	return p.status
}

// Keys returns the panel's key bindings.
func (p *Panel) Keys() KeyMap {
	return p.keys
}

// AppendAssistant adds an assistant message to the transcript. The
// calculator uses it to post its summary.
func (p *Panel) AppendAssistant(content string) {
	p.transcript.AppendAssistant(content)
}

// SetSize sets the outer size of the panel, border included.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height

	// border (2) + padding (2)
	innerWidth := width - 4
	if innerWidth < 20 {
		innerWidth = 20
	}
	// border (2) + title + status + input
	vpHeight := height - 5
	if vpHeight < 3 {
		vpHeight = 3
	}

	p.viewport.Width = innerWidth
	p.viewport.Height = vpHeight
	p.input.Width = innerWidth - len(p.input.Prompt) - 1
	p.refresh()
}

// refresh re-renders the transcript and scrolls to the newest message.
func (p *Panel) refresh() {
	content := components.RenderTranscript(p.transcript.Messages(), p.viewport.Width, p.theme, p.markdown)
	p.viewport.SetContent(content)
	p.viewport.GotoBottom()
}
