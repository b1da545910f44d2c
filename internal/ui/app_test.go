// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/taxchat-tui/internal/calc"
	"github.com/jeranaias/taxchat-tui/internal/model"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/calculator"
	"github.com/jeranaias/taxchat-tui/internal/ui/chat"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drive feeds every network outcome produced by cmd back into m.
func drive(m *Model, cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case chat.ReplyMsg, calculator.ResultMsg:
			m.Update(msg)
		}
	}
}

type server struct {
	chatHits int32
	calcHits int32
	calcBody string
}

func newApp(t *testing.T, s *server, width int) *Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case taxapi.ChatPath:
			atomic.AddInt32(&s.chatHits, 1)
			_, _ = w.Write([]byte(`{"reply":"Slabs are listed below."}`))
		case taxapi.CalcPath:
			atomic.AddInt32(&s.calcHits, 1)
			_, _ = w.Write([]byte(s.calcBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	form := calc.Form{Income: "1200000", Regime: taxapi.RegimeNew, Deductions80C: "0", Deductions80D: "0", OtherDeductions: "0"}
	m := New(Config{
		Backend:   taxapi.NewClientWithConfig(&taxapi.ClientConfig{BaseURL: srv.URL}),
		Theme:     styles.NewTheme(styles.ModeDark),
		Markdown:  components.NewMarkdownRenderer("notty", termenv.Ascii, false),
		Form:      &form,
		Clipboard: func(string) error { return nil },
	})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: width, Height: 50})
	return m
}

func ctrl(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestNew_FocusStartsOnChat(t *testing.T) {
	m := newApp(t, &server{}, 120)
	assert.Equal(t, FocusChat, m.Focus())
	assert.True(t, m.Chat().Focused())
	assert.False(t, m.Calculator().Focused())
}

func TestSwitchFocus(t *testing.T) {
	m := newApp(t, &server{}, 120)

	m.Update(ctrl(tea.KeyCtrlT))
	assert.Equal(t, FocusCalculator, m.Focus())
	assert.False(t, m.Chat().Focused())
	assert.True(t, m.Calculator().Focused())

	m.Update(ctrl(tea.KeyCtrlT))
	assert.Equal(t, FocusChat, m.Focus())
}

func TestQuit(t *testing.T) {
	m := newApp(t, &server{}, 120)
	_, cmd := m.Update(ctrl(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestChatRoundTrip(t *testing.T) {
	s := &server{}
	m := newApp(t, s, 120)

	_, cmd := m.Update(ctrl(tea.KeyEnter))
	drive(m, cmd)

	msgs := m.Chat().Transcript().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, chat.DefaultInput, msgs[1].Content)
	assert.Equal(t, "Slabs are listed below.", msgs[2].Content)
	assert.EqualValues(t, 1, atomic.LoadInt32(&s.chatHits))
	assert.Zero(t, atomic.LoadInt32(&s.calcHits))
}

func TestCalculation_AppendsOneSummary(t *testing.T) {
	s := &server{calcBody: `{"taxable_income":1125000,"tax":71250,"cess":2850,"total_tax":74100,"regime":"new"}`}
	m := newApp(t, s, 120)

	m.Update(ctrl(tea.KeyCtrlT))
	_, cmd := m.Update(ctrl(tea.KeyEnter))
	drive(m, cmd)

	assert.EqualValues(t, 1, atomic.LoadInt32(&s.calcHits))
	assert.False(t, m.Calculator().Loading())

	msgs := m.Chat().Transcript().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Your quick estimate under the NEW regime is Total Tax ₹74,100.", msgs[1].Content)
}

func TestCalculationFailure_AlertCapturesKeys(t *testing.T) {
	s := &server{calcBody: `not json`}
	m := newApp(t, s, 120)

	m.Update(ctrl(tea.KeyCtrlT))
	_, cmd := m.Update(ctrl(tea.KeyEnter))
	drive(m, cmd)

	require.True(t, m.Calculator().AlertVisible())
	assert.Len(t, m.Chat().Transcript().Messages(), 1)
	assert.Contains(t, m.View(), calc.FailureText)

	// focus switching is blocked while the alert is up
	m.Update(ctrl(tea.KeyCtrlT))
	assert.Equal(t, FocusCalculator, m.Focus())

	m.Update(ctrl(tea.KeyEsc))
	assert.False(t, m.Calculator().AlertVisible())
	assert.False(t, m.Calculator().Loading())
}

func TestView_WideAndNarrow(t *testing.T) {
	for _, width := range []int{120, 70} {
		m := newApp(t, &server{}, width)
		view := m.View()
		for _, s := range []string{
			components.AppTitle,
			components.FooterText,
			components.HintTitle,
			calculator.Title,
		} {
			assert.Contains(t, view, s, "width %d", width)
		}
		assert.True(t, strings.Contains(view, "Chat"))
	}
}
