// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/taxchat-tui/internal/model"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/chat"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

// LineReader reads one edited line. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newChatCommand(e *env) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant line by line",
		Long:  "Starts a line-editing chat. Arrow keys recall earlier questions; history lives only for the session. Type exit, quit or press Ctrl+D to leave.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			session := &ChatSession{
				Client:     e.client(),
				Reader:     line,
				Out:        cmd.OutOrStdout(),
				Markdown:   replyRenderer(e, raw),
				Log:        e.log,
				Transcript: model.NewTranscript(),
			}
			return session.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print replies without markdown rendering")
	return cmd
}

// ChatSession holds the state of one REPL run.
type ChatSession struct {
	Client     chat.Chatter
	Reader     LineReader
	Out        io.Writer
	Markdown   *components.MarkdownRenderer
	Log        zerolog.Logger
	Transcript *model.Transcript
}

// Run prints the welcome message and answers questions until EOF, an
// aborted prompt, or an exit command.
func (s *ChatSession) Run(ctx context.Context) error {
	if s.Transcript == nil {
		s.Transcript = model.NewTranscript()
	}
	if welcome, ok := s.Transcript.Last(); ok {
		printReply(s.Out, s.Markdown, welcome.Content)
		fmt.Fprintln(s.Out, styles.RenderInfo("Type exit or press Ctrl+D to leave."))
		fmt.Fprintln(s.Out)
	}

	for {
		// liner measures the prompt, so it stays unstyled
		input, err := s.Reader.Prompt(model.RoleUser.DisplayName() + "> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.Out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		question := strings.TrimSpace(input)
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") || strings.EqualFold(question, "quit") {
			return nil
		}
		s.Reader.AppendHistory(input)

		s.Ask(ctx, question)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Ask sends one question and prints the reply, or the fallback text on any
// failure.
func (s *ChatSession) Ask(ctx context.Context, question string) {
	s.Transcript.AppendUser(question)

	reply := model.FallbackText
	resp, err := s.Client.Chat(ctx, question)
	if err != nil {
		s.Log.Error().Err(err).Str("endpoint", taxapi.ChatPath).Str("command", "chat").Msg("chat request failed")
	} else {
		reply = resp.Reply
	}

	s.Transcript.AppendAssistant(reply)
	printReply(s.Out, s.Markdown, reply)
	fmt.Fprintln(s.Out)
}
