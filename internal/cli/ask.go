// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/taxchat-tui/internal/model"
	"github.com/jeranaias/taxchat-tui/internal/taxapi"
	"github.com/jeranaias/taxchat-tui/internal/ui/components"
	"github.com/jeranaias/taxchat-tui/internal/ui/styles"
)

func newAskCommand(e *env) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the reply",
		Example: `  taxchat ask "What are the new regime slab rates?"
  taxchat ask --raw "Is HRA exempt under the new regime?" | less`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question is empty")
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			resp, err := e.client().Chat(ctx, question)
			if err != nil {
				e.log.Error().Err(err).Str("endpoint", taxapi.ChatPath).Str("command", "ask").Msg("chat request failed")
				fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render(model.FallbackText))
				return errReported
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderReply(replyRenderer(e, raw), resp.Reply))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the reply without markdown rendering")
	return cmd
}

// replyRenderer renders markdown only for a terminal with markdown enabled.
func replyRenderer(e *env, raw bool) *components.MarkdownRenderer {
	enabled := !raw && e.cfg.UI.Markdown && IsStdoutTTY()
	style := "notty"
	if enabled {
		style = styles.NewTheme(e.cfg.UI.Theme).GlamourStyle()
	}
	return components.NewMarkdownRenderer(style, GetColorProfile(), enabled)
}

// renderReply returns the reply as markdown, or verbatim when rendering is off.
func renderReply(md *components.MarkdownRenderer, reply string) string {
	if !md.Enabled() {
		return reply
	}
	return md.Render(reply, GetTerminalWidth())
}

// printReply writes an assistant reply under a role label.
func printReply(w io.Writer, md *components.MarkdownRenderer, reply string) {
	fmt.Fprintln(w, AssistantStyle.Render(model.RoleAssistant.DisplayName()+":"))
	fmt.Fprintln(w, renderReply(md, reply))
}
