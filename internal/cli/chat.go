// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/config"
	"github.com/jeranaias/geminipad/internal/logger"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader reads one line of input. liner.State implements it.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// ChatCLI provides line editing and history for the chat command.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI opens the terminal for line editing and loads the history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	c := &ChatCLI{line: line, historyFile: filepath.Join(dir, "chat_history")}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// Prompt reads a line and records it in the history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history and restores the terminal.
func (c *ChatCLI) Close() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// COMMAND
// =============================================================================

func newChatCmd(opts *options) *cobra.Command {
	var resume bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with Gemini line by line",
		Long: `Chat starts a new conversation and streams each reply as it arrives.
Conversations are stored with the ones the TUI shows.

Commands: /new starts another conversation, /list shows stored
conversations, /exit quits. Ctrl+C stops a reply; at the prompt it quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.loadConfig()
			if err != nil {
				return err
			}
			s, err := openSession(cfg, path, "")
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.ctrl.State().Settings.HasUsableAPIKey() {
				return fmt.Errorf("%w: set GEMINI_API_KEY or add a key in the Settings tab", app.ErrMissingAPIKey)
			}

			var in lineReader
			if isTerminal(cmd.InOrStdin()) {
				lines := NewChatCLI()
				defer lines.Close()
				in = lines
			} else {
				in = newPlainReader(cmd.InOrStdin())
			}
			return runChat(cmd.Context(), s.ctrl, in, cmd.OutOrStdout(), resume)
		},
	}

	cmd.Flags().BoolVarP(&resume, "continue", "c", false, "continue the most recent conversation")
	return cmd
}

// runChat is the read-send loop. It returns nil at end of input.
func runChat(ctx context.Context, ctrl *app.Controller, in lineReader, out io.Writer, resume bool) error {
	st := ctrl.State()
	if resume && len(st.Conversations) > 0 {
		if err := ctrl.SelectConversation(st.Conversations[0].ID); err != nil {
			return err
		}
		conv, _ := ctrl.State().ActiveConversation()
		fmt.Fprintf(out, "%s %s (%d messages)\n", mutedStyle.Render("Continuing"), conv.Title, len(conv.Messages))
	} else {
		conv := ctrl.NewConversation()
		fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("Started"), conv.Title)
	}

	for {
		input, err := in.Prompt(promptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		switch {
		case input == "":
			continue
		case input == "/exit" || input == "/quit":
			return nil
		case input == "/new":
			conv := ctrl.NewConversation()
			fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("Started"), conv.Title)
			continue
		case input == "/list":
			printConversations(out, ctrl)
			continue
		}

		if err := sendLine(ctx, ctrl, input, out); err != nil {
			fmt.Fprintln(out, errorStyle.Render("[Error]"), err)
		}
	}
}

// sendLine streams one reply. Ctrl+C cancels the reply, not the program.
func sendLine(ctx context.Context, ctrl *app.Controller, prompt string, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprint(out, assistantStyle.Render("gemini> "))
	err := ctrl.SendMessage(ctx, prompt, func(fragment string) {
		io.WriteString(out, fragment)
	})
	fmt.Fprintln(out)

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, mutedStyle.Render("[stopped]"))
		return nil
	}
	if err != nil {
		logger.WithError(err).Warnf("chat send failed")
		if msg := ctrl.State().Error; msg != "" {
			ctrl.DismissError()
			return errors.New(msg)
		}
	}
	return err
}

func printConversations(out io.Writer, ctrl *app.Controller) {
	st := ctrl.State()
	if len(st.Conversations) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No conversations."))
		return
	}
	for _, c := range st.Conversations {
		marker := " "
		if c.ID == st.ActiveConversationID {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s %s\n", marker, c.Title, mutedStyle.Render(fmt.Sprintf("(%d messages)", len(c.Messages))))
	}
}

// plainReader reads lines from a non-terminal input.
type plainReader struct {
	r *bufio.Reader
}

func newPlainReader(r io.Reader) plainReader {
	return plainReader{r: bufio.NewReader(r)}
}

func (p plainReader) Prompt(string) (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
