// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/ui/components"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// ErrNoPrompt is returned by ask without a prompt.
var ErrNoPrompt = errors.New("no prompt given")

func newAskCmd(opts *options) *cobra.Command {
	var (
		stream bool
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Ask Gemini a single question",
		Long: `Ask sends one prompt and prints the answer. Without arguments the prompt
is read from standard input. Answers are rendered as markdown when the
output is a terminal.`,
		Example: `  geminipad ask "explain recursion in simple terms"
  git diff | geminipad ask --stream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

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

			out := cmd.OutOrStdout()
			gen := s.ctrl.Generator()
			if stream {
				err := gen.StreamGenerateContent(cmd.Context(), prompt, func(chunk string) error {
					_, err := io.WriteString(out, chunk)
					return err
				})
				fmt.Fprintln(out)
				return err
			}

			answer, err := gen.GenerateContent(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			return printAnswer(out, answer, raw || !isTerminal(out))
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "print the answer as it arrives")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown source instead of rendering it")
	return cmd
}

// readPrompt joins args, or reads in when there are none.
func readPrompt(args []string, in io.Reader) (string, error) {
	prompt := strings.Join(args, " ")
	if len(args) == 0 && !isTerminal(in) {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read prompt: %w", err)
		}
		prompt = string(data)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrNoPrompt
	}
	return prompt, nil
}

func printAnswer(out io.Writer, answer string, raw bool) error {
	if raw {
		_, err := fmt.Fprintln(out, strings.TrimRight(answer, "\n"))
		return err
	}
	theme := styles.NewTheme(styles.DetectTheme())
	md := components.NewMarkdown(theme.GlamourStyle())
	width := components.WrapWidth(terminalWidth(out), model.DefaultFontSize)
	_, err := fmt.Fprintln(out, components.RenderContent(theme, md, answer, width))
	return err
}
