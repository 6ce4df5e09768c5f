// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/geminipad/internal/export"
	"github.com/jeranaias/geminipad/internal/model"
)

// ErrNothingToExport is returned when no stored record matches.
var ErrNothingToExport = errors.New("nothing to export")

func newExportCmd(opts *options) *cobra.Command {
	var (
		format     string
		outDir     string
		all        bool
		files      bool
		timestamps bool
	)

	cmd := &cobra.Command{
		Use:   "export [id or title...]",
		Short: "Write conversations or files to disk",
		Long: `Export writes stored conversations as Markdown or JSON documents.
With no arguments the most recent conversation is exported. Arguments
match a conversation ID or part of its title.

With --files the editor's files are written instead, each under its own
name, with an extension picked from its language when it has none.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
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

			st := s.ctrl.State()
			out := cmd.OutOrStdout()
			if files {
				return exportFiles(out, pickFiles(st.Files, args, all), outDir)
			}
			eopts := &export.Options{OutputDir: outDir, IncludeTimestamps: timestamps}
			return exportConversations(out, pickConversations(st.Conversations, args, all), f, eopts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "export every conversation (or file)")
	cmd.Flags().BoolVar(&files, "files", false, "export editor files instead of conversations")
	cmd.Flags().BoolVar(&timestamps, "timestamps", true, "include message times in Markdown")
	return cmd
}

func exportConversations(out io.Writer, convs []model.Conversation, format export.Format, opts *export.Options) error {
	exporter, err := export.New(format, opts)
	if err != nil {
		return err
	}

	written := 0
	for _, conv := range convs {
		path, err := export.ToFile(conv, exporter, opts)
		if errors.Is(err, export.ErrEmptyConversation) {
			fmt.Fprintf(out, "%s %s (no messages)\n", mutedStyle.Render("Skipped"), conv.Title)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		written++
	}
	if written == 0 {
		return ErrNothingToExport
	}
	return nil
}

func exportFiles(out io.Writer, files []model.FileItem, dir string) error {
	if len(files) == 0 {
		return ErrNothingToExport
	}
	for _, f := range files {
		path, err := export.WriteFileItem(f, dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, path)
	}
	return nil
}

// pickConversations selects by ID or title substring. Without selectors it
// returns everything when all is set, else the most recent one.
func pickConversations(convs []model.Conversation, selectors []string, all bool) []model.Conversation {
	var out []model.Conversation
	for _, c := range convs {
		if all || matches(c.ID, c.Title, selectors) {
			out = append(out, c)
		}
	}
	if len(selectors) == 0 && !all && len(convs) > 0 {
		return convs[:1]
	}
	return out
}

func pickFiles(files []model.FileItem, selectors []string, all bool) []model.FileItem {
	var out []model.FileItem
	for _, f := range files {
		if all || matches(f.ID, f.Name, selectors) {
			out = append(out, f)
		}
	}
	if len(selectors) == 0 && !all && len(files) > 0 {
		return files[:1]
	}
	return out
}

func matches(id, name string, selectors []string) bool {
	lower := strings.ToLower(name)
	for _, s := range selectors {
		if s == id || (s != "" && strings.Contains(lower, strings.ToLower(s))) {
			return true
		}
	}
	return false
}
