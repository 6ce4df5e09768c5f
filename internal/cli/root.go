// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/geminipad/internal/config"
	"github.com/jeranaias/geminipad/internal/logger"
	"github.com/jeranaias/geminipad/internal/storage"
	"github.com/jeranaias/geminipad/internal/ui"
	"github.com/jeranaias/geminipad/internal/ui/styles"
)

// Version information, set from main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// options are the persistent flags.
type options struct {
	configPath string
	store      string
	dataDir    string
	logLevel   string
	ephemeral  bool
}

// NewRootCmd builds the geminipad command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "geminipad",
		Short: "Chat with Gemini and keep notes in your terminal",
		Long: `geminipad is a terminal client for Google's Gemini models with a small
file editor on the side. Conversations, files and settings are stored
locally and survive restarts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.geminipad/config.toml)")
	flags.StringVar(&opts.store, "store", "", "storage backend: "+storage.KindList())
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory for stored records")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep everything in memory for this run")

	root.AddCommand(
		newAskCmd(opts),
		newChatCmd(opts),
		newConfigCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies the flags on top.
func (o *options) loadConfig() (*config.Config, string, error) {
	path := o.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if o.store != "" {
		cfg.Storage.Backend = o.store
	}
	if o.dataDir != "" {
		cfg.Storage.Dir = o.dataDir
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.ephemeral {
		cfg.Storage.Backend = string(storage.KindMemory)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func runTUI(ctx context.Context, opts *options) error {
	cfg, path, err := opts.loadConfig()
	if err != nil {
		return err
	}
	// Only the TUI asks the terminal for its background.
	s, err := openSession(cfg, path, styles.DetectTheme())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var progOpts []tea.ProgramOption
	if cfg.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(ui.New(ctx, s.ctrl), progOpts...)

	go func() {
		err := config.Watch(ctx, path, config.DefaultWatchDebounce, func(c *config.Config, err error) {
			p.Send(ui.ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			logger.WithError(err).Debugf("config watcher not running")
		}
	}()

	_, err = p.Run()
	cancel()
	if ex := s.ctrl.Inflight(); ex != nil {
		s.ctrl.FinishSend(ex, context.Canceled)
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
