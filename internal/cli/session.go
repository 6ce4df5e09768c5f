// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/config"
	"github.com/jeranaias/geminipad/internal/gemini"
	"github.com/jeranaias/geminipad/internal/logger"
	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/storage"
)

// session is everything a command needs to talk to Gemini and the store.
type session struct {
	cfg     *config.Config
	path    string
	backend storage.Backend
	client  *gemini.Client
	ctrl    *app.Controller
}

// openSession starts logging, opens the store and builds the controller.
// theme seeds the settings record when nothing is stored yet.
func openSession(cfg *config.Config, path string, theme model.Theme) (*session, error) {
	if err := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Path:   cfg.Log.File,
	}); err != nil {
		return nil, fmt.Errorf("start logging: %w", err)
	}

	kind, err := storage.ParseKind(cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}
	backend, err := storage.Open(kind, cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", kind, err)
	}

	client := gemini.NewClient().
		WithBaseURL(cfg.Gemini.BaseURL).
		WithRateLimit(cfg.Gemini.RequestsPerMinute)

	ctrl := app.New(storage.NewRecords(backend, initialSettings(cfg, theme)), client)

	logger.WithFields(map[string]any{
		"config":  path,
		"store":   backend.Name(),
		"version": Version,
	}).Infof("geminipad started")

	return &session{cfg: cfg, path: path, backend: backend, client: client, ctrl: ctrl}, nil
}

// initialSettings is the settings record used before one is saved.
func initialSettings(cfg *config.Config, theme model.Theme) model.EditorSettings {
	s := model.DefaultSettings(cfg.Gemini.APIKey)
	if m := model.ModelName(cfg.Gemini.Model); m.Valid() {
		s.Model = m
	}
	if theme.Valid() {
		s.Theme = theme
	}
	return s
}

func (s *session) Close() error {
	err := s.backend.Close()
	if cerr := logger.Close(); err == nil {
		err = cerr
	}
	return err
}
