// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/logger"
	"github.com/jeranaias/geminipad/internal/ui/chat"
	"github.com/jeranaias/geminipad/internal/ui/editor"
	"github.com/jeranaias/geminipad/internal/ui/settings"
	"github.com/jeranaias/geminipad/internal/ui/sidebar"
)

// rateLimited is implemented by generators whose request rate can change at
// runtime.
type rateLimited interface {
	SetRateLimit(perMinute int)
}

// Update handles window, key and component messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.ctrl.State().ActiveTab == app.TabChat {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	// Sidebar intents
	case sidebar.SelectMsg:
		return m.handleSelect(msg)
	case sidebar.DeleteMsg:
		m.handleDelete(msg)
		m.sync()
		return m, nil
	case sidebar.NewMsg:
		m.create(msg.Kind)
		return m, nil

	// Chat intents
	case chat.SendMsg:
		return m.handleSend(msg)
	case chat.CancelMsg:
		m.ctrl.CancelSend()
		m.status = "Stopping reply..."
		return m, nil

	// Streaming
	case StreamTokenMsg:
		m.ctrl.ApplyFragment(msg.Exchange, msg.Token)
		m.sync()
		return m, waitForToken(msg.Exchange)
	case StreamCompleteMsg:
		m.ctrl.FinishSend(msg.Exchange, msg.Err)
		if msg.Exchange.Canceled() {
			m.status = "Reply stopped"
		}
		m.sync()
		return m, nil

	// Editor and settings intents
	case editor.SaveMsg:
		m.handleFileSave(msg)
		m.sync()
		return m, nil
	case settings.SaveMsg:
		m.handleSettingsSave(msg)
		m.sync()
		return m, nil

	case ConfigReloadedMsg:
		m.handleConfigReload(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.CancelSend()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(m.ctrl.State().ActiveTab.Next())
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(m.ctrl.State().ActiveTab.Prev())
		return m, nil

	case key.Matches(msg, m.keys.New):
		switch m.ctrl.State().ActiveTab {
		case app.TabChat:
			m.create(sidebar.KindConversations)
		case app.TabFiles:
			m.create(sidebar.KindFiles)
		}
		return m, nil

	case key.Matches(msg, m.keys.FocusSidebar):
		if m.ctrl.State().ActiveTab != app.TabSettings {
			m.focus = FocusSidebar
			m.applyFocus()
		}
		return m, nil

	case key.Matches(msg, m.keys.FocusPanel):
		m.focus = FocusPanel
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.Dismiss) && m.ctrl.State().Error != "" && !m.sidebar.Confirming():
		m.ctrl.DismissError()
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == FocusSidebar {
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd
	}
	switch m.ctrl.State().ActiveTab {
	case app.TabChat:
		m.chat, cmd = m.chat.Update(msg)
	case app.TabFiles:
		m.editor, cmd = m.editor.Update(msg)
	case app.TabSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(tab app.Tab) {
	m.ctrl.SetTab(tab)
	m.sync()
}

// create adds a conversation or file, shows it and hands the keyboard to
// its panel.
func (m *Model) create(kind sidebar.Kind) {
	switch kind {
	case sidebar.KindConversations:
		m.ctrl.NewConversation()
		m.ctrl.SetTab(app.TabChat)
	case sidebar.KindFiles:
		m.ctrl.NewFile()
	default:
		return
	}
	m.focus = FocusPanel
	m.sync()
}

func (m Model) handleSelect(msg sidebar.SelectMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.Kind {
	case sidebar.KindConversations:
		err = m.ctrl.SelectConversation(msg.ID)
	case sidebar.KindFiles:
		err = m.ctrl.SelectFile(msg.ID)
	}
	if err != nil {
		logger.WithError(err).Warnf("select %s", msg.ID)
	} else {
		m.focus = FocusPanel
	}
	m.sync()
	return m, nil
}

func (m *Model) handleDelete(msg sidebar.DeleteMsg) {
	switch msg.Kind {
	case sidebar.KindConversations:
		m.ctrl.DeleteConversation(msg.ID)
	case sidebar.KindFiles:
		m.ctrl.DeleteFile(msg.ID)
	}
}

func (m Model) handleSend(msg chat.SendMsg) (tea.Model, tea.Cmd) {
	ex, err := m.ctrl.BeginSend(m.ctx, msg.Prompt)
	if err != nil {
		// Give the prompt back so nothing typed is lost.
		m.chat.SetInput(msg.Prompt)
		if !errors.Is(err, app.ErrMissingAPIKey) {
			m.status = err.Error()
		}
		m.sync()
		return m, nil
	}
	m.sync()
	return m, tea.Batch(waitForToken(ex), m.chat.SpinnerTick())
}

func (m *Model) handleFileSave(msg editor.SaveMsg) {
	file, ok := m.ctrl.State().ActiveFile()
	if !ok || file.ID != msg.ID {
		return
	}

	if err := m.ctrl.SaveFile(msg.Content); err != nil {
		m.status = err.Error()
		return
	}
	if msg.Name != file.Name {
		if err := m.ctrl.UpdateFileName(msg.Name); err != nil {
			m.status = err.Error()
		}
	}
	if msg.Language != file.Language {
		if err := m.ctrl.UpdateFileLanguage(msg.Language); err != nil {
			m.status = err.Error()
		}
	}
	if f, ok := m.ctrl.State().ActiveFile(); ok && m.status == "" {
		m.status = "Saved " + f.Name
	}
}

func (m *Model) handleSettingsSave(msg settings.SaveMsg) {
	if err := m.ctrl.SaveSettings(msg.Settings); err != nil {
		m.status = "Settings saved, but the key was rejected: " + err.Error()
		return
	}
	m.status = "Settings saved"
}

func (m *Model) handleConfigReload(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		logger.WithError(msg.Err).Warnf("config reload ignored")
		m.status = "Config file has errors; keeping the current settings"
		return
	}
	cfg := msg.Config
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		logger.WithError(err).Warnf("config reload: log level")
	}
	if rl, ok := m.ctrl.Generator().(rateLimited); ok {
		rl.SetRateLimit(cfg.Gemini.RequestsPerMinute)
	}
	logger.WithFields(map[string]any{
		"log_level":           cfg.Log.Level,
		"requests_per_minute": cfg.Gemini.RequestsPerMinute,
	}).Infof("config reloaded")
	m.status = "Config reloaded"
}
