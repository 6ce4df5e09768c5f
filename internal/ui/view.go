// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/geminipad/internal/app"
	"github.com/jeranaias/geminipad/internal/ui/components"
	"github.com/jeranaias/geminipad/internal/ui/settings"
)

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{m.headerView()}
	if banner := m.bannerView(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, m.bodyView(), m.statusView(), m.helpView())
	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) headerView() string {
	h := components.NewHeader(m.theme)
	h.Active = m.ctrl.State().ActiveTab
	h.Width = m.width
	return h.View()
}

func (m Model) bannerView() string {
	msg := m.ctrl.State().Error
	if msg == "" {
		return ""
	}
	b := components.NewErrorBanner(m.theme, msg)
	b.Width = m.width
	return b.View()
}

func (m Model) bodyView() string {
	var panel string
	switch m.ctrl.State().ActiveTab {
	case app.TabChat:
		panel = m.chat.View()
	case app.TabFiles:
		panel = m.editor.View()
	case app.TabSettings:
		panel = m.settings.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar.View(),
		m.theme.Pane.Render(panel),
	)
}

func (m Model) statusView() string {
	st := m.ctrl.State()
	bar := components.NewStatusBar(m.theme)
	bar.Width = m.width

	bar.Left = m.status
	if bar.Left == "" {
		switch st.ActiveTab {
		case app.TabChat:
			bar.Left = fmt.Sprintf("%d conversations", len(st.Conversations))
		case app.TabFiles:
			bar.Left = fmt.Sprintf("%d files", len(st.Files))
		case app.TabSettings:
			bar.Left = "Key " + m.binding()
		}
	}
	bar.Right = settings.ModelLabel(st.Settings.Model)
	if !st.Settings.HasUsableAPIKey() {
		bar.Right = "no API key"
	}
	return bar.View()
}

func (m Model) helpView() string {
	return m.help.View(helpKeys{global: m.keys, local: m.localKeys()})
}
