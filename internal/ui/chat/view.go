// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the conversation, a status row and the composer.
func (m Model) View() string {
	status := ""
	if m.view.Loading {
		status = m.spinner.View() + " " + m.theme.ThinkingText.Render("Gemini is replying... esc to stop")
	} else if m.view.HasConversation {
		status = m.theme.Muted.Render(m.view.Conversation.Title)
	}

	composer := m.theme.Composer
	if m.focused && !m.view.Loading {
		composer = m.theme.ComposerFocused
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		lipgloss.NewStyle().MaxWidth(m.width).Render(status),
		composer.Width(m.width-2).Render(m.input.View()),
	)
}
